package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Weapon is one record of the weapon catalog
type Weapon struct {
	Name        string       `json:"name"`
	Type        string       `json:"type"` // Category, see Categories
	Game        string       `json:"game"`
	Rank        int          `json:"rank"` // Ordering key within a category, lower first
	WeaponImg   string       `json:"weapon_img,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// HasImage reports whether the record references an image
func (w Weapon) HasImage() bool {
	return w.WeaponImg != ""
}

// Attachment is either a plain text label or a {category, name} pair.
// It round-trips through JSON in the shape it was decoded from.
type Attachment struct {
	Category string
	Name     string
	Text     string // Set for plain string attachments
	plain    bool
}

// PlainAttachment builds a plain text attachment
func PlainAttachment(text string) Attachment {
	return Attachment{Text: text, plain: true}
}

// SlotAttachment builds a structured attachment
func SlotAttachment(category, name string) Attachment {
	return Attachment{Category: category, Name: name}
}

// IsPlain reports whether the attachment was given as a plain string
func (a Attachment) IsPlain() bool {
	return a.plain
}

// Label is the display text of an attachment
func (a Attachment) Label() string {
	if a.plain {
		return a.Text
	}
	if a.Category != "" && a.Name != "" {
		return a.Category + ": " + a.Name
	}
	return a.Name
}

type slotJSON struct {
	Category string `json:"category,omitempty"`
	Name     string `json:"name"`
}

// UnmarshalJSON accepts a JSON string or a {category, name} object
func (a *Attachment) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty attachment")
	}

	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*a = PlainAttachment(text)
		return nil
	case '{':
		var slot slotJSON
		if err := json.Unmarshal(data, &slot); err != nil {
			return err
		}
		*a = SlotAttachment(slot.Category, slot.Name)
		return nil
	default:
		return fmt.Errorf("attachment must be a string or an object, got %s", data)
	}
}

// MarshalJSON writes the attachment back in its original shape
func (a Attachment) MarshalJSON() ([]byte, error) {
	if a.plain {
		return json.Marshal(a.Text)
	}
	return json.Marshal(slotJSON{Category: a.Category, Name: a.Name})
}
