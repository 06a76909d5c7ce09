// Package catalog holds the immutable weapon catalog and the derivations
// the front-ends render from it.
package catalog

import (
	"sort"
	"strings"

	"github.com/meur/loadout/internal/models"
)

// NoAttachments is shown for records without attachments
const NoAttachments = "No attachments available"

// Catalog is a fixed list of weapon records. It is safe for concurrent reads.
type Catalog struct {
	weapons []models.Weapon
}

// New copies weapons into a new Catalog
func New(weapons []models.Weapon) *Catalog {
	w := make([]models.Weapon, len(weapons))
	copy(w, weapons)
	return &Catalog{weapons: w}
}

// All returns every record in source order
func (c *Catalog) All() []models.Weapon {
	out := make([]models.Weapon, len(c.weapons))
	copy(out, c.weapons)
	return out
}

// Len returns the number of records
func (c *Catalog) Len() int {
	return len(c.weapons)
}

// ByCategory returns the derived list for category
func (c *Catalog) ByCategory(category string) []models.Weapon {
	return Filter(c.weapons, category)
}

// Counts returns the number of records in each category, in navigation order
func (c *Catalog) Counts() []models.CategoryCount {
	counts := make([]models.CategoryCount, 0, len(models.Categories()))
	for _, name := range models.Categories() {
		n := 0
		for _, w := range c.weapons {
			if strings.EqualFold(w.Type, name) {
				n++
			}
		}
		counts = append(counts, models.CategoryCount{Name: name, Count: n})
	}
	return counts
}

// Filter returns the records whose type matches category, ignoring case,
// ordered by ascending rank. Records with equal rank keep their source order.
// The input is not modified.
func Filter(weapons []models.Weapon, category string) []models.Weapon {
	out := make([]models.Weapon, 0)
	for _, w := range weapons {
		if strings.EqualFold(w.Type, category) {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank < out[j].Rank
	})
	return out
}

// AttachmentLabels returns the display labels of w's attachments, or the
// NoAttachments placeholder when it has none
func AttachmentLabels(w models.Weapon) []string {
	if len(w.Attachments) == 0 {
		return []string{NoAttachments}
	}
	labels := make([]string, len(w.Attachments))
	for i, a := range w.Attachments {
		labels[i] = a.Label()
	}
	return labels
}
