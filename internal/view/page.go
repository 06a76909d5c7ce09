package view

import (
	"github.com/meur/loadout/internal/catalog"
	"github.com/meur/loadout/internal/models"
)

// Tab is one entry of the category navigation bar
type Tab struct {
	Name   string
	Count  int
	Active bool
}

// Card is one rendered record of the derived list
type Card struct {
	Pos         int
	Weapon      models.Weapon
	Expanded    bool
	Attachments []string // Only set when expanded
}

// Page is everything a front-end needs to draw the catalog
type Page struct {
	Category     string
	Tabs         []Tab
	Cards        []Card
	PromoVisible bool
}

// Render derives the page for s from c
func Render(c *catalog.Catalog, s *State) Page {
	p := Page{
		Category:     s.category,
		PromoVisible: s.promoVisible,
	}

	for _, cc := range c.Counts() {
		p.Tabs = append(p.Tabs, Tab{
			Name:   cc.Name,
			Count:  cc.Count,
			Active: cc.Name == s.category,
		})
	}

	for i, w := range c.ByCategory(s.category) {
		card := Card{Pos: i, Weapon: w, Expanded: s.IsExpanded(i)}
		if card.Expanded {
			card.Attachments = catalog.AttachmentLabels(w)
		}
		p.Cards = append(p.Cards, card)
	}

	return p
}
