// Package view holds the per-session UI state of the catalog page and
// derives the page model rendered from it.
package view

import (
	"sort"

	"github.com/meur/loadout/internal/models"
)

// State is the UI state of one viewer. The zero value is not ready for
// use, call NewState. A State is not safe for concurrent use.
type State struct {
	category     string
	expanded     map[int]struct{}
	promoVisible bool
}

// NewState returns the initial state: default category, nothing expanded,
// promo visible
func NewState() *State {
	return &State{
		category:     models.DefaultCategory,
		expanded:     make(map[int]struct{}),
		promoVisible: true,
	}
}

// Category returns the selected category
func (s *State) Category() string {
	return s.category
}

// Select replaces the selected category. Expanded positions are kept and
// apply to the new list.
func (s *State) Select(category string) {
	s.category = category
}

// Toggle expands the card at pos, or collapses it if already expanded.
// It reports whether pos is expanded afterwards.
func (s *State) Toggle(pos int) bool {
	if _, ok := s.expanded[pos]; ok {
		delete(s.expanded, pos)
		return false
	}
	s.expanded[pos] = struct{}{}
	return true
}

// IsExpanded reports whether the card at pos is expanded
func (s *State) IsExpanded(pos int) bool {
	_, ok := s.expanded[pos]
	return ok
}

// Expanded returns the expanded positions in ascending order
func (s *State) Expanded() []int {
	out := make([]int, 0, len(s.expanded))
	for pos := range s.expanded {
		out = append(out, pos)
	}
	sort.Ints(out)
	return out
}

// PromoVisible reports whether the promotional panel is shown
func (s *State) PromoVisible() bool {
	return s.promoVisible
}

// DismissPromo hides the promotional panel for the rest of the session
func (s *State) DismissPromo() {
	s.promoVisible = false
}

// Snapshot is a serialisable copy of a State
type Snapshot struct {
	Category     string `json:"category"`
	Expanded     []int  `json:"expanded"`
	PromoVisible bool   `json:"promo_visible"`
}

// Snapshot copies the state
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Category:     s.category,
		Expanded:     s.Expanded(),
		PromoVisible: s.promoVisible,
	}
}
