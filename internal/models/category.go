package models

import "strings"

// Weapon categories in navigation order
const (
	AssaultRifle  = "Assault Rifle"
	BattleRifle   = "Battle Rifle"
	SMG           = "SMG"
	Shotgun       = "Shotgun"
	LMG           = "LMG"
	MarksmenRifle = "Marksmen Rifle"
	Sniper        = "Sniper"
)

// DefaultCategory is selected when nothing else is
const DefaultCategory = AssaultRifle

var categories = []string{
	AssaultRifle,
	BattleRifle,
	SMG,
	Shotgun,
	LMG,
	MarksmenRifle,
	Sniper,
}

// Categories returns the fixed category enumeration in navigation order
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// LookupCategory resolves s to its canonical category, ignoring case and
// surrounding whitespace
func LookupCategory(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(c, s) {
			return c, true
		}
	}
	return "", false
}

// CategoryCount is a category and the number of records in it
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
