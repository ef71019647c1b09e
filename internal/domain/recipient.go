package domain

import (
	"strings"
	"time"
)

// Wildcard markers a recipient may list instead of concrete categories.
const (
	WildcardAll = "all"
	WildcardAny = "any"
)

// Organization that receives rescued food (food bank, shelter, community fridge).
// StorageCapacityLbs is nil when the recipient never reported a capacity.
type Recipient struct {
	ID                 int64
	Name               string
	Email              string
	Phone              string
	Address            string
	Coords             *Coordinates
	OrganizationType   string
	CategoriesNeeded   []string
	StorageCapacityLbs *float64
	CreatedAt          time.Time
}

// Needs reports whether the recipient lists c explicitly.
func (r Recipient) Needs(c FoodCategory) bool {
	for _, tag := range r.CategoriesNeeded {
		if strings.EqualFold(strings.TrimSpace(tag), string(c)) {
			return true
		}
	}
	return false
}

// AcceptsAny reports whether the recipient lists a wildcard marker.
func (r Recipient) AcceptsAny() bool {
	for _, tag := range r.CategoriesNeeded {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == WildcardAll || t == WildcardAny {
			return true
		}
	}
	return false
}
