package model

import "strings"

// Category is the closed set of item categories.
type Category string

const (
	CategoryHome        Category = "Home"
	CategoryWork        Category = "Work"
	CategoryCar         Category = "Car"
	CategoryBag         Category = "Bag"
	CategoryMisc        Category = "Misc"
	CategoryElectronics Category = "Electronics"
	CategoryDocuments   Category = "Documents"
	CategoryClothes     Category = "Clothes"
	CategoryTools       Category = "Tools"
)

// CategoryAll is the pseudo category used by filters to mean "no filter".
const CategoryAll Category = "All"

var categories = []Category{
	CategoryHome,
	CategoryWork,
	CategoryCar,
	CategoryBag,
	CategoryMisc,
	CategoryElectronics,
	CategoryDocuments,
	CategoryClothes,
	CategoryTools,
}

// Categories returns every real category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is one of the real categories (not All).
func (c Category) Valid() bool {
	for _, k := range categories {
		if k == c {
			return true
		}
	}
	return false
}

// ParseCategory matches s case-insensitively against the real categories
// and CategoryAll.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(CategoryAll)) {
		return CategoryAll, true
	}
	for _, k := range categories {
		if strings.EqualFold(s, string(k)) {
			return k, true
		}
	}
	return "", false
}

// InventoryItem is one tracked physical object.
type InventoryItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Category    Category `json:"category"`
	Notes       string   `json:"notes"`
	Image       string   `json:"image"`                // data URI
	SecretCode  string   `json:"secretCode,omitempty"` // "" = no code set
	CreatedAt   int64    `json:"createdAt"`            // epoch ms
	Tags        []string `json:"tags"`
	IsTrackable *bool    `json:"isTrackable,omitempty"`
}

// Trackable reports whether tracker-only actions apply. Absent means true.
func (i InventoryItem) Trackable() bool {
	return i.IsTrackable == nil || *i.IsTrackable
}

// HasSecretCode reports whether a secret code is set.
func (i InventoryItem) HasSecretCode() bool {
	return i.SecretCode != ""
}

// TagsFor derives the tag list stored with a new or edited item.
func TagsFor(c Category) []string {
	return []string{strings.ToLower(string(c))}
}

// Bool returns a pointer to b, for optional boolean fields.
func Bool(b bool) *bool { return &b }
