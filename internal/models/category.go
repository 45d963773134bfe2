package models

import "strings"

// Category is the closed set of expense categories.
type Category int

const (
	// CategoryOther is the fallback for anything unclassified, including
	// unrecognized text. It is the zero value.
	CategoryOther Category = iota
	CategoryAccommodation
	CategoryFood
	CategoryTransport
	CategoryActivities
	CategoryShopping
)

var categoryNames = map[Category]string{
	CategoryOther:         "other",
	CategoryAccommodation: "accommodation",
	CategoryFood:          "food",
	CategoryTransport:     "transport",
	CategoryActivities:    "activities",
	CategoryShopping:      "shopping",
}

var categoryLabels = map[Category]string{
	CategoryOther:         "Other",
	CategoryAccommodation: "Accommodation",
	CategoryFood:          "Food & Drinks",
	CategoryTransport:     "Transport",
	CategoryActivities:    "Activities",
	CategoryShopping:      "Shopping",
}

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryAccommodation,
		CategoryFood,
		CategoryTransport,
		CategoryActivities,
		CategoryShopping,
		CategoryOther,
	}
}

// String returns the wire name of the category.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[CategoryOther]
}

// Label returns the human-readable name of the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}

// LookupCategory resolves a wire name. ok is false for unknown names.
func LookupCategory(name string) (Category, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range categoryNames {
		if n == name {
			return c, true
		}
	}
	return CategoryOther, false
}

// ParseCategory resolves a wire name, falling back to CategoryOther.
func ParseCategory(name string) Category {
	c, _ := LookupCategory(name)
	return c
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode to
// CategoryOther.
func (c *Category) UnmarshalText(text []byte) error {
	*c = ParseCategory(string(text))
	return nil
}
