package model

import (
	"fmt"
	"strings"
)

// Category is the label a bookmark is filed under.
type Category string

const (
	CategoryCoding        Category = "coding"
	CategorySocial        Category = "social"
	CategoryTools         Category = "tools"
	CategoryEntertainment Category = "entertainment"
	CategoryNews          Category = "news"
	CategoryLearning      Category = "learning"
	CategoryShopping      Category = "shopping"
	CategoryOther         Category = "other"

	// CategoryAll is the filter value that matches every category. It is never stored.
	CategoryAll Category = "all"
)

// Categories lists every storable category in display order.
var Categories = []Category{
	CategoryCoding,
	CategorySocial,
	CategoryTools,
	CategoryEntertainment,
	CategoryNews,
	CategoryLearning,
	CategoryShopping,
	CategoryOther,
}

// Valid reports whether c is one of the storable categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// IsAll reports whether c disables category filtering.
func (c Category) IsAll() bool {
	return c == "" || c == CategoryAll
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a category label, case-insensitively.
// "all" is accepted and returned as CategoryAll.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == CategoryAll || c.Valid() {
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}
