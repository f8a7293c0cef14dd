package domain

import (
	"strings"

	dErrors "canna-gate/pkg/domain-errors"
)

// Category is the canonical product category used to compare heterogeneous
// packaging against a single jurisdiction limit.
// Invariant: the value must be one of the supported categories.
type Category string

// Supported product categories and their canonical units.
const (
	CategoryFlower      Category = "flower"      // grams
	CategoryConcentrate Category = "concentrate" // grams
	CategoryEdible      Category = "edible"      // milligrams of active compound
	CategoryPlant       Category = "plant"       // count
)

// validCategories is the single source of truth for supported categories.
var validCategories = map[Category]bool{
	CategoryFlower:      true,
	CategoryConcentrate: true,
	CategoryEdible:      true,
	CategoryPlant:       true,
}

// ParseCategory constructs a Category from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "category cannot be empty")
	}
	c := Category(s)
	if !c.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported product category")
	}
	return c, nil
}

// IsValid checks if the category is one of the supported enum values.
func (c Category) IsValid() bool {
	return validCategories[c]
}

// Unit names the canonical unit for the category, for rendering messages.
func (c Category) Unit() string {
	switch c {
	case CategoryEdible:
		return "mg"
	case CategoryPlant:
		return "plants"
	default:
		return "g"
	}
}

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}
