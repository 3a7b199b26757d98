package domain

import (
	"fmt"
	"strings"
)

// Category is a fixed named partition of articles.
type Category string

const (
	CategoryGeneral       Category = "general"
	CategoryBusiness      Category = "business"
	CategoryTechnology    Category = "technology"
	CategorySports        Category = "sports"
	CategoryHealth        Category = "health"
	CategoryEntertainment Category = "entertainment"

	// DefaultCategory is selected automatically on startup.
	DefaultCategory = CategoryGeneral
)

// categoryNames holds the display name of each category, in display order.
var categoryNames = []struct {
	cat  Category
	name string
}{
	{CategoryGeneral, "All News"},
	{CategoryBusiness, "Business"},
	{CategoryTechnology, "Technology"},
	{CategorySports, "Sports"},
	{CategoryHealth, "Health"},
	{CategoryEntertainment, "Entertainment"},
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryNames))
	for _, c := range categoryNames {
		out = append(out, c.cat)
	}
	return out
}

// ParseCategory parses a category name. Empty input yields DefaultCategory.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultCategory, nil
	}
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Valid reports whether c belongs to the enumerated set.
func (c Category) Valid() bool {
	for _, n := range categoryNames {
		if n.cat == c {
			return true
		}
	}
	return false
}

// IsGeneral reports whether c means "no filter". The zero value counts as general.
func (c Category) IsGeneral() bool {
	return c == "" || c == CategoryGeneral
}

// DisplayName returns the human label for c.
func (c Category) DisplayName() string {
	for _, n := range categoryNames {
		if n.cat == c {
			return n.name
		}
	}
	return string(c)
}

func (c Category) String() string { return string(c) }
