package category

import "strings"

// Fallback is assigned by auto-categorization when no keyword matches.
const Fallback = "Sonstiges"

type Category struct {
	ID   int64
	Name string
}

// New creates an unsaved category with a trimmed name.
func New(name string) *Category {
	return &Category{
		Name: strings.TrimSpace(name),
	}
}

// Key is the identity of a category name: trimmed and lowercased.
// Two names with the same key denote the same category.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SameName reports whether the category carries the given name.
func (c *Category) SameName(name string) bool {
	return Key(c.Name) == Key(name)
}
