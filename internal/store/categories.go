package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eignung/flashcards/internal/domain/category"
)

// EnsureCategoryID resolves a category name to its ID, creating the
// category when no trimmed, case-insensitive match exists. A blank name
// means "no category" and yields nil.
func EnsureCategoryID(ctx context.Context, s CategoryStore, rawName string) (*int64, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return nil, nil
	}

	existing, err := s.FindCategoryByName(ctx, name)
	if err == nil {
		return &existing.ID, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	id, err := s.InsertCategory(ctx, category.New(name))
	if err != nil {
		return nil, err
	}
	if id > 0 {
		return &id, nil
	}

	// insert was ignored: someone holds the raw name already
	existing, err = s.FindCategoryByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("category %q: %w", name, err)
	}
	return &existing.ID, nil
}
