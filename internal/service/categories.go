// internal/service/categories.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/eignung/flashcards/internal/domain/category"
	"github.com/eignung/flashcards/internal/store"
)

// CategoryService manages categories. Names are unique by category.Key.
type CategoryService struct {
	store  store.Store
	logger *zap.Logger
}

func NewCategoryService(s store.Store, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		store:  s,
		logger: logger,
	}
}

func (cs *CategoryService) List(ctx context.Context) ([]*category.Category, error) {
	return cs.store.ListCategories(ctx)
}

func (cs *CategoryService) Get(ctx context.Context, id int64) (*category.Category, error) {
	return cs.store.GetCategory(ctx, id)
}

// Add returns the existing category when one with the same name exists.
// created tells whether a new row was made.
func (cs *CategoryService) Add(ctx context.Context, name string) (cat *category.Category, created bool, err error) {
	if strings.TrimSpace(name) == "" {
		return nil, false, fmt.Errorf("%w: category name is required", ErrInvalid)
	}

	existing, err := cs.store.FindCategoryByName(ctx, name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}

	id, err := store.EnsureCategoryID(ctx, cs.store, name)
	if err != nil {
		return nil, false, err
	}
	cat, err = cs.store.GetCategory(ctx, *id)
	if err != nil {
		return nil, false, err
	}
	cs.logger.Info("category created", zap.Int64("id", cat.ID), zap.String("name", cat.Name))
	return cat, true, nil
}

// Rename refuses names already used by another category.
func (cs *CategoryService) Rename(ctx context.Context, id int64, name string) (*category.Category, error) {
	renamed := category.New(name)
	if renamed.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalid)
	}

	other, err := cs.store.FindCategoryByName(ctx, renamed.Name)
	switch {
	case err == nil && other.ID != id:
		return nil, fmt.Errorf("%w: category %q already exists", ErrConflict, other.Name)
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	if err := cs.store.RenameCategory(ctx, id, renamed.Name); err != nil {
		return nil, err
	}
	renamed.ID = id
	return renamed, nil
}

// Delete removes the category; its questions become uncategorized.
func (cs *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := cs.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	cs.logger.Info("category deleted", zap.Int64("id", id))
	return nil
}

// DeleteUnused removes every category without questions.
func (cs *CategoryService) DeleteUnused(ctx context.Context) (int, error) {
	n, err := cs.store.DeleteUnusedCategories(ctx)
	if err != nil {
		return 0, err
	}
	cs.logger.Info("unused categories deleted", zap.Int("count", n))
	return n, nil
}

// Merge moves every question of fromID into toID and deletes fromID, all in
// one transaction. It returns the number of moved questions. Merging a
// category into itself does nothing.
func (cs *CategoryService) Merge(ctx context.Context, fromID, toID int64) (int, error) {
	if fromID == toID {
		return 0, nil
	}

	var moved int
	err := cs.store.WithTx(ctx, func(tx store.Store) error {
		if _, err := tx.GetCategory(ctx, toID); err != nil {
			return fmt.Errorf("merge target: %w", err)
		}
		n, err := tx.ReassignCategory(ctx, fromID, toID)
		if err != nil {
			return err
		}
		if err := tx.DeleteCategory(ctx, fromID); err != nil {
			return fmt.Errorf("merge source: %w", err)
		}
		moved = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	cs.logger.Info("categories merged", zap.Int64("from", fromID), zap.Int64("to", toID), zap.Int("moved", moved))
	return moved, nil
}
