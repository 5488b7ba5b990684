package maintenance

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/eignung/flashcards/internal/domain/category"
	"github.com/eignung/flashcards/internal/domain/question"
	"github.com/eignung/flashcards/internal/store"
)

// CategoryFor returns the category name the keyword table assigns to q,
// falling back to category.Fallback.
func (t KeywordTable) CategoryFor(q *question.Question) string {
	blob := strings.ToLower(strings.Join(q.TextFields(), "\n"))
	if name := t.Match(blob); name != "" {
		return name
	}
	return category.Fallback
}

// AutoCategorize assigns every uncategorized question a category and returns
// how many questions were updated.
func (m *Maintainer) AutoCategorize(ctx context.Context) (int, error) {
	all, err := m.store.ListQuestions(ctx)
	if err != nil {
		return 0, err
	}

	ids := make(map[string]int64)
	updated := 0
	for _, q := range all {
		if q.CategoryID != nil {
			continue
		}

		name := m.keywords.CategoryFor(q)
		key := category.Key(name)
		id, ok := ids[key]
		if !ok {
			catID, err := store.EnsureCategoryID(ctx, m.store, name)
			if err != nil {
				return updated, err
			}
			if catID == nil {
				return updated, fmt.Errorf("keyword rule with blank category for question %d", q.ID)
			}
			id = *catID
			ids[key] = id
		}

		q.CategoryID = &id
		if err := m.store.UpdateQuestions(ctx, []*question.Question{q}); err != nil {
			return updated, err
		}
		updated++
	}

	m.logger.Info("auto-categorization finished", zap.Int("updated", updated))
	return updated, nil
}

// ResetStatistics zeroes every answer counter and returns the number of
// questions.
func (m *Maintainer) ResetStatistics(ctx context.Context) (int, error) {
	if err := m.store.ResetStatistics(ctx); err != nil {
		return 0, err
	}
	n, err := m.store.CountQuestions(ctx)
	if err != nil {
		return 0, err
	}
	m.logger.Info("statistics reset", zap.Int("questions", n))
	return n, nil
}

// Truncate deletes every question, leaving categories alone, and returns the
// number of questions left.
func (m *Maintainer) Truncate(ctx context.Context) (int, error) {
	if err := m.store.TruncateQuestions(ctx); err != nil {
		return 0, err
	}
	n, err := m.store.CountQuestions(ctx)
	if err != nil {
		return 0, err
	}
	m.logger.Info("questions truncated", zap.Int("remaining", n))
	return n, nil
}
