package store

import (
	"context"
	"errors"

	"github.com/eignung/flashcards/internal/domain/category"
	"github.com/eignung/flashcards/internal/domain/question"
	"github.com/eignung/flashcards/internal/domain/quiz"
)

var (
	ErrNotFound = errors.New("not found")
)

// CategoryStore persists categories. Names are unique per raw value only;
// callers go through EnsureCategoryID to keep them unique by Key.
type CategoryStore interface {
	// FindCategoryByName matches trimmed, case-insensitive.
	FindCategoryByName(ctx context.Context, name string) (*category.Category, error)
	// InsertCategory returns the new ID, or 0 when a row with the exact
	// same name already exists.
	InsertCategory(ctx context.Context, cat *category.Category) (int64, error)
	GetCategory(ctx context.Context, id int64) (*category.Category, error)
	ListCategories(ctx context.Context) ([]*category.Category, error)
	RenameCategory(ctx context.Context, id int64, name string) error
	// DeleteCategory leaves referencing questions uncategorized.
	DeleteCategory(ctx context.Context, id int64) error
	DeleteUnusedCategories(ctx context.Context) (int, error)
}

// QuestionStore persists questions.
type QuestionStore interface {
	// InsertQuestions stores new questions and assigns their IDs.
	InsertQuestions(ctx context.Context, qs []*question.Question) error
	UpdateQuestions(ctx context.Context, qs []*question.Question) error
	DeleteQuestion(ctx context.Context, id int64) error
	GetQuestion(ctx context.Context, id int64) (*question.Question, error)
	// FindQuestionIDByText matches the question text exactly.
	FindQuestionIDByText(ctx context.Context, text string) (int64, error)
	// ListQuestions returns all questions, newest first.
	ListQuestions(ctx context.Context) ([]*question.Question, error)
	ReassignCategory(ctx context.Context, fromID, toID int64) (int, error)
	ResetStatistics(ctx context.Context) error
	TruncateQuestions(ctx context.Context) error
	CountQuestions(ctx context.Context) (int, error)
	RecordAnswer(ctx context.Context, id int64, correct bool) error
	// PickQuestion returns a random question matching f.
	PickQuestion(ctx context.Context, f quiz.Filter) (*question.Question, error)
}

// StatsStore computes dashboard aggregates.
type StatsStore interface {
	Totals(ctx context.Context) (question.Totals, error)
	CategoryStats(ctx context.Context) ([]question.CategoryStats, error)
}

type Store interface {
	CategoryStore
	QuestionStore
	StatsStore

	// WithTx runs fn against a store bound to one transaction. Any error
	// returned by fn rolls back every write made through that store.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}
