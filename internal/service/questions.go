// internal/service/questions.go
package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/eignung/flashcards/internal/domain/question"
	"github.com/eignung/flashcards/internal/importer"
	"github.com/eignung/flashcards/internal/store"
)

// QuestionService backs the manual question editor.
type QuestionService struct {
	store  store.Store
	logger *zap.Logger
}

func NewQuestionService(s store.Store, logger *zap.Logger) *QuestionService {
	return &QuestionService{
		store:  s,
		logger: logger,
	}
}

// List returns the questions matching f, newest first.
func (qs *QuestionService) List(ctx context.Context, f question.ListFilter) ([]*question.Question, error) {
	all, err := qs.store.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(all), nil
}

func (qs *QuestionService) Get(ctx context.Context, id int64) (*question.Question, error) {
	return qs.store.GetQuestion(ctx, id)
}

// Save inserts q when its ID is 0 and overwrites the stored row otherwise.
// Text is trimmed and code fields are normalized the same way imports are.
func (qs *QuestionService) Save(ctx context.Context, q *question.Question) error {
	q.Text = strings.TrimSpace(q.Text)
	if q.Text == "" {
		return fmt.Errorf("%w: question text is required", ErrInvalid)
	}
	if !q.Type.Valid() {
		return fmt.Errorf("%w: unknown question type %q", ErrInvalid, q.Type)
	}
	q.Code = importer.NormalizeCode(q.Code)
	q.SolutionCode = importer.NormalizeCode(q.SolutionCode)
	q.CorrectMask &= question.MaskBits

	if q.CategoryID != nil {
		if _, err := qs.store.GetCategory(ctx, *q.CategoryID); err != nil {
			return fmt.Errorf("category %d: %w", *q.CategoryID, err)
		}
	}

	if q.ID == 0 {
		if err := qs.store.InsertQuestions(ctx, []*question.Question{q}); err != nil {
			return err
		}
		qs.logger.Debug("question added", zap.Int64("id", q.ID))
		return nil
	}

	existing, err := qs.store.GetQuestion(ctx, q.ID)
	if err != nil {
		return err
	}
	// the editor never touches statistics
	q.TimesCorrect = existing.TimesCorrect
	q.TimesWrong = existing.TimesWrong
	return qs.store.UpdateQuestions(ctx, []*question.Question{q})
}

func (qs *QuestionService) Delete(ctx context.Context, id int64) error {
	return qs.store.DeleteQuestion(ctx, id)
}
