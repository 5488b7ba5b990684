// internal/service/quiz.go
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eignung/flashcards/internal/domain/question"
	"github.com/eignung/flashcards/internal/domain/quiz"
	"github.com/eignung/flashcards/internal/store"
)

// QuizService draws questions and records answers.
type QuizService struct {
	store  store.Store
	logger *zap.Logger
}

func NewQuizService(s store.Store, logger *zap.Logger) *QuizService {
	return &QuizService{
		store:  s,
		logger: logger,
	}
}

// Next picks a random question matching f. When nothing matches and f
// restricts the type, the pick is retried for any type.
func (qs *QuizService) Next(ctx context.Context, f quiz.Filter) (*quiz.Card, error) {
	q, err := qs.store.PickQuestion(ctx, f)
	if errors.Is(err, store.ErrNotFound) && f.Type != nil {
		qs.logger.Debug("no question of requested type, widening", zap.String("type", string(*f.Type)))
		q, err = qs.store.PickQuestion(ctx, f.WithoutType())
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoQuestion
	}
	if err != nil {
		return nil, err
	}
	return quiz.NewCard(q), nil
}

// AnswerResult tells the learner how a choice answer was graded.
type AnswerResult struct {
	Correct      bool
	CorrectSlots []int
	SolutionText string
	SolutionCode string
}

// AnswerChoice grades the selected answer slots of a multiple-choice
// question and records the outcome.
func (qs *QuizService) AnswerChoice(ctx context.Context, id int64, slots []int) (*AnswerResult, error) {
	q, err := qs.store.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.Type != question.TypeChoice {
		return nil, fmt.Errorf("%w: question %d is not multiple choice", ErrInvalid, id)
	}

	res := &AnswerResult{
		Correct:      quiz.Grade(q, slots),
		SolutionText: q.SolutionText,
		SolutionCode: q.SolutionCode,
	}
	for i := 0; i < question.AnswerSlots; i++ {
		if q.IsCorrect(i) {
			res.CorrectSlots = append(res.CorrectSlots, i)
		}
	}

	if err := qs.store.RecordAnswer(ctx, id, res.Correct); err != nil {
		return nil, err
	}
	return res, nil
}

// Mark records a self-assessed answer for a text or code question.
func (qs *QuizService) Mark(ctx context.Context, id int64, correct bool) error {
	return qs.store.RecordAnswer(ctx, id, correct)
}
