package quiz

import (
	"math/rand"

	"github.com/eignung/flashcards/internal/domain/question"
)

// Choice is one answer option as presented to the learner. Slot is the
// answer field it came from, so the shuffled order can be graded. Correct is
// never serialized.
type Choice struct {
	Slot    int    `json:"slot"`
	Text    string `json:"text"`
	Correct bool   `json:"-"`
}

// Card is a question prepared for presentation.
type Card struct {
	QuestionID   int64
	Text         string
	Code         string
	Type         question.Type
	Choices      []Choice // only for multiple-choice questions
	SolutionText string
	SolutionCode string
}

// NewCard builds a card from q. Choices of multiple-choice questions are
// shuffled.
func NewCard(q *question.Question) *Card {
	c := &Card{
		QuestionID:   q.ID,
		Text:         q.Text,
		Code:         q.Code,
		Type:         q.Type,
		SolutionText: q.SolutionText,
		SolutionCode: q.SolutionCode,
	}
	if q.Type == question.TypeChoice {
		c.Choices = shuffleChoices(q)
	}
	return c
}

func shuffleChoices(q *question.Question) []Choice {
	choices := make([]Choice, question.AnswerSlots)
	for i, a := range q.Answers {
		choices[i] = Choice{Slot: i, Text: a, Correct: q.IsCorrect(i)}
	}

	rand.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	return choices
}

// SelectionMask turns chosen answer slots into a correctness-style bitmask.
// Slots outside the answer range are ignored.
func SelectionMask(slots []int) int {
	mask := 0
	for _, s := range slots {
		if s >= 0 && s < question.AnswerSlots {
			mask |= 1 << s
		}
	}
	return mask
}

// Grade reports whether the chosen slots are exactly the correct ones.
func Grade(q *question.Question, slots []int) bool {
	return SelectionMask(slots) == q.CorrectMask&question.MaskBits
}
