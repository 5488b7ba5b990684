package importer

import (
	"fmt"
	"strings"

	"github.com/eignung/flashcards/internal/domain/question"
)

const (
	reasonMissingText     = "question missing/empty"
	reasonBadType         = "type must be 'choice', 'text' or 'code'"
	reasonNoSolutionCode  = "solution (code) must not be empty"
	reasonNoSolutionText  = "solution must not be empty"
	reasonAnswerCount     = "MC question needs exactly 4 answer options"
	reasonBlankAnswers    = "MC question has only empty answers"
	reasonNoCorrectAnswer = "MC question has 0 correct answers"
)

// validate returns one reason per failed rule. The type-specific rules run
// against the storage type, so an unknown type string is checked as a
// multiple-choice question in addition to being rejected.
func validate(c Candidate) []string {
	var reasons []string

	if strings.TrimSpace(question.ToDisplayString(c.QuestionText)) == "" {
		reasons = append(reasons, reasonMissingText)
	}

	raw := question.ToDisplayString(c.Type)
	if _, ok := question.ParseType(raw); !ok {
		reasons = append(reasons, fmt.Sprintf("%s (got %q)", reasonBadType, raw))
	}

	switch question.TypeFromDB(raw) {
	case question.TypeCode:
		if strings.TrimSpace(question.ToDisplayString(c.SolutionCode)) == "" {
			reasons = append(reasons, reasonNoSolutionCode)
		}
	case question.TypeText:
		if strings.TrimSpace(question.ToDisplayString(c.SolutionText)) == "" {
			reasons = append(reasons, reasonNoSolutionText)
		}
	case question.TypeChoice:
		if strings.TrimSpace(question.ToDisplayString(c.SolutionText)) == "" {
			reasons = append(reasons, reasonNoSolutionText)
		}
		filled := nonBlank(c.Answers)
		if filled != question.AnswerSlots {
			reasons = append(reasons, reasonAnswerCount)
		}
		if filled == 0 {
			reasons = append(reasons, reasonBlankAnswers)
		}
		if c.CorrectMask&question.MaskBits == 0 {
			reasons = append(reasons, reasonNoCorrectAnswer)
		}
	}

	return reasons
}

func nonBlank(answers []string) int {
	n := 0
	for _, a := range answers {
		if strings.TrimSpace(a) != "" {
			n++
		}
	}
	return n
}
