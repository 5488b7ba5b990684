package importer

import (
	"regexp"
	"strings"

	"github.com/eignung/flashcards/internal/domain/question"
)

// fencePattern matches a whole string that is exactly one fenced code block
// with an optional language tag.
var fencePattern = regexp.MustCompile("(?s)\\A\\s*```[A-Za-z0-9_+-]*\\n(.*?)\\n```\\s*\\z")

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// NormalizeCode converts CRLF to LF and unwraps a single fenced code block.
// Anything else passes through unchanged.
func NormalizeCode(raw string) string {
	s := normalizeNewlines(raw)
	if m := fencePattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// buildQuestion turns a validated candidate into a storable question.
// Statistics start at zero.
func buildQuestion(c Candidate, categoryID *int64) *question.Question {
	q := &question.Question{
		Text:         strings.TrimSpace(question.ToDisplayString(c.QuestionText)),
		Code:         NormalizeCode(question.ToDisplayString(c.QuestionCode)),
		CorrectMask:  c.CorrectMask & question.MaskBits,
		Type:         question.TypeFromDB(question.ToDisplayString(c.Type)),
		SolutionText: strings.TrimSpace(question.ToDisplayString(c.SolutionText)),
		SolutionCode: NormalizeCode(question.ToDisplayString(c.SolutionCode)),
		CategoryID:   categoryID,
	}
	for i := 0; i < question.AnswerSlots && i < len(c.Answers); i++ {
		q.Answers[i] = normalizeNewlines(c.Answers[i])
	}
	return q
}
