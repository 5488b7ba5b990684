package question

import "strings"

// Type is the kind of study item. The string value is what gets stored in
// the questions.type column.
type Type string

const (
	TypeChoice Type = "choice"
	TypeText   Type = "text"
	TypeCode   Type = "code"
)

// Types lists every known type in storage order.
var Types = []Type{TypeChoice, TypeText, TypeCode}

// AnswerSlots is the fixed number of answer fields a question carries.
const AnswerSlots = 4

// MaskBits keeps the correctness bits that map onto answer slots.
const MaskBits = 0b1111

// ParseType resolves s case-insensitively. Surrounding whitespace is not
// trimmed, so " text " is not a known type. ok is false for anything that is
// not one of the known types.
func ParseType(s string) (Type, bool) {
	v := strings.ToLower(s)
	for _, t := range Types {
		if string(t) == v {
			return t, true
		}
	}
	return "", false
}

// TypeFromDB resolves a stored value. Unknown or empty values fall back to
// TypeChoice so that legacy rows always load.
func TypeFromDB(s string) Type {
	if t, ok := ParseType(s); ok {
		return t
	}
	return TypeChoice
}

// DBValue is the value written to storage.
func (t Type) DBValue() string {
	return string(t)
}

func (t Type) Valid() bool {
	_, ok := ParseType(string(t))
	return ok
}

// Question is a single study item.
type Question struct {
	ID           int64 // 0 means not yet stored
	Text         string
	Code         string
	Answers      [AnswerSlots]string
	CorrectMask  int
	Type         Type
	SolutionText string
	SolutionCode string
	CategoryID   *int64 // nil for uncategorized questions
	TimesCorrect int
	TimesWrong   int
}

// IsCorrect reports whether answer slot i is marked correct.
func (q *Question) IsCorrect(slot int) bool {
	if slot < 0 || slot >= AnswerSlots {
		return false
	}
	return q.CorrectMask&(1<<slot) != 0
}

// TextFields returns every text-bearing field: question text, question
// code, the four answers, solution text and solution code.
func (q *Question) TextFields() []string {
	fields := make([]string, 0, 4+AnswerSlots)
	fields = append(fields, q.Text, q.Code)
	fields = append(fields, q.Answers[:]...)
	fields = append(fields, q.SolutionText, q.SolutionCode)
	return fields
}

// AllAnswersBlank reports whether every answer slot is empty after trimming.
func (q *Question) AllAnswersBlank() bool {
	for _, a := range q.Answers {
		if strings.TrimSpace(a) != "" {
			return false
		}
	}
	return true
}

// Outcome classifies the question by its answer statistics.
func (q *Question) Outcome() Outcome {
	switch {
	case q.TimesCorrect > q.TimesWrong:
		return OutcomeCorrect
	case q.TimesWrong != 0:
		return OutcomeWrong
	default:
		return OutcomeNew
	}
}

// ToDisplayString maps an absent value to the empty string.
func ToDisplayString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
