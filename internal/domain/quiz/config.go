package quiz

import (
	"fmt"
	"strings"

	"github.com/eignung/flashcards/internal/domain/question"
)

// Mode selects which pool the next question is drawn from.
type Mode string

const (
	ModeRandom Mode = "random" // any question
	ModeNew    Mode = "new"    // never answered
	ModeWrong  Mode = "wrong"  // answered wrong more often than correctly
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeRandom, ModeNew, ModeWrong:
		return m, nil
	case "":
		return ModeRandom, nil
	default:
		return "", fmt.Errorf("unknown quiz mode %q", s)
	}
}

// Filter holds the constraints for picking the next question.
type Filter struct {
	Mode        Mode
	Type        *question.Type // nil = any type
	CategoryIDs []int64        // empty = all categories
}

// DefaultFilter draws random multiple-choice questions from all categories.
func DefaultFilter() Filter {
	t := question.TypeChoice
	return Filter{
		Mode: ModeRandom,
		Type: &t,
	}
}

// WithoutType returns a copy of f that accepts every question type.
func (f Filter) WithoutType() Filter {
	f.Type = nil
	return f
}

// Match reports whether q belongs to the pool described by f.
func (f Filter) Match(q *question.Question) bool {
	if f.Type != nil && q.Type != *f.Type {
		return false
	}
	if len(f.CategoryIDs) > 0 {
		if q.CategoryID == nil {
			return false
		}
		found := false
		for _, id := range f.CategoryIDs {
			if id == *q.CategoryID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	switch f.Mode {
	case ModeNew:
		return q.TimesCorrect == 0 && q.TimesWrong == 0
	case ModeWrong:
		return q.TimesWrong > q.TimesCorrect
	default:
		return true
	}
}
