package importer

import (
	"fmt"
	"strings"
)

// ConflictMode decides what happens to a record whose question text already
// exists.
type ConflictMode string

const (
	ConflictSkip   ConflictMode = "skip"
	ConflictUpdate ConflictMode = "update"
)

// ParseConflictMode accepts "skip" or "update" in any case. Empty means skip.
func ParseConflictMode(s string) (ConflictMode, error) {
	switch m := ConflictMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ConflictSkip, ConflictUpdate:
		return m, nil
	case "":
		return ConflictSkip, nil
	default:
		return "", fmt.Errorf("unknown conflict mode %q", s)
	}
}

// SnapshotLimit caps the diagnostic text stored with each error, in runes.
const SnapshotLimit = 120

// BatchIndex marks errors that concern the whole input rather than one record.
const BatchIndex = -1

// Error describes one rejected record.
type Error struct {
	Index        int    `json:"index"`
	Reason       string `json:"reason"`
	QuestionText string `json:"question_text"`
}

// Report is the outcome of one import run.
type Report struct {
	Imported int     `json:"imported"`
	Updated  int     `json:"updated"`
	Skipped  int     `json:"skipped"`
	Errors   []Error `json:"errors"`
}

// Fatal reports whether the whole input was rejected.
func (r *Report) Fatal() bool {
	return len(r.Errors) == 1 && r.Errors[0].Index == BatchIndex
}

func fatalReport(reason string) *Report {
	return &Report{
		Errors: []Error{{Index: BatchIndex, Reason: reason}},
	}
}

func newError(index int, reason, text string) Error {
	return Error{
		Index:        index,
		Reason:       reason,
		QuestionText: snapshot(text),
	}
}

func snapshot(s string) string {
	r := []rune(s)
	if len(r) <= SnapshotLimit {
		return s
	}
	return string(r[:SnapshotLimit])
}
