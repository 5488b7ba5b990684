// Package maintenance sweeps the question table: duplicate and garbage
// removal, keyword based categorization and statistic resets.
package maintenance

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/eignung/flashcards/internal/domain/question"
	"github.com/eignung/flashcards/internal/store"
)

// NearDuplicateThreshold is the similarity above which the later of two
// questions is removed.
const NearDuplicateThreshold = 0.90

// placeholders are garbage values left behind by broken question generators.
var placeholders = map[string]bool{
	"code":   true,
	"choice": true,
	"text":   true,
}

// CleanupResult counts the questions deleted by each stage.
type CleanupResult struct {
	ExactDuplicates int `json:"exact_duplicates"`
	NearDuplicates  int `json:"near_duplicates"`
	EmptyChoices    int `json:"empty_choices"`
	Placeholders    int `json:"placeholders"`
}

func (r CleanupResult) Total() int {
	return r.ExactDuplicates + r.NearDuplicates + r.EmptyChoices + r.Placeholders
}

type Maintainer struct {
	store    store.Store
	keywords KeywordTable
	logger   *zap.Logger
}

func New(s store.Store, keywords KeywordTable, logger *zap.Logger) *Maintainer {
	return &Maintainer{
		store:    s,
		keywords: keywords,
		logger:   logger,
	}
}

// stage picks victims among the rows still alive, ordered by ID.
type stage struct {
	name  string
	pick  func(rows []*question.Question) []*question.Question
	count *int
}

// Cleanup runs the four removal stages against one snapshot of the table.
// Every delete commits on its own: when a stage fails, the deletions made so
// far stay.
func (m *Maintainer) Cleanup(ctx context.Context) (CleanupResult, error) {
	var res CleanupResult

	all, err := m.store.ListQuestions(ctx)
	if err != nil {
		return res, err
	}
	slices.SortFunc(all, func(a, b *question.Question) int { return cmp.Compare(a.ID, b.ID) })

	stages := []stage{
		{"exact duplicates", ExactDuplicates, &res.ExactDuplicates},
		{"near duplicates", NearDuplicates, &res.NearDuplicates},
		{"empty choices", EmptyChoices, &res.EmptyChoices},
		{"placeholders", PlaceholderRows, &res.Placeholders},
	}

	removed := make(map[int64]bool)
	for _, st := range stages {
		alive := make([]*question.Question, 0, len(all))
		for _, q := range all {
			if !removed[q.ID] {
				alive = append(alive, q)
			}
		}

		for _, q := range st.pick(alive) {
			if err := m.store.DeleteQuestion(ctx, q.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
				m.logger.Error("cleanup stage failed", zap.String("stage", st.name), zap.Int64("question_id", q.ID), zap.Error(err))
				return res, fmt.Errorf("cleanup %s: %w", st.name, err)
			}
			removed[q.ID] = true
			*st.count++
		}
		m.logger.Debug("cleanup stage done", zap.String("stage", st.name), zap.Int("deleted", *st.count))
	}

	m.logger.Info("cleanup finished",
		zap.Int("exact_duplicates", res.ExactDuplicates),
		zap.Int("near_duplicates", res.NearDuplicates),
		zap.Int("empty_choices", res.EmptyChoices),
		zap.Int("placeholders", res.Placeholders),
	)
	return res, nil
}

// ExactDuplicates keeps the first question per trimmed, lowercased text and
// returns the rest. Rows must be ordered by ID. Empty texts are ignored.
func ExactDuplicates(rows []*question.Question) []*question.Question {
	seen := make(map[string]bool)
	var dupes []*question.Question
	for _, q := range rows {
		key := strings.ToLower(strings.TrimSpace(q.Text))
		if key == "" {
			continue
		}
		if seen[key] {
			dupes = append(dupes, q)
			continue
		}
		seen[key] = true
	}
	return dupes
}

// NearDuplicates compares every pair and returns the later question of each
// pair more similar than NearDuplicateThreshold. A question already picked is
// not picked again, but still serves as the earlier side of later pairs.
func NearDuplicates(rows []*question.Question) []*question.Question {
	picked := make(map[int64]bool)
	var victims []*question.Question
	for i, q1 := range rows {
		for _, q2 := range rows[i+1:] {
			if picked[q2.ID] {
				continue
			}
			if Similarity(q1.Text, q2.Text) > NearDuplicateThreshold {
				picked[q2.ID] = true
				victims = append(victims, q2)
			}
		}
	}
	return victims
}

// EmptyChoices returns multiple-choice questions without any answer text.
func EmptyChoices(rows []*question.Question) []*question.Question {
	var victims []*question.Question
	for _, q := range rows {
		if q.Type == question.TypeChoice && q.AllAnswersBlank() {
			victims = append(victims, q)
		}
	}
	return victims
}

// PlaceholderRows returns questions where any text field is nothing but a
// placeholder token.
func PlaceholderRows(rows []*question.Question) []*question.Question {
	var victims []*question.Question
	for _, q := range rows {
		for _, f := range q.TextFields() {
			if placeholders[strings.ToLower(strings.TrimSpace(f))] {
				victims = append(victims, q)
				break
			}
		}
	}
	return victims
}

// Similarity is the length of the common prefix divided by the length of the
// longer string, counted in runes. Two empty strings are identical.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1.0
	}
	longer := max(len(ra), len(rb))
	prefix := 0
	for prefix < len(ra) && prefix < len(rb) && ra[prefix] == rb[prefix] {
		prefix++
	}
	return float64(prefix) / float64(longer)
}
