package importer

import (
	"context"
	"encoding/json"
	"io"

	"github.com/eignung/flashcards/internal/domain/question"
	"github.com/eignung/flashcards/internal/store"
)

// Record is the JSON shape of one question in an import or export file.
type Record struct {
	QuestionText string   `json:"question_text"`
	QuestionCode string   `json:"question_code,omitempty"`
	Answers      []string `json:"answers"`
	CorrectMask  int      `json:"correct_mask"`
	Type         string   `json:"type"`
	SolutionText string   `json:"solution_text,omitempty"`
	SolutionCode string   `json:"solution_code,omitempty"`
	Category     string   `json:"category,omitempty"`
}

func toRecord(q *question.Question, categoryName string) Record {
	return Record{
		QuestionText: q.Text,
		QuestionCode: q.Code,
		Answers:      append([]string(nil), q.Answers[:]...),
		CorrectMask:  q.CorrectMask,
		Type:         q.Type.DBValue(),
		SolutionText: q.SolutionText,
		SolutionCode: q.SolutionCode,
		Category:     categoryName,
	}
}

// Exporter writes every stored question in the format Import reads.
type Exporter struct {
	store store.Store
}

func NewExporter(s store.Store) *Exporter {
	return &Exporter{store: s}
}

// Records returns all questions, oldest first, with category names resolved.
func (e *Exporter) Records(ctx context.Context) ([]Record, error) {
	categories, err := e.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	questions, err := e.store.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(questions))
	for i := len(questions) - 1; i >= 0; i-- {
		q := questions[i]
		var name string
		if q.CategoryID != nil {
			name = names[*q.CategoryID]
		}
		records = append(records, toRecord(q, name))
	}
	return records, nil
}

// Export writes the records as an indented JSON array and returns how many
// were written.
func (e *Exporter) Export(ctx context.Context, w io.Writer) (int, error) {
	records, err := e.Records(ctx)
	if err != nil {
		return 0, err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return 0, err
	}
	return len(records), nil
}
