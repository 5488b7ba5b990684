// Package importer reads question sets from JSON into the store.
package importer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eignung/flashcards/internal/domain/question"
	"github.com/eignung/flashcards/internal/store"
)

const reasonDuplicate = "duplicate skipped"

type Importer struct {
	store  store.Store
	logger *zap.Logger
}

func New(s store.Store, logger *zap.Logger) *Importer {
	return &Importer{
		store:  s,
		logger: logger,
	}
}

// Import runs the whole pipeline in one transaction. Problems with the input
// are reported in the Report; a non-nil error means the store failed and
// nothing was written.
func (im *Importer) Import(ctx context.Context, raw string, mode ConflictMode) (*Report, error) {
	elements, reason := parseArray(raw)
	if reason != "" {
		im.logger.Info("import rejected", zap.String("reason", reason))
		return fatalReport(reason), nil
	}

	candidates, decodeErrs := decodeElements(elements)
	if len(candidates) == 0 {
		im.logger.Info("import rejected", zap.String("reason", reasonNoRecords),
			zap.Int("elements", len(elements)))
		return fatalReport(reasonNoRecords), nil
	}

	report := &Report{
		Errors:  append(make([]Error, 0, len(decodeErrs)), decodeErrs...),
		Skipped: len(decodeErrs),
	}

	var valid []Candidate
	for _, c := range candidates {
		reasons := validate(c)
		if len(reasons) == 0 {
			valid = append(valid, c)
			continue
		}
		text := question.ToDisplayString(c.QuestionText)
		for _, r := range reasons {
			report.Errors = append(report.Errors, newError(c.Index, r, text))
			report.Skipped++
		}
		im.logger.Debug("record rejected", zap.Int("index", c.Index), zap.Strings("reasons", reasons))
	}

	err := im.store.WithTx(ctx, func(tx store.Store) error {
		return im.persist(ctx, tx, valid, mode, report)
	})
	if err != nil {
		im.logger.Error("import failed", zap.Error(err))
		return nil, fmt.Errorf("import: %w", err)
	}

	im.logger.Info("import finished",
		zap.String("mode", string(mode)),
		zap.Int("imported", report.Imported),
		zap.Int("updated", report.Updated),
		zap.Int("skipped", report.Skipped),
		zap.Int("errors", len(report.Errors)),
	)
	return report, nil
}

// batch collects the writes of one run. pending maps a question text to its
// queued position so repeated texts inside one input are treated like
// existing rows.
type batch struct {
	inserts []*question.Question
	updates []*question.Question
	pending map[string]queued
}

type queued struct {
	update bool
	pos    int
}

func (b *batch) replace(at queued, q *question.Question) {
	if at.update {
		q.ID = b.updates[at.pos].ID
		b.updates[at.pos] = q
		return
	}
	b.inserts[at.pos] = q
}

func (im *Importer) persist(ctx context.Context, tx store.Store, valid []Candidate, mode ConflictMode, report *Report) error {
	b := &batch{pending: make(map[string]queued)}
	var dupErrs []Error

	for _, c := range valid {
		catID, err := store.EnsureCategoryID(ctx, tx, question.ToDisplayString(c.Category))
		if err != nil {
			return err
		}
		q := buildQuestion(c, catID)

		if at, ok := b.pending[q.Text]; ok {
			if mode == ConflictUpdate {
				b.replace(at, q)
				report.Updated++
				continue
			}
			dupErrs = append(dupErrs, newError(c.Index, reasonDuplicate, q.Text))
			report.Skipped++
			continue
		}

		existingID, err := tx.FindQuestionIDByText(ctx, q.Text)
		switch {
		case errors.Is(err, store.ErrNotFound):
			b.pending[q.Text] = queued{pos: len(b.inserts)}
			b.inserts = append(b.inserts, q)
		case err != nil:
			return err
		case mode == ConflictUpdate:
			q.ID = existingID
			b.pending[q.Text] = queued{update: true, pos: len(b.updates)}
			b.updates = append(b.updates, q)
			report.Updated++
		default:
			dupErrs = append(dupErrs, newError(c.Index, reasonDuplicate, q.Text))
			report.Skipped++
		}
	}

	if len(b.inserts) > 0 {
		if err := tx.InsertQuestions(ctx, b.inserts); err != nil {
			return err
		}
	}
	if len(b.updates) > 0 {
		if err := tx.UpdateQuestions(ctx, b.updates); err != nil {
			return err
		}
	}

	report.Imported = len(b.inserts)
	report.Errors = append(report.Errors, dupErrs...)
	return nil
}
