// Package storetest provides an in-memory store.Store for tests.
package storetest

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/eignung/flashcards/internal/domain/category"
	"github.com/eignung/flashcards/internal/domain/question"
	"github.com/eignung/flashcards/internal/domain/quiz"
	"github.com/eignung/flashcards/internal/store"
)

// Memory keeps everything in slices ordered by ID. PickQuestion is
// deterministic and returns the lowest matching ID.
type Memory struct {
	mu         sync.Mutex
	categories []category.Category
	questions  []question.Question
	nextCatID  int64
	nextQID    int64
	failures   map[string]error
}

var _ store.Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		nextCatID: 1,
		nextQID:   1,
		failures:  make(map[string]error),
	}
}

// FailOn makes every later call of the named method return err.
func (m *Memory) FailOn(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[method] = err
}

func (m *Memory) fail(method string) error {
	return m.failures[method]
}

type snapshot struct {
	categories []category.Category
	questions  []question.Question
	nextCatID  int64
	nextQID    int64
}

func (m *Memory) WithTx(ctx context.Context, fn func(tx store.Store) error) error {
	m.mu.Lock()
	if err := m.fail("WithTx"); err != nil {
		m.mu.Unlock()
		return err
	}
	snap := snapshot{
		categories: slices.Clone(m.categories),
		questions:  slices.Clone(m.questions),
		nextCatID:  m.nextCatID,
		nextQID:    m.nextQID,
	}
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.categories = snap.categories
		m.questions = snap.questions
		m.nextCatID = snap.nextCatID
		m.nextQID = snap.nextQID
		m.mu.Unlock()
		return err
	}
	return nil
}

// ============================================================================
// Categories
// ============================================================================

func (m *Memory) FindCategoryByName(ctx context.Context, name string) (*category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("FindCategoryByName"); err != nil {
		return nil, err
	}
	for _, c := range m.categories {
		if c.SameName(name) {
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *Memory) InsertCategory(ctx context.Context, cat *category.Category) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("InsertCategory"); err != nil {
		return 0, err
	}
	for _, c := range m.categories {
		if c.Name == cat.Name {
			return 0, nil
		}
	}
	cat.ID = m.nextCatID
	m.nextCatID++
	m.categories = append(m.categories, *cat)
	return cat.ID, nil
}

func (m *Memory) GetCategory(ctx context.Context, id int64) (*category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetCategory"); err != nil {
		return nil, err
	}
	for _, c := range m.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *Memory) ListCategories(ctx context.Context) ([]*category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ListCategories"); err != nil {
		return nil, err
	}
	out := make([]*category.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) RenameCategory(ctx context.Context, id int64, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("RenameCategory"); err != nil {
		return err
	}
	for i := range m.categories {
		if m.categories[i].ID == id {
			m.categories[i].Name = name
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *Memory) DeleteCategory(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("DeleteCategory"); err != nil {
		return err
	}
	idx := slices.IndexFunc(m.categories, func(c category.Category) bool { return c.ID == id })
	if idx < 0 {
		return store.ErrNotFound
	}
	m.categories = slices.Delete(m.categories, idx, idx+1)
	for i := range m.questions {
		if q := &m.questions[i]; q.CategoryID != nil && *q.CategoryID == id {
			q.CategoryID = nil
		}
	}
	return nil
}

func (m *Memory) DeleteUnusedCategories(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("DeleteUnusedCategories"); err != nil {
		return 0, err
	}
	used := make(map[int64]bool)
	for _, q := range m.questions {
		if q.CategoryID != nil {
			used[*q.CategoryID] = true
		}
	}
	before := len(m.categories)
	m.categories = slices.DeleteFunc(m.categories, func(c category.Category) bool { return !used[c.ID] })
	return before - len(m.categories), nil
}

// ============================================================================
// Questions
// ============================================================================

func clone(q question.Question) *question.Question {
	if q.CategoryID != nil {
		id := *q.CategoryID
		q.CategoryID = &id
	}
	return &q
}

func (m *Memory) indexOf(id int64) int {
	return slices.IndexFunc(m.questions, func(q question.Question) bool { return q.ID == id })
}

func (m *Memory) InsertQuestions(ctx context.Context, qs []*question.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("InsertQuestions"); err != nil {
		return err
	}
	for _, q := range qs {
		q.ID = m.nextQID
		m.nextQID++
		m.questions = append(m.questions, *clone(*q))
	}
	return nil
}

func (m *Memory) UpdateQuestions(ctx context.Context, qs []*question.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateQuestions"); err != nil {
		return err
	}
	for _, q := range qs {
		if i := m.indexOf(q.ID); i >= 0 {
			m.questions[i] = *clone(*q)
		}
	}
	return nil
}

func (m *Memory) DeleteQuestion(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("DeleteQuestion"); err != nil {
		return err
	}
	i := m.indexOf(id)
	if i < 0 {
		return store.ErrNotFound
	}
	m.questions = slices.Delete(m.questions, i, i+1)
	return nil
}

func (m *Memory) GetQuestion(ctx context.Context, id int64) (*question.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetQuestion"); err != nil {
		return nil, err
	}
	i := m.indexOf(id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	return clone(m.questions[i]), nil
}

func (m *Memory) FindQuestionIDByText(ctx context.Context, text string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("FindQuestionIDByText"); err != nil {
		return 0, err
	}
	for _, q := range m.questions {
		if q.Text == text {
			return q.ID, nil
		}
	}
	return 0, store.ErrNotFound
}

func (m *Memory) ListQuestions(ctx context.Context) ([]*question.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ListQuestions"); err != nil {
		return nil, err
	}
	out := make([]*question.Question, 0, len(m.questions))
	for i := len(m.questions) - 1; i >= 0; i-- {
		out = append(out, clone(m.questions[i]))
	}
	return out, nil
}

func (m *Memory) ReassignCategory(ctx context.Context, fromID, toID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ReassignCategory"); err != nil {
		return 0, err
	}
	n := 0
	for i := range m.questions {
		if q := &m.questions[i]; q.CategoryID != nil && *q.CategoryID == fromID {
			id := toID
			q.CategoryID = &id
			n++
		}
	}
	return n, nil
}

func (m *Memory) ResetStatistics(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ResetStatistics"); err != nil {
		return err
	}
	for i := range m.questions {
		m.questions[i].TimesCorrect = 0
		m.questions[i].TimesWrong = 0
	}
	return nil
}

func (m *Memory) TruncateQuestions(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("TruncateQuestions"); err != nil {
		return err
	}
	m.questions = nil
	return nil
}

func (m *Memory) CountQuestions(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CountQuestions"); err != nil {
		return 0, err
	}
	return len(m.questions), nil
}

func (m *Memory) RecordAnswer(ctx context.Context, id int64, correct bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("RecordAnswer"); err != nil {
		return err
	}
	i := m.indexOf(id)
	if i < 0 {
		return store.ErrNotFound
	}
	if correct {
		m.questions[i].TimesCorrect++
	} else {
		m.questions[i].TimesWrong++
	}
	return nil
}

func (m *Memory) PickQuestion(ctx context.Context, f quiz.Filter) (*question.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("PickQuestion"); err != nil {
		return nil, err
	}
	for _, q := range m.questions {
		if f.Match(&q) {
			return clone(q), nil
		}
	}
	return nil, store.ErrNotFound
}

// ============================================================================
// Statistics
// ============================================================================

func (m *Memory) Totals(ctx context.Context) (question.Totals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("Totals"); err != nil {
		return question.Totals{}, err
	}
	qs := make([]*question.Question, 0, len(m.questions))
	for _, q := range m.questions {
		qs = append(qs, clone(q))
	}
	return question.ComputeTotals(qs), nil
}

func (m *Memory) CategoryStats(ctx context.Context) ([]question.CategoryStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CategoryStats"); err != nil {
		return nil, err
	}
	cats := slices.Clone(m.categories)
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })

	stats := make([]question.CategoryStats, 0, len(cats))
	for _, c := range cats {
		cs := question.CategoryStats{Category: c.Name}
		for _, q := range m.questions {
			if q.CategoryID != nil && *q.CategoryID == c.ID {
				cs.Add(clone(q))
			}
		}
		stats = append(stats, cs)
	}
	return stats, nil
}
