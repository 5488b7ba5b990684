// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/eignung/flashcards/internal/domain/category"
	"github.com/eignung/flashcards/internal/domain/question"
	"github.com/eignung/flashcards/internal/domain/quiz"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type SQLiteStore struct {
	db   *sql.DB
	q    querier
	inTx bool
}

// NewSQLite opens the database file at dbPath and migrates it.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	// one connection keeps :memory: databases alive and serializes writers
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return New(db), nil
}

// New wraps an already opened and migrated database.
func New(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, q: db}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&SQLiteStore{db: s.db, q: tx, inTx: true}); err != nil {
		return err
	}
	return tx.Commit()
}

// ============================================================================
// Categories
// ============================================================================

func (s *SQLiteStore) FindCategoryByName(ctx context.Context, name string) (*category.Category, error) {
	// SQLite's LOWER only folds ASCII, so names are compared here.
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, cat := range categories {
		if cat.SameName(name) {
			return cat, nil
		}
	}
	return nil, ErrNotFound
}

func (s *SQLiteStore) InsertCategory(ctx context.Context, cat *category.Category) (int64, error) {
	result, err := s.q.ExecContext(ctx, "INSERT OR IGNORE INTO categories (name) VALUES (?)", cat.Name)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	cat.ID = id
	return id, nil
}

func (s *SQLiteStore) GetCategory(ctx context.Context, id int64) (*category.Category, error) {
	var cat category.Category
	err := s.q.QueryRowContext(ctx, "SELECT id, name FROM categories WHERE id = ?", id).Scan(&cat.ID, &cat.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *SQLiteStore) ListCategories(ctx context.Context) ([]*category.Category, error) {
	rows, err := s.q.QueryContext(ctx, "SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*category.Category
	for rows.Next() {
		var cat category.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, err
		}
		categories = append(categories, &cat)
	}
	return categories, rows.Err()
}

func (s *SQLiteStore) RenameCategory(ctx context.Context, id int64, name string) error {
	result, err := s.q.ExecContext(ctx, "UPDATE categories SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (s *SQLiteStore) DeleteCategory(ctx context.Context, id int64) error {
	result, err := s.q.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (s *SQLiteStore) DeleteUnusedCategories(ctx context.Context) (int, error) {
	result, err := s.q.ExecContext(ctx, `
		DELETE FROM categories
		WHERE id NOT IN (SELECT DISTINCT category_id FROM questions WHERE category_id IS NOT NULL)`)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	return int(n), err
}

// ============================================================================
// Questions
// ============================================================================

const questionColumns = `id, question, question_code, answer_a, answer_b, answer_c, answer_d,
	correct_mask, type, solution_text, solution_code, category_id, times_correct, times_wrong`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*question.Question, error) {
	var (
		q       question.Question
		answerA sql.NullString
		typ     string
		catID   sql.NullInt64
	)
	err := row.Scan(
		&q.ID, &q.Text, &q.Code,
		&answerA, &q.Answers[1], &q.Answers[2], &q.Answers[3],
		&q.CorrectMask, &typ, &q.SolutionText, &q.SolutionCode,
		&catID, &q.TimesCorrect, &q.TimesWrong,
	)
	if err != nil {
		return nil, err
	}
	q.Answers[0] = answerA.String
	q.Type = question.TypeFromDB(typ)
	if catID.Valid {
		id := catID.Int64
		q.CategoryID = &id
	}
	return &q, nil
}

func (s *SQLiteStore) queryQuestions(ctx context.Context, query string, args ...any) ([]*question.Question, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*question.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *SQLiteStore) InsertQuestions(ctx context.Context, qs []*question.Question) error {
	for _, q := range qs {
		result, err := s.q.ExecContext(ctx, `
			INSERT INTO questions (question, question_code, answer_a, answer_b, answer_c, answer_d,
				correct_mask, type, solution_text, solution_code, category_id, times_correct, times_wrong)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			q.Text, q.Code, q.Answers[0], q.Answers[1], q.Answers[2], q.Answers[3],
			q.CorrectMask, q.Type.DBValue(), q.SolutionText, q.SolutionCode, q.CategoryID,
			q.TimesCorrect, q.TimesWrong,
		)
		if err != nil {
			return fmt.Errorf("insert question %q: %w", q.Text, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		q.ID = id
	}
	return nil
}

func (s *SQLiteStore) UpdateQuestions(ctx context.Context, qs []*question.Question) error {
	for _, q := range qs {
		_, err := s.q.ExecContext(ctx, `
			UPDATE questions SET question = ?, question_code = ?,
				answer_a = ?, answer_b = ?, answer_c = ?, answer_d = ?,
				correct_mask = ?, type = ?, solution_text = ?, solution_code = ?,
				category_id = ?, times_correct = ?, times_wrong = ?
			WHERE id = ?`,
			q.Text, q.Code, q.Answers[0], q.Answers[1], q.Answers[2], q.Answers[3],
			q.CorrectMask, q.Type.DBValue(), q.SolutionText, q.SolutionCode, q.CategoryID,
			q.TimesCorrect, q.TimesWrong, q.ID,
		)
		if err != nil {
			return fmt.Errorf("update question %d: %w", q.ID, err)
		}
	}
	return nil
}

func (s *SQLiteStore) DeleteQuestion(ctx context.Context, id int64) error {
	result, err := s.q.ExecContext(ctx, "DELETE FROM questions WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (s *SQLiteStore) GetQuestion(ctx context.Context, id int64) (*question.Question, error) {
	row := s.q.QueryRowContext(ctx, "SELECT "+questionColumns+" FROM questions WHERE id = ?", id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return q, err
}

func (s *SQLiteStore) FindQuestionIDByText(ctx context.Context, text string) (int64, error) {
	var id int64
	err := s.q.QueryRowContext(ctx, "SELECT id FROM questions WHERE question = ? LIMIT 1", text).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return id, err
}

func (s *SQLiteStore) ListQuestions(ctx context.Context) ([]*question.Question, error) {
	return s.queryQuestions(ctx, "SELECT "+questionColumns+" FROM questions ORDER BY id DESC")
}

func (s *SQLiteStore) ReassignCategory(ctx context.Context, fromID, toID int64) (int, error) {
	result, err := s.q.ExecContext(ctx, "UPDATE questions SET category_id = ? WHERE category_id = ?", toID, fromID)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) ResetStatistics(ctx context.Context) error {
	_, err := s.q.ExecContext(ctx, "UPDATE questions SET times_correct = 0, times_wrong = 0")
	return err
}

func (s *SQLiteStore) TruncateQuestions(ctx context.Context) error {
	_, err := s.q.ExecContext(ctx, "DELETE FROM questions")
	return err
}

func (s *SQLiteStore) CountQuestions(ctx context.Context) (int, error) {
	var n int
	err := s.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM questions").Scan(&n)
	return n, err
}

func (s *SQLiteStore) RecordAnswer(ctx context.Context, id int64, correct bool) error {
	query := "UPDATE questions SET times_wrong = times_wrong + 1 WHERE id = ?"
	if correct {
		query = "UPDATE questions SET times_correct = times_correct + 1 WHERE id = ?"
	}
	result, err := s.q.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (s *SQLiteStore) PickQuestion(ctx context.Context, f quiz.Filter) (*question.Question, error) {
	var (
		where []string
		args  []any
	)

	switch f.Mode {
	case quiz.ModeNew:
		where = append(where, "times_correct = 0 AND times_wrong = 0")
	case quiz.ModeWrong:
		where = append(where, "times_wrong > times_correct")
	}
	if f.Type != nil {
		where = append(where, "type = ?")
		args = append(args, f.Type.DBValue())
	}
	if len(f.CategoryIDs) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(f.CategoryIDs)), ", ")
		where = append(where, "category_id IN ("+placeholders+")")
		for _, id := range f.CategoryIDs {
			args = append(args, id)
		}
	}

	query := "SELECT " + questionColumns + " FROM questions"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY RANDOM() LIMIT 1"

	q, err := scanQuestion(s.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return q, err
}

// ============================================================================
// Statistics
// ============================================================================

func (s *SQLiteStore) Totals(ctx context.Context) (question.Totals, error) {
	var t question.Totals
	err := s.q.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN times_correct > times_wrong THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN times_correct <= times_wrong AND times_wrong != 0 THEN 1 ELSE 0 END), 0)
		FROM questions`).Scan(&t.Total, &t.Correct, &t.Wrong)
	return t, err
}

func (s *SQLiteStore) CategoryStats(ctx context.Context) ([]question.CategoryStats, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT c.name,
			COUNT(q.id),
			COALESCE(SUM(CASE WHEN q.times_correct + q.times_wrong = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN q.times_correct > q.times_wrong THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN q.times_correct <= q.times_wrong AND q.times_wrong != 0 THEN 1 ELSE 0 END), 0)
		FROM categories c
		LEFT JOIN questions q ON q.category_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []question.CategoryStats
	for rows.Next() {
		var cs question.CategoryStats
		if err := rows.Scan(&cs.Category, &cs.Count, &cs.NeverAnswered, &cs.Correct, &cs.Wrong); err != nil {
			return nil, err
		}
		stats = append(stats, cs)
	}
	return stats, rows.Err()
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
