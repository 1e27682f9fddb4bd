package question

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a question id is absent from the bank.
var ErrNotFound = errors.New("question not found")

// SQLStore persists questions in a questions table with the raw document in
// a JSON column, plus extracted columns for filtering.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Put(ctx context.Context, q Question) error {
	if q.ID == "" {
		return errors.New("question id required")
	}
	doc := q.Doc
	if doc == nil {
		doc = map[string]any{
			"id":            q.ID,
			"questionText":  q.QuestionText,
			"chapter":       q.Chapter,
			"questionType":  q.Type,
			"language":      q.Language,
			"correctAnswer": q.CorrectAnswer,
		}
	}
	dj, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	created := q.CreatedAt
	if created == 0 {
		created = time.Now().Unix()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO questions (id,question_text,chapter,qtype,language,created_at,doc_json)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET question_text=EXCLUDED.question_text, chapter=EXCLUDED.chapter,
			qtype=EXCLUDED.qtype, language=EXCLUDED.language, doc_json=EXCLUDED.doc_json`,
		q.ID, q.QuestionText, q.Chapter, q.Type, q.Language, created, string(dj))
	return err
}

func (s *SQLStore) Get(ctx context.Context, id string) (Question, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,question_text,chapter,qtype,language,created_at,doc_json FROM questions WHERE id=$1`, id)
	return scanQuestion(row)
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Question, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if opts.Chapter > 0 {
		add("chapter=$%d", opts.Chapter)
	}
	if opts.Type != "" {
		add("qtype=$%d", opts.Type)
	}
	if opts.Language != "" {
		add("language=$%d", opts.Language)
	}
	if q := strings.TrimSpace(opts.Q); q != "" {
		add("question_text LIKE $%d", "%"+q+"%")
	}
	query := `SELECT id,question_text,chapter,qtype,language,created_at,doc_json FROM questions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		if opts.Offset > 0 {
			args = append(args, opts.Offset)
			query += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (Question, error) {
	var (
		q  Question
		dj string
	)
	if err := row.Scan(&q.ID, &q.QuestionText, &q.Chapter, &q.Type, &q.Language, &q.CreatedAt, &dj); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Question{}, ErrNotFound
		}
		return Question{}, err
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(dj), &doc); err != nil {
		doc = map[string]any{}
	}
	q.Doc = doc
	q.CorrectAnswer = answerList(doc["correctAnswer"])
	return q, nil
}
