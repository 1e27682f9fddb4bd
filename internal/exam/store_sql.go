package exam

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned for unknown attempt ids.
var ErrNotFound = errors.New("attempt not found")

// Store persists attempts.
type Store interface {
	Create(ctx context.Context, a Attempt) error
	Get(ctx context.Context, id string) (Attempt, error)
	Update(ctx context.Context, a Attempt) error
}

// SQLStore keeps attempts in the attempts table, responses as a JSON column.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Create(ctx context.Context, a Attempt) error {
	qj, err := json.Marshal(a.QuestionIDs)
	if err != nil {
		return err
	}
	rj, err := json.Marshal(a.Responses)
	if err != nil {
		return err
	}
	if a.StartedAt == 0 {
		a.StartedAt = time.Now().Unix()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO attempts (id,user_id,status,score,max_score,question_ids_json,responses_json,started_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID, a.UserID, a.Status, a.Score, a.MaxScore, string(qj), string(rj), a.StartedAt)
	return err
}

func (s *SQLStore) Get(ctx context.Context, id string) (Attempt, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,user_id,status,score,max_score,question_ids_json,responses_json,started_at,COALESCE(submitted_at,0)
		FROM attempts WHERE id=$1`, id)
	var (
		a      Attempt
		qj, rj string
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Status, &a.Score, &a.MaxScore, &qj, &rj, &a.StartedAt, &a.SubmittedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Attempt{}, ErrNotFound
		}
		return Attempt{}, err
	}
	if err := json.Unmarshal([]byte(qj), &a.QuestionIDs); err != nil {
		a.QuestionIDs = nil
	}
	if err := json.Unmarshal([]byte(rj), &a.Responses); err != nil {
		a.Responses = map[string]any{}
	}
	return a, nil
}

func (s *SQLStore) Update(ctx context.Context, a Attempt) error {
	rj, err := json.Marshal(a.Responses)
	if err != nil {
		return err
	}
	var submitted any
	if a.SubmittedAt > 0 {
		submitted = a.SubmittedAt
	}
	res, err := s.db.ExecContext(ctx, `UPDATE attempts SET status=$1, score=$2, max_score=$3, responses_json=$4, submitted_at=$5 WHERE id=$6`,
		a.Status, a.Score, a.MaxScore, string(rj), submitted, a.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
