// Package eventlog appends domain events to the event_log table. The log is
// append-only and read back only by ops tooling.
package eventlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

const (
	TypeQuestionCreated  = "QuestionCreated"
	TypeQuestionDeleted  = "QuestionDeleted"
	TypeAttemptSubmitted = "AttemptSubmitted"
	TypeExportRun        = "ExportRun"
)

type Event struct {
	Seq       int64
	Type      string
	Key       string // natural key: question id, attempt id, export key
	DataJSON  string
	CreatedAt int64
}

type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Append(ctx context.Context, typ, key string, data any) error {
	dj := "{}"
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			dj = string(b)
		}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at) VALUES ($1,$2,$3,$4)`,
		typ, key, dj, time.Now().Unix())
	return err
}
