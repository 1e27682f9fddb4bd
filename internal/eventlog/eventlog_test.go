package eventlog_test

import (
	"context"
	"testing"

	"github.com/questbank/questbank/internal/db"
	"github.com/questbank/questbank/internal/eventlog"
)

func TestAppend(t *testing.T) {
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer dbh.Close()

	repo := eventlog.NewRepo(dbh)
	if err := repo.Append(ctx, eventlog.TypeQuestionCreated, "q1", map[string]any{"chapter": 3}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Append(ctx, eventlog.TypeAttemptSubmitted, "a1", nil); err != nil {
		t.Fatalf("append nil data: %v", err)
	}

	rows, err := dbh.Query(`SELECT seq, typ, key, data FROM event_log ORDER BY seq`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rows.Close()

	var got []eventlog.Event
	for rows.Next() {
		var e eventlog.Event
		if err := rows.Scan(&e.Seq, &e.Type, &e.Key, &e.DataJSON); err != nil {
			t.Fatalf("scan: %v", err)
		}
		got = append(got, e)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Type != eventlog.TypeQuestionCreated || got[0].Key != "q1" || got[0].DataJSON != `{"chapter":3}` {
		t.Fatalf("first event mismatch: %+v", got[0])
	}
	if got[1].DataJSON != "{}" {
		t.Fatalf("nil data should store {}: %q", got[1].DataJSON)
	}
	if got[1].Seq <= got[0].Seq {
		t.Fatalf("seq must increase: %d then %d", got[0].Seq, got[1].Seq)
	}
}
