package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/questbank/questbank/internal/api/http"
	"github.com/questbank/questbank/internal/exam"
	"github.com/questbank/questbank/internal/grading"
	"github.com/questbank/questbank/internal/question"
	"github.com/questbank/questbank/internal/rbac"
	"github.com/questbank/questbank/internal/similarity"

	"github.com/go-chi/chi/v5"
)

func identity(sub, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := rbac.WithSubject(r.Context(), sub)
			ctx = rbac.WithRole(ctx, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newAttemptRouter(t *testing.T, sub, role string) (chi.Router, question.Store) {
	t.Helper()
	bank := seedBank(t)
	svc := exam.NewService(exam.NewInMemoryStore(), bank, grading.NewGrader(), nil)
	cfg := similarity.DefaultConfig()

	r := chi.NewRouter()
	r.Use(identity(sub, role))
	r.Post("/attempts", api.CreateAttemptHandler(svc, bank, cfg))
	r.Post("/attempts/{attemptID}/responses", api.SaveResponsesHandler(svc))
	r.Post("/attempts/{attemptID}/submit", api.SubmitAttemptHandler(svc))
	r.Get("/attempts/{attemptID}", api.GetAttemptHandler(svc))
	return r, bank
}

func TestCreateAttemptExplicitIDs(t *testing.T) {
	r, _ := newAttemptRouter(t, "u1", "student")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/attempts", strings.NewReader(`{"question_ids":["q1","q2"]}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var a exam.Attempt
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a.UserID != "u1" || len(a.QuestionIDs) != 2 || a.Status != exam.StatusInProgress {
		t.Fatalf("attempt mismatch: %+v", a)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/attempts", strings.NewReader(`{"question_ids":["nope"]}`)))
	if rec.Code != 400 {
		t.Fatalf("unknown id should 400, got %d", rec.Code)
	}
}

func TestCreateAttemptFromFilter(t *testing.T) {
	r, _ := newAttemptRouter(t, "u1", "student")

	// No explicit ids: resolve through the listing pipeline. The flagged
	// question leads, so limit 2 keeps q1 plus the first rest entry.
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/attempts", strings.NewReader(`{"sort":"chapter_asc","limit":2}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var a exam.Attempt
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(a.QuestionIDs) != 2 || a.QuestionIDs[0] != "q1" || a.QuestionIDs[1] != "q2" {
		t.Fatalf("filter slice mismatch: %v", a.QuestionIDs)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/attempts", strings.NewReader(`{"chapter":99}`)))
	if rec.Code != 400 {
		t.Fatalf("empty filter slice should 400, got %d", rec.Code)
	}
}

func TestAttemptOwnerCheck(t *testing.T) {
	bank := seedBank(t)
	svc := exam.NewService(exam.NewInMemoryStore(), bank, grading.NewGrader(), nil)
	cfg := similarity.DefaultConfig()

	asUser := func(sub, role string) chi.Router {
		r := chi.NewRouter()
		r.Use(identity(sub, role))
		r.Post("/attempts", api.CreateAttemptHandler(svc, bank, cfg))
		r.Get("/attempts/{attemptID}", api.GetAttemptHandler(svc))
		return r
	}

	rec := httptest.NewRecorder()
	asUser("u1", "student").ServeHTTP(rec, httptest.NewRequest("POST", "/attempts", strings.NewReader(`{"question_ids":["q1"]}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d", rec.Code)
	}
	var a exam.Attempt
	_ = json.Unmarshal(rec.Body.Bytes(), &a)

	rec = httptest.NewRecorder()
	asUser("u1", "student").ServeHTTP(rec, httptest.NewRequest("GET", "/attempts/"+a.ID, nil))
	if rec.Code != 200 {
		t.Fatalf("owner should read own attempt, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	asUser("u2", "student").ServeHTTP(rec, httptest.NewRequest("GET", "/attempts/"+a.ID, nil))
	if rec.Code != 403 {
		t.Fatalf("other student should be forbidden, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	asUser("teach", "editor").ServeHTTP(rec, httptest.NewRequest("GET", "/attempts/"+a.ID, nil))
	if rec.Code != 200 {
		t.Fatalf("editor has attempt:view-all, got %d", rec.Code)
	}
}

func TestAttemptSubmitFlow(t *testing.T) {
	r, _ := newAttemptRouter(t, "u1", "student")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/attempts", strings.NewReader(`{"question_ids":["q1","q2"]}`)))
	var a exam.Attempt
	_ = json.Unmarshal(rec.Body.Bytes(), &a)

	body := `{"q1":"Transport Layer Security protocol","q2":"Port eighty"}`
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/attempts/"+a.ID+"/responses", strings.NewReader(body)))
	if rec.Code != 200 {
		t.Fatalf("save: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/attempts/"+a.ID+"/submit", nil))
	if rec.Code != 200 {
		t.Fatalf("submit: %d %s", rec.Code, rec.Body.String())
	}
	var sub exam.Attempt
	_ = json.Unmarshal(rec.Body.Bytes(), &sub)
	if sub.Status != exam.StatusSubmitted || sub.Score != 1 || sub.MaxScore != 2 {
		t.Fatalf("score mismatch: %+v", sub)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/attempts/nope", nil))
	if rec.Code != 404 {
		t.Fatalf("unknown attempt should 404, got %d", rec.Code)
	}
}
