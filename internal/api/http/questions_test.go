package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/questbank/questbank/internal/api/http"
	"github.com/questbank/questbank/internal/question"
	"github.com/questbank/questbank/internal/similarity"

	"github.com/go-chi/chi/v5"
)

func seedBank(t *testing.T) question.Store {
	t.Helper()
	bank := question.NewInMemoryStore()
	docs := []map[string]any{
		{
			"id": "q1", "questionText": "Which protocol secures web traffic?",
			"chapter": float64(4), "createdAt": float64(400),
			"options": []any{
				"Transport Layer Security protocol",
				"Transport Layer Security protocols",
				"Simple Mail Transfer Protocol",
				"File Transfer Protocol suite",
			},
			"correctAnswer": "Transport Layer Security protocol",
		},
		{
			"id": "q2", "questionText": "Which port does SSH use by default?",
			"chapter": float64(1), "createdAt": float64(300),
			"options":       []any{"Port twenty two", "Port four hundred forty three", "Port eighty"},
			"correctAnswer": "Port twenty two",
		},
		{
			"id": "q3", "questionText": "Which layer handles routing?",
			"chapter": float64(2), "createdAt": float64(200),
			"options": []any{
				"Transport Layer Security protocol",
				"Network layer of the OSI model",
				"Physical cabling layer",
			},
			"correctAnswer": "Network layer of the OSI model",
		},
	}
	for _, d := range docs {
		if err := bank.Put(context.Background(), question.FromDoc(d)); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return bank
}

func newRouter(bank question.Store) chi.Router {
	cfg := similarity.DefaultConfig()
	r := chi.NewRouter()
	r.Get("/questions", api.ListQuestionsHandler(bank, cfg))
	r.Get("/questions/{questionID}", api.GetQuestionHandler(bank))
	r.Post("/questions", api.CreateQuestionHandler(bank, nil))
	r.Delete("/questions/{questionID}", api.DeleteQuestionHandler(bank, nil))
	r.Get("/questions/{questionID}/similar", api.SimilarQuestionsHandler(bank, cfg))
	return r
}

func TestListQuestionsGroupsSimilar(t *testing.T) {
	r := newRouter(seedBank(t))

	// q1 has a near-duplicate option pair, so grouping puts it at the head.
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/questions?sort=chapter_asc", nil))
	if rec.Code != 200 {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Questions []question.Question        `json:"questions"`
		Meta      map[string]similarity.Meta `json:"meta"`
		Total     int                        `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 3 || len(resp.Questions) != 3 {
		t.Fatalf("expected 3 questions, got total=%d len=%d", resp.Total, len(resp.Questions))
	}
	if resp.Questions[0].ID != "q1" {
		t.Fatalf("expected flagged q1 first, got %s", resp.Questions[0].ID)
	}
	if !resp.Meta["q1"].HasSimilar {
		t.Fatalf("q1 should be flagged: %+v", resp.Meta["q1"])
	}
	if resp.Meta["q2"].HasSimilar {
		t.Fatalf("q2 should not be flagged")
	}
	// Rest of the list in ascending chapter order.
	if resp.Questions[1].ID != "q2" || resp.Questions[2].ID != "q3" {
		t.Fatalf("rest order wrong: %s %s", resp.Questions[1].ID, resp.Questions[2].ID)
	}
}

func TestListQuestionsPaging(t *testing.T) {
	r := newRouter(seedBank(t))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/questions?limit=2&offset=2", nil))
	var resp struct {
		Questions []question.Question `json:"questions"`
		Total     int                 `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 3 || len(resp.Questions) != 1 {
		t.Fatalf("page after ordering: total=%d len=%d", resp.Total, len(resp.Questions))
	}
}

func TestCreateAndDeleteQuestion(t *testing.T) {
	r := newRouter(seedBank(t))

	body := `{"id":"q9","questionText":"New one","chapter":7}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/questions", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/questions/q9", nil))
	if rec.Code != 200 {
		t.Fatalf("get status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("DELETE", "/questions/q9", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/questions/q9", nil))
	if rec.Code != 404 {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	r := newRouter(question.NewInMemoryStore())

	for _, body := range []string{
		`not json`,
		`{"questionText":"no id"}`,
		`{"id":"q1"}`,
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("POST", "/questions", strings.NewReader(body)))
		if rec.Code != 400 {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestSimilarQuestionsRanking(t *testing.T) {
	r := newRouter(seedBank(t))

	// q1 and q3 share the TLS option, so q3 outranks q2 for q1.
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/questions/q1/similar", nil))
	if rec.Code != 200 {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		QuestionID string `json:"question_id"`
		Matches    []struct {
			ID    string  `json:"id"`
			Score float64 `json:"score"`
		} `json:"matches"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Matches) == 0 || resp.Matches[0].ID != "q3" {
		t.Fatalf("expected q3 as best match, got %+v", resp.Matches)
	}
	for i := 1; i < len(resp.Matches); i++ {
		if resp.Matches[i].Score > resp.Matches[i-1].Score {
			t.Fatalf("matches not sorted by score: %+v", resp.Matches)
		}
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/questions/nope/similar", nil))
	if rec.Code != 404 {
		t.Fatalf("expected 404 for unknown id, got %d", rec.Code)
	}
}
