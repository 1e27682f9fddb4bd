package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/questbank/questbank/internal/eventlog"
	"github.com/questbank/questbank/internal/listing"
	"github.com/questbank/questbank/internal/question"
	"github.com/questbank/questbank/internal/rbac"
	"github.com/questbank/questbank/internal/similarity"

	"github.com/go-chi/chi/v5"
)

// listResponse is one page of the assembled listing, with the similarity
// metadata for the returned questions.
type listResponse struct {
	Questions []question.Question        `json:"questions"`
	Meta      map[string]similarity.Meta `json:"meta"`
	Total     int                        `json:"total"`
	Limit     int                        `json:"limit"`
	Offset    int                        `json:"offset"`
}

// ListQuestionsHandler runs the full listing pipeline (filter, similarity
// pass, bucket ordering) over the bank, then pages the result. Paging happens
// after ordering so the sequence is stable across pages.
func ListQuestionsHandler(bank question.Store, cfg similarity.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		p := listing.Params{
			Filter: listing.Filter{
				Chapter:  parseIntDefault(q.Get("chapter"), 0),
				Type:     q.Get("type"),
				Language: q.Get("lang"),
				Search:   q.Get("q"),
			},
			Sort:         listing.ParseSortMode(q.Get("sort")),
			GroupSimilar: q.Get("group_similar") != "false",
		}
		limit := parseIntDefault(q.Get("limit"), 50)
		if limit <= 0 || limit > 500 {
			limit = 50
		}
		offset := parseIntDefault(q.Get("offset"), 0)
		if offset < 0 {
			offset = 0
		}

		// The pipeline filters in memory; fetch the unpaged bank.
		all, err := bank.List(r.Context(), question.ListOpts{})
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		res := listing.Assemble(all, p, cfg)

		total := len(res.Questions)
		page := res.Questions
		if offset >= total {
			page = nil
		} else {
			end := offset + limit
			if end > total {
				end = total
			}
			page = page[offset:end]
		}
		meta := make(map[string]similarity.Meta, len(page))
		for _, pq := range page {
			meta[pq.ID] = res.Meta[pq.ID]
		}

		writeJSON(w, listResponse{
			Questions: page, Meta: meta,
			Total: total, Limit: limit, Offset: offset,
		})
	}
}

// GetQuestionHandler returns one question. The answer key is stripped unless
// the role can see it (question:view-answers, held by editor and admin).
func GetQuestionHandler(bank question.Store) http.HandlerFunc {
	checker := rbac.NewChecker(nil)
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "questionID")
		q, err := bank.Get(r.Context(), id)
		if err != nil {
			status := 500
			if errors.Is(err, question.ErrNotFound) {
				status = 404
			}
			http.Error(w, err.Error(), status)
			return
		}
		if !checker.Has(rbac.RoleFromContext(r.Context()), "question:view-answers") {
			q.CorrectAnswer = nil
		}
		writeJSON(w, q)
	}
}

// CreateQuestionHandler ingests a raw question document. The document is
// stored as-is; typed fields are coerced out of it for filtering.
func CreateQuestionHandler(bank question.Store, events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc map[string]any
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		q := question.FromDoc(doc)
		if q.ID == "" {
			http.Error(w, "id required", 400)
			return
		}
		if q.QuestionText == "" {
			http.Error(w, "questionText required", 400)
			return
		}
		if err := bank.Put(r.Context(), q); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if events != nil {
			_ = events.Append(r.Context(), eventlog.TypeQuestionCreated, q.ID, map[string]any{
				"chapter": q.Chapter, "type": q.Type,
			})
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, q)
	}
}

func DeleteQuestionHandler(bank question.Store, events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "questionID")
		if err := bank.Delete(r.Context(), id); err != nil {
			status := 500
			if errors.Is(err, question.ErrNotFound) {
				status = 404
			}
			http.Error(w, err.Error(), status)
			return
		}
		if events != nil {
			_ = events.Append(r.Context(), eventlog.TypeQuestionDeleted, id, nil)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// similarEntry is one neighbor by the cross-question metric.
type similarEntry struct {
	ID           string  `json:"id"`
	QuestionText string  `json:"question_text"`
	Score        float64 `json:"score"`
}

// SimilarQuestionsHandler ranks the rest of the bank against one question by
// the symmetrized best-match option metric. Zero-score entries are omitted.
func SimilarQuestionsHandler(bank question.Store, cfg similarity.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "questionID")
		limit := parseIntDefault(r.URL.Query().Get("limit"), 10)
		if limit <= 0 {
			limit = 10
		}

		all, err := bank.List(r.Context(), question.ListOpts{})
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		byID := make(map[string]question.Question, len(all))
		items := make([]similarity.Item, len(all))
		for i, q := range all {
			items[i] = similarity.Item{ID: q.ID, Options: q.OptionTexts()}
			byID[q.ID] = q
		}
		if _, ok := byID[id]; !ok {
			http.Error(w, "question not found", 404)
			return
		}
		ix := similarity.NewIndex(items, cfg)

		entries := make([]similarEntry, 0, limit)
		for _, other := range ix.IDs() {
			if other == id {
				continue
			}
			score := ix.ItemSimilarity(id, other)
			if score <= 0 {
				continue
			}
			entries = append(entries, similarEntry{
				ID: other, QuestionText: byID[other].QuestionText, Score: score,
			})
		}
		// Highest score first; index order breaks ties, which is the bank's
		// listing order and therefore stable.
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
		if len(entries) > limit {
			entries = entries[:limit]
		}
		writeJSON(w, map[string]any{"question_id": id, "matches": entries})
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
