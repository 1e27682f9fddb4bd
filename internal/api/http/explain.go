package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/questbank/questbank/internal/ai"
	"github.com/questbank/questbank/internal/question"

	"github.com/go-chi/chi/v5"
)

// ExplainQuestionHandler forwards one question to the external explanation
// backend. 503 when no backend is configured.
func ExplainQuestionHandler(bank question.Store, client *ai.Client) http.HandlerFunc {
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
		var req struct {
			DetailLevel string `json:"detail_level"`
		}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req) // body is optional
		}
		out, err := client.Explain(r.Context(), ai.ExplainRequest{
			QuestionText:   q.QuestionText,
			Options:        q.OptionTexts(),
			CorrectAnswers: q.CorrectAnswer,
			DetailLevel:    req.DetailLevel,
			Language:       q.Language,
		})
		if err != nil {
			if errors.Is(err, ai.ErrDisabled) {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		writeJSON(w, out)
	}
}
