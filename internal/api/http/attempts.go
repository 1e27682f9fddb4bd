package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/questbank/questbank/internal/exam"
	"github.com/questbank/questbank/internal/listing"
	"github.com/questbank/questbank/internal/question"
	"github.com/questbank/questbank/internal/rbac"
	"github.com/questbank/questbank/internal/similarity"

	"github.com/go-chi/chi/v5"
)

// CreateAttemptHandler starts an attempt over an explicit question_ids list,
// or, when the list is absent, over a filter slice resolved through the
// listing pipeline so the attempt sequence matches the displayed order.
func CreateAttemptHandler(svc *exam.Service, bank question.Store, cfg similarity.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuestionIDs  []string `json:"question_ids"`
			Chapter      int      `json:"chapter"`
			Type         string   `json:"type"`
			Language     string   `json:"lang"`
			Search       string   `json:"q"`
			Sort         string   `json:"sort"`
			GroupSimilar *bool    `json:"group_similar"`
			Limit        int      `json:"limit"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		userID := rbac.SubjectFromContext(r.Context())
		if userID == "" {
			http.Error(w, "no subject", 401)
			return
		}

		qids := req.QuestionIDs
		if len(qids) == 0 {
			all, err := bank.List(r.Context(), question.ListOpts{})
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			p := listing.Params{
				Filter: listing.Filter{
					Chapter:  req.Chapter,
					Type:     req.Type,
					Language: req.Language,
					Search:   req.Search,
				},
				Sort:         listing.ParseSortMode(req.Sort),
				GroupSimilar: req.GroupSimilar == nil || *req.GroupSimilar,
			}
			res := listing.Assemble(all, p, cfg)
			for _, q := range res.Questions {
				qids = append(qids, q.ID)
				if req.Limit > 0 && len(qids) == req.Limit {
					break
				}
			}
		}

		a, err := svc.Start(r.Context(), userID, qids)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, a)
	}
}

func SaveResponsesHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "attemptID")
		var resp map[string]any
		if err := json.NewDecoder(r.Body).Decode(&resp); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		a, err := svc.SaveResponses(r.Context(), id, resp)
		if err != nil {
			http.Error(w, err.Error(), attemptErrStatus(err))
			return
		}
		writeJSON(w, a)
	}
}

func SubmitAttemptHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "attemptID")
		a, err := svc.Submit(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), attemptErrStatus(err))
			return
		}
		writeJSON(w, a)
	}
}

// GetAttemptHandler returns one attempt. Students only see their own; the
// attempt:view-all permission lifts the owner check.
func GetAttemptHandler(svc *exam.Service) http.HandlerFunc {
	checker := rbac.NewChecker(nil)
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "attemptID")
		a, err := svc.Get(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), attemptErrStatus(err))
			return
		}
		role := rbac.RoleFromContext(r.Context())
		if !checker.Has(role, "attempt:view-all") && a.UserID != rbac.SubjectFromContext(r.Context()) {
			http.Error(w, "forbidden", 403)
			return
		}
		writeJSON(w, a)
	}
}

func attemptErrStatus(err error) int {
	if errors.Is(err, exam.ErrNotFound) {
		return 404
	}
	return 400
}
