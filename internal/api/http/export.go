package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/questbank/questbank/internal/eventlog"
	"github.com/questbank/questbank/internal/export"
	"github.com/questbank/questbank/internal/listing"
	"github.com/questbank/questbank/internal/question"
	"github.com/questbank/questbank/internal/similarity"
	"github.com/questbank/questbank/internal/storage"
)

// ExportHandler renders the current listing (same filter/sort/grouping
// params as GET /questions) to plain text, archives a copy, and streams the
// text back.
func ExportHandler(bank question.Store, cfg similarity.Config, blobs *storage.FSStore, events *eventlog.Repo) http.HandlerFunc {
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
		includeAnswers := q.Get("answers") == "true"

		all, err := bank.List(r.Context(), question.ListOpts{})
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		res := listing.Assemble(all, p, cfg)
		text := export.Render(res.Questions, includeAnswers)

		key := storage.ExportKey(time.Now())
		if blobs != nil {
			if _, err := blobs.Put(key, strings.NewReader(text)); err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
		}
		if events != nil {
			_ = events.Append(r.Context(), eventlog.TypeExportRun, key, map[string]any{
				"questions": len(res.Questions), "answers": includeAnswers,
			})
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Export-Key", key)
		_, _ = w.Write([]byte(text))
	}
}
