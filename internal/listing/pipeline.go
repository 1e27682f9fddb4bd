// Package listing assembles the displayed question sequence: it applies the
// active filter, splits the result into a "similar options" bucket and the
// rest, orders each bucket, and concatenates them. The output is always a
// permutation of the filtered set.
package listing

import (
	"sort"
	"strconv"
	"strings"

	"github.com/questbank/questbank/internal/question"
	"github.com/questbank/questbank/internal/similarity"
)

// SortMode selects the ordering of the non-similar bucket (and, with
// grouping off, of the whole list).
type SortMode string

const (
	SortChapterAsc  SortMode = "chapter_asc"
	SortChapterDesc SortMode = "chapter_desc"
	SortRandom      SortMode = "random"
)

// ParseSortMode maps a query value to a SortMode, defaulting to ascending
// chapter order.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortChapterDesc:
		return SortChapterDesc
	case SortRandom:
		return SortRandom
	default:
		return SortChapterAsc
	}
}

// Filter narrows the bank before ordering. Zero values mean "any".
type Filter struct {
	Chapter  int
	Type     string
	Language string
	Search   string
}

// Params is the full view state driving one list recomputation.
type Params struct {
	Filter       Filter
	Sort         SortMode
	GroupSimilar bool
}

// Seed derives the deterministic shuffle seed from the active filter and
// sort state, so a "random" order holds still until the state changes.
func (p Params) Seed() string {
	return strings.Join([]string{
		strconv.Itoa(p.Filter.Chapter),
		p.Filter.Type,
		p.Filter.Language,
		p.Filter.Search,
		string(p.Sort),
	}, "|")
}

// Result pairs the final ordering with the similarity metadata computed
// along the way, keyed by question id.
type Result struct {
	Questions []question.Question
	Meta      map[string]similarity.Meta
}

// Assemble runs the full pipeline over one immutable snapshot of the bank.
func Assemble(bank []question.Question, p Params, cfg similarity.Config) Result {
	filtered := applyFilter(bank, p.Filter)

	items := make([]similarity.Item, len(filtered))
	byID := make(map[string]question.Question, len(filtered))
	for i, q := range filtered {
		items[i] = similarity.Item{ID: q.ID, Options: q.OptionTexts()}
		byID[q.ID] = q
	}
	ix := similarity.NewIndex(items, cfg)
	meta := make(map[string]similarity.Meta, len(filtered))
	for _, q := range filtered {
		meta[q.ID] = ix.Meta(q.ID)
	}

	if !p.GroupSimilar {
		return Result{Questions: orderBucket(filtered, p), Meta: meta}
	}

	var flagged, rest []question.Question
	for _, q := range filtered {
		if meta[q.ID].HasSimilar {
			flagged = append(flagged, q)
		} else {
			rest = append(rest, q)
		}
	}

	chainIDs := ix.OrderSimilar(ids(flagged))
	chained := make([]question.Question, 0, len(chainIDs))
	for _, id := range chainIDs {
		chained = append(chained, byID[id])
	}
	if p.Sort == SortRandom {
		chained = similarity.SeededShuffle(chained, p.Seed())
	}

	out := append(chained, orderBucket(rest, p)...)
	return Result{Questions: out, Meta: meta}
}

func applyFilter(bank []question.Question, f Filter) []question.Question {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]question.Question, 0, len(bank))
	for _, q := range bank {
		if f.Chapter > 0 && q.Chapter != f.Chapter {
			continue
		}
		if f.Type != "" && q.Type != f.Type {
			continue
		}
		if f.Language != "" && q.Language != f.Language {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(q.QuestionText), search) {
			continue
		}
		out = append(out, q)
	}
	return out
}

func orderBucket(qs []question.Question, p Params) []question.Question {
	out := append([]question.Question(nil), qs...)
	switch p.Sort {
	case SortRandom:
		return similarity.SeededShuffle(out, p.Seed())
	case SortChapterDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Chapter > out[j].Chapter })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Chapter < out[j].Chapter })
	}
	return out
}

func ids(qs []question.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}
