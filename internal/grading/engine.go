package grading

import (
	"context"
	"errors"

	"github.com/questbank/questbank/internal/similarity"
)

// Item is the minimal view of a question needed for scoring an attempt
// response: its type, point value and accepted answers.
type Item struct {
	Type      string
	Points    float64
	AnswerKey []string
}

// Result is the outcome of grading a single response.
type Result struct {
	AutoPoints  float64
	MaxPoints   float64
	NeedsManual bool
	Feedback    []string
}

// Strategy grades one question type.
type Strategy interface {
	Grade(ctx context.Context, item Item, response any) (Result, error)
}

// Grader routes a response to the Strategy registered for its question type.
type Grader interface {
	Grade(ctx context.Context, item Item, response any) (Result, error)
}

type registryGrader struct {
	strategies map[string]Strategy
}

func (g *registryGrader) Grade(ctx context.Context, item Item, response any) (Result, error) {
	s, ok := g.strategies[item.Type]
	if !ok {
		return Result{MaxPoints: item.Points, NeedsManual: true, Feedback: []string{"no strategy for type " + item.Type}}, nil
	}
	return s.Grade(ctx, item, response)
}

// Option tunes the default grader.
type Option func(*graderConfig)

type graderConfig struct {
	maxEditDistance   int
	allowPartialMulti bool
}

// WithMaxEditDistance sets the edit-distance slack for short text answers.
func WithMaxEditDistance(n int) Option { return func(c *graderConfig) { c.maxEditDistance = n } }

// WithPartialMulti toggles partial credit on multi-select questions.
func WithPartialMulti(b bool) Option { return func(c *graderConfig) { c.allowPartialMulti = b } }

// NewGrader installs the built-in strategies.
func NewGrader(opts ...Option) Grader {
	cfg := &graderConfig{maxEditDistance: 1, allowPartialMulti: true}
	for _, o := range opts {
		o(cfg)
	}
	return &registryGrader{strategies: map[string]Strategy{
		"mcq_single": singleChoice{},
		"true_false": singleChoice{},
		"mcq_multi":  multiChoice{allowPartial: cfg.allowPartialMulti},
		"short_text": shortText{maxEdit: cfg.maxEditDistance},
		"free_text":  manualOnly{},
	}}
}

type singleChoice struct{}

func (singleChoice) Grade(_ context.Context, item Item, response any) (Result, error) {
	res := Result{MaxPoints: item.Points}
	resp, ok := response.(string)
	if !ok {
		return res, errors.New("response must be a string")
	}
	for _, k := range item.AnswerKey {
		if resp == k {
			res.AutoPoints = item.Points
			break
		}
	}
	return res, nil
}

type multiChoice struct{ allowPartial bool }

func (s multiChoice) Grade(_ context.Context, item Item, response any) (Result, error) {
	res := Result{MaxPoints: item.Points}
	picked, ok := toStringSlice(response)
	if !ok {
		return res, errors.New("response must be a string slice")
	}
	key := toSet(item.AnswerKey)
	got := toSet(picked)
	if len(key) == 0 {
		return res, nil
	}
	hits := 0
	for k := range got {
		if _, ok := key[k]; !ok {
			// A wrong pick voids the question, partial credit included.
			return res, nil
		}
		hits++
	}
	switch {
	case hits == len(key):
		res.AutoPoints = item.Points
	case s.allowPartial:
		res.AutoPoints = item.Points * float64(hits) / float64(len(key))
	}
	return res, nil
}

type shortText struct{ maxEdit int }

func (s shortText) Grade(_ context.Context, item Item, response any) (Result, error) {
	res := Result{MaxPoints: item.Points}
	resp, ok := response.(string)
	if !ok {
		return res, errors.New("response must be a string")
	}
	norm := similarity.Normalize(resp)
	for _, k := range item.AnswerKey {
		nk := similarity.Normalize(k)
		if nk == norm {
			res.AutoPoints = item.Points
			return res, nil
		}
		if s.maxEdit > 0 && levenshtein(nk, norm) <= s.maxEdit {
			res.AutoPoints = item.Points * 0.5
			res.Feedback = append(res.Feedback, "close match (fuzzy)")
			return res, nil
		}
	}
	return res, nil
}

type manualOnly struct{}

func (manualOnly) Grade(_ context.Context, item Item, _ any) (Result, error) {
	return Result{MaxPoints: item.Points, NeedsManual: true, Feedback: []string{"manual grading required"}}, nil
}

func toStringSlice(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	}
	return nil, false
}

func toSet(ss []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		m[s] = struct{}{}
	}
	return m
}
