package question

import (
	"strings"

	"github.com/questbank/questbank/internal/similarity"
)

// Question is one bank entry. Doc keeps the raw document as ingested so the
// option extractor sees the original field shapes (string arrays, object
// arrays, or keyed maps).
type Question struct {
	ID            string         `json:"id"`
	QuestionText  string         `json:"questionText"`
	Chapter       int            `json:"chapter,omitempty"`
	Type          string         `json:"questionType,omitempty"`
	Language      string         `json:"language,omitempty"`
	CorrectAnswer []string       `json:"correctAnswer,omitempty"`
	CreatedAt     int64          `json:"createdAt,omitempty"`
	Doc           map[string]any `json:"-"`
}

// OptionTexts returns the question's options as a flat ordered string slice,
// or nil for free-response questions.
func (q Question) OptionTexts() []string {
	return similarity.ExtractOptions(q.Doc)
}

// FromDoc builds a Question from a raw JSON document, coercing the loose
// field shapes a document store can hold. Missing fields stay zero; the
// document itself is retained.
func FromDoc(doc map[string]any) Question {
	q := Question{Doc: doc}
	q.ID = stringField(doc, "id", "_id")
	q.QuestionText = stringField(doc, "questionText", "question", "text")
	q.Type = stringField(doc, "questionType", "type")
	q.Language = stringField(doc, "language", "lang")
	q.Chapter = intField(doc, "chapter")
	q.CreatedAt = int64Field(doc, "createdAt")
	q.CorrectAnswer = answerList(doc["correctAnswer"])
	return q
}

// answerList accepts a single answer string or an ordered sequence of them.
func answerList(v any) []string {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
	case []string:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s := strings.TrimSpace(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if str, ok := e.(string); ok {
				if s := strings.TrimSpace(str); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	}
	return nil
}

func stringField(doc map[string]any, names ...string) string {
	for _, n := range names {
		if s, ok := doc[n].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func intField(doc map[string]any, name string) int {
	switch t := doc[name].(type) {
	case float64: // JSON numbers decode as float64
		return int(t)
	case int:
		return t
	}
	return 0
}

func int64Field(doc map[string]any, name string) int64 {
	switch t := doc[name].(type) {
	case float64:
		return int64(t)
	case int64:
		return t
	case int:
		return int64(t)
	}
	return 0
}
