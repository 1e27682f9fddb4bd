package export

import (
	"strings"
	"testing"

	"github.com/questbank/questbank/internal/question"
)

func TestRender(t *testing.T) {
	qs := []question.Question{
		{
			ID:            "q1",
			QuestionText:  "Which list holds revoked certificates?",
			CorrectAnswer: []string{"CRL"},
			Doc:           map[string]any{"options": []any{"CRL", "CSR", "OCSP"}},
		},
		{
			ID:           "q2",
			QuestionText: "Explain key escrow.",
		},
	}

	out := Render(qs, false)
	if !strings.Contains(out, "1. Which list holds revoked certificates?") {
		t.Fatalf("missing numbered question:\n%s", out)
	}
	if !strings.Contains(out, "   A) CRL\n   B) CSR\n   C) OCSP\n") {
		t.Fatalf("missing lettered options:\n%s", out)
	}
	if strings.Contains(out, "Answer:") {
		t.Fatalf("answers leaked without includeAnswers:\n%s", out)
	}
	if !strings.Contains(out, "2. Explain key escrow.") {
		t.Fatalf("free-response question missing:\n%s", out)
	}

	withAnswers := Render(qs, true)
	if !strings.Contains(withAnswers, "   Answer: CRL\n") {
		t.Fatalf("answer line missing:\n%s", withAnswers)
	}
}

func TestRenderEmpty(t *testing.T) {
	if out := Render(nil, true); out != "" {
		t.Fatalf("empty input rendered %q", out)
	}
}

func TestOptionLetter(t *testing.T) {
	cases := map[int]string{0: "A", 1: "B", 25: "Z", 26: "AA", 27: "AB"}
	for i, want := range cases {
		if got := optionLetter(i); got != want {
			t.Errorf("optionLetter(%d) = %q, want %q", i, got, want)
		}
	}
}
