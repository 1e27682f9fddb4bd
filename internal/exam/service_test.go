package exam_test

import (
	"context"
	"testing"

	"github.com/questbank/questbank/internal/exam"
	"github.com/questbank/questbank/internal/grading"
	"github.com/questbank/questbank/internal/question"
)

type recordedEvent struct {
	typ, key string
}

type fakeRecorder struct{ events []recordedEvent }

func (f *fakeRecorder) Append(_ context.Context, typ, key string, _ any) error {
	f.events = append(f.events, recordedEvent{typ: typ, key: key})
	return nil
}

func seedService(t *testing.T) (*exam.Service, *fakeRecorder) {
	t.Helper()
	bank := question.NewInMemoryStore()
	ctx := context.Background()
	seed := []question.Question{
		{ID: "q1", QuestionText: "Pick B", Type: "mcq_single", CorrectAnswer: []string{"B"},
			Doc: map[string]any{"options": []any{"A", "B", "C"}}},
		{ID: "q2", QuestionText: "Pick A and C", Type: "mcq_multi", CorrectAnswer: []string{"A", "C"},
			Doc: map[string]any{"options": []any{"A", "B", "C"}}},
		{ID: "q3", QuestionText: "Name the protocol", Type: "short_text", CorrectAnswer: []string{"Kerberos"}},
	}
	for _, q := range seed {
		if err := bank.Put(ctx, q); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	rec := &fakeRecorder{}
	return exam.NewService(exam.NewInMemoryStore(), bank, grading.NewGrader(), rec), rec
}

func TestAttemptFlow(t *testing.T) {
	svc, rec := seedService(t)
	ctx := context.Background()

	a, err := svc.Start(ctx, "u1", []string{"q1", "q2", "q3"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if a.Status != exam.StatusInProgress {
		t.Fatalf("status %q", a.Status)
	}

	if _, err := svc.SaveResponses(ctx, a.ID, map[string]any{
		"q1": "B",
		"q2": []string{"A"},
		"q3": "kerberos",
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	done, err := svc.Submit(ctx, a.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if done.Status != exam.StatusSubmitted {
		t.Fatalf("status %q", done.Status)
	}
	if done.MaxScore != 3 {
		t.Fatalf("max score %v", done.MaxScore)
	}
	// q1 full point, q2 half (partial credit 1/2), q3 full via normalization.
	if done.Score != 2.5 {
		t.Fatalf("score %v, want 2.5", done.Score)
	}
	if len(rec.events) != 1 || rec.events[0].typ != "AttemptSubmitted" || rec.events[0].key != a.ID {
		t.Fatalf("events %v", rec.events)
	}

	// Saving after submit is rejected; resubmitting is a no-op.
	if _, err := svc.SaveResponses(ctx, a.ID, map[string]any{"q1": "A"}); err == nil {
		t.Fatal("expected save-after-submit error")
	}
	again, err := svc.Submit(ctx, a.ID)
	if err != nil || again.Score != done.Score {
		t.Fatalf("resubmit changed result: %+v err=%v", again, err)
	}
	if len(rec.events) != 1 {
		t.Fatalf("resubmit must not append events, got %v", rec.events)
	}
}

func TestStartValidatesQuestions(t *testing.T) {
	svc, _ := seedService(t)
	ctx := context.Background()
	if _, err := svc.Start(ctx, "u1", nil); err == nil {
		t.Fatal("expected error for empty question set")
	}
	if _, err := svc.Start(ctx, "u1", []string{"missing"}); err == nil {
		t.Fatal("expected error for unknown question id")
	}
}
