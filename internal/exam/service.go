package exam

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/questbank/questbank/internal/eventlog"
	"github.com/questbank/questbank/internal/grading"
	"github.com/questbank/questbank/internal/question"
)

// Recorder is the slice of the event log the service needs.
type Recorder interface {
	Append(ctx context.Context, typ, key string, data any) error
}

// Service drives the exam-taking flow: start an attempt over a set of
// question ids, merge saved responses, and score on submit.
type Service struct {
	attempts Store
	bank     question.Store
	grader   grading.Grader
	events   Recorder
}

func NewService(attempts Store, bank question.Store, grader grading.Grader, events Recorder) *Service {
	return &Service{attempts: attempts, bank: bank, grader: grader, events: events}
}

// Start creates an in-progress attempt. Every question id must exist.
func (s *Service) Start(ctx context.Context, userID string, questionIDs []string) (Attempt, error) {
	if len(questionIDs) == 0 {
		return Attempt{}, errors.New("attempt needs at least one question")
	}
	for _, id := range questionIDs {
		if _, err := s.bank.Get(ctx, id); err != nil {
			return Attempt{}, err
		}
	}
	a := Attempt{
		ID:          newAttemptID(),
		UserID:      userID,
		Status:      StatusInProgress,
		QuestionIDs: questionIDs,
		Responses:   map[string]any{},
		StartedAt:   time.Now().Unix(),
	}
	if err := s.attempts.Create(ctx, a); err != nil {
		return Attempt{}, err
	}
	return a, nil
}

// SaveResponses merges resp into the attempt. Submitted attempts are frozen.
func (s *Service) SaveResponses(ctx context.Context, attemptID string, resp map[string]any) (Attempt, error) {
	a, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return Attempt{}, err
	}
	if a.Status == StatusSubmitted {
		return Attempt{}, errors.New("attempt already submitted")
	}
	if a.Responses == nil {
		a.Responses = map[string]any{}
	}
	for k, v := range resp {
		a.Responses[k] = v
	}
	if err := s.attempts.Update(ctx, a); err != nil {
		return Attempt{}, err
	}
	return a, nil
}

// Submit scores the attempt against the bank's answer keys. Submitting twice
// is a no-op returning the stored result.
func (s *Service) Submit(ctx context.Context, attemptID string) (Attempt, error) {
	a, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return Attempt{}, err
	}
	if a.Status == StatusSubmitted {
		return a, nil
	}
	score, max := 0.0, 0.0
	for _, qid := range a.QuestionIDs {
		q, err := s.bank.Get(ctx, qid)
		if err != nil {
			continue
		}
		item := grading.Item{Type: questionType(q), Points: 1, AnswerKey: q.CorrectAnswer}
		max += item.Points
		resp, has := a.Responses[qid]
		if !has {
			continue
		}
		res, err := s.grader.Grade(ctx, item, resp)
		if err != nil {
			continue
		}
		score += res.AutoPoints
	}
	a.Score = score
	a.MaxScore = max
	a.Status = StatusSubmitted
	a.SubmittedAt = time.Now().Unix()
	if err := s.attempts.Update(ctx, a); err != nil {
		return Attempt{}, err
	}
	if s.events != nil {
		_ = s.events.Append(ctx, eventlog.TypeAttemptSubmitted, a.ID, map[string]any{
			"user_id": a.UserID, "score": a.Score, "max_score": a.MaxScore,
		})
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, attemptID string) (Attempt, error) {
	return s.attempts.Get(ctx, attemptID)
}

// questionType defaults untyped bank entries to single choice when they have
// options, free text otherwise.
func questionType(q question.Question) string {
	if q.Type != "" {
		return q.Type
	}
	if len(q.OptionTexts()) > 0 {
		return "mcq_single"
	}
	return "free_text"
}

func newAttemptID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return time.Now().Format("20060102150405.000000000")
	}
	return hex.EncodeToString(b)
}
