package exam

// Attempt is one exam-taking session over a slice of the question bank.
type Attempt struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Status      string         `json:"status"` // in_progress|submitted
	Score       float64        `json:"score"`
	MaxScore    float64        `json:"max_score"`
	QuestionIDs []string       `json:"question_ids"`
	Responses   map[string]any `json:"responses"` // questionID -> response payload
	StartedAt   int64          `json:"started_at"`
	SubmittedAt int64          `json:"submitted_at,omitempty"`
}

const (
	StatusInProgress = "in_progress"
	StatusSubmitted  = "submitted"
)
