package question

import "context"

// ListOpts narrows and pages a bank listing. Zero values mean "any".
type ListOpts struct {
	Chapter  int
	Type     string
	Language string
	Q        string // substring match on question text
	Limit    int
	Offset   int
}

// Store is the persistent question bank. List returns questions ordered by
// descending creation time.
type Store interface {
	Put(ctx context.Context, q Question) error
	Get(ctx context.Context, id string) (Question, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListOpts) ([]Question, error)
}
