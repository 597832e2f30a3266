package notes

import "context"

// System defines the public contract for note domain operations.
type System interface {
	Create(ctx context.Context, promptID string, cmd Command) (*Note, error)
	Find(ctx context.Context, id string) (*Note, error)
	// List returns the prompt's notes, oldest first.
	List(ctx context.Context, promptID string) ([]Note, error)
	Update(ctx context.Context, id string, cmd Command) (*Note, error)
	Delete(ctx context.Context, id string) error
}
