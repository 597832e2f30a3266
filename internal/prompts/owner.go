package prompts

import "context"

// Owned returns the prompt when it exists and belongs to userID.
// Otherwise it returns ErrNotFound or ErrForbidden.
func Owned(ctx context.Context, sys System, userID, promptID string) (*Prompt, error) {
	p, err := sys.Find(ctx, promptID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrForbidden
	}
	return p, nil
}
