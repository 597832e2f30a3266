package tags

import "context"

// Owned returns the tag when it exists and belongs to userID.
// Otherwise it returns ErrNotFound or ErrForbidden.
func Owned(ctx context.Context, sys System, userID, tagID string) (*Tag, error) {
	t, err := sys.Find(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, ErrForbidden
	}
	return t, nil
}
