package users

import "context"

// System defines the public contract for user domain operations.
type System interface {
	Create(ctx context.Context, cmd CreateCommand) (*User, error)
	Find(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*Credentials, error)
}
