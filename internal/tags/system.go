package tags

import (
	"context"

	"github.com/JaimeStill/promptvault/pkg/pagination"
)

// System defines the public contract for tag domain operations.
type System interface {
	Create(ctx context.Context, ownerID string, cmd CreateCommand) (*Tag, error)
	Find(ctx context.Context, id string) (*Tag, error)
	List(ctx context.Context, ownerID string, page pagination.PageRequest) (*pagination.PageResult[Tag], error)
	Update(ctx context.Context, id string, cmd UpdateCommand) (*Tag, error)
	// Delete removes the tag and detaches it from every prompt.
	Delete(ctx context.Context, id string) error
}
