package prompts

import (
	"context"

	"github.com/JaimeStill/promptvault/internal/tags"
	"github.com/JaimeStill/promptvault/pkg/pagination"
)

// System defines the public contract for prompt domain operations.
type System interface {
	Create(ctx context.Context, ownerID string, cmd CreateCommand) (*Prompt, error)
	Find(ctx context.Context, id string) (*Prompt, error)

	List(
		ctx context.Context,
		ownerID string,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Prompt], error)

	// Search matches q case-insensitively against content and title.
	Search(
		ctx context.Context,
		ownerID string,
		q string,
		page pagination.PageRequest,
	) (*pagination.PageResult[Prompt], error)

	Update(ctx context.Context, id string, cmd UpdateCommand) (*Prompt, error)
	// Delete removes the prompt with its tag attachments and notes.
	Delete(ctx context.Context, id string) error
	ToggleFavorite(ctx context.Context, id string) (*Prompt, error)

	// Attach links a tag to a prompt. Attaching twice is a no-op.
	Attach(ctx context.Context, promptID, tagID string) error
	Detach(ctx context.Context, promptID, tagID string) error
	Tags(ctx context.Context, promptID string) ([]tags.Tag, error)
}
