package exports

import (
	"context"

	"github.com/JaimeStill/promptvault/pkg/storage"
)

// System defines the public contract for prompt exports.
type System interface {
	// Create snapshots every prompt owned by userID.
	Create(ctx context.Context, userID string) (*Export, error)
	// Open returns the stored export. The caller must close the blob body.
	Open(ctx context.Context, userID, name string) (*storage.Blob, error)
}
