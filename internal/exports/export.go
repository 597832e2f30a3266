// Package exports snapshots a user's prompts, with their tag names, into a
// JSON document in blob storage and serves it back for download.
package exports

import (
	"time"

	"github.com/JaimeStill/promptvault/internal/prompts"
)

// Export describes a stored snapshot.
type Export struct {
	Name      string    `json:"name"`
	Count     int       `json:"count"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Document is the JSON body of an export.
type Document struct {
	UserID     string    `json:"user_id"`
	ExportedAt time.Time `json:"exported_at"`
	Prompts    []Entry   `json:"prompts"`
}

// Entry is a prompt with the names of its tags.
type Entry struct {
	prompts.Prompt
	Tags []string `json:"tags"`
}
