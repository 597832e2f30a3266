// Package prompts implements the prompt domain: stored text snippets owned by a
// user, their favorite flag, tag attachments, and the share intake endpoint.
package prompts

import "time"

// Prompt is a stored text snippet.
type Prompt struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Content    string    `json:"content"`
	Title      *string   `json:"title"`
	Source     *string   `json:"source"`
	IsFavorite bool      `json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to create a prompt.
type CreateCommand struct {
	Content string  `json:"content"`
	Title   *string `json:"title" validate:"omitempty,max=500"`
	Source  *string `json:"source" validate:"omitempty,max=2048"`
}

// UpdateCommand carries the fields to change on a prompt. Nil fields are left unchanged.
type UpdateCommand struct {
	Content    *string `json:"content"`
	Title      *string `json:"title" validate:"omitempty,max=500"`
	Source     *string `json:"source" validate:"omitempty,max=2048"`
	IsFavorite *bool   `json:"is_favorite"`
}

// AttachRequest is the body of POST /prompts/{id}/tags.
type AttachRequest struct {
	TagID string `json:"tagId"`
}
