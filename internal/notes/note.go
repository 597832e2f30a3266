// Package notes implements free-form notes attached to a prompt.
// A note is owned through its prompt.
package notes

import "time"

// Note is a comment attached to a prompt.
type Note struct {
	ID        string    `json:"id"`
	PromptID  string    `json:"prompt_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Command carries the content of a note to create or update.
type Command struct {
	Content string `json:"content" validate:"max=10000"`
}
