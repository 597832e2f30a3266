// Package tags implements user-defined labels that can be attached to prompts.
package tags

// Tag is a named, optionally colored label owned by a single user.
type Tag struct {
	ID     string  `json:"id"`
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Color  *string `json:"color"`
}

// CreateCommand carries the data needed to create a tag.
type CreateCommand struct {
	Name  string  `json:"name" validate:"max=100"`
	Color *string `json:"color" validate:"omitempty,rgbcolor"`
}

// UpdateCommand carries the fields to change on a tag. Nil fields are left unchanged.
type UpdateCommand struct {
	Name  *string `json:"name" validate:"omitempty,max=100"`
	Color *string `json:"color" validate:"omitempty,rgbcolor"`
}
