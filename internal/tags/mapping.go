package tags

import (
	"github.com/JaimeStill/promptvault/pkg/query"
	"github.com/JaimeStill/promptvault/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "tags", "t").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("name", "Name").
	Project("color", "Color")

var defaultSort = []query.SortField{
	{Field: "Name"},
	{Field: "ID"},
}

const returning = "id, user_id, name, color"

// Scan reads a tag from a row selecting id, user_id, name, color in that order.
func Scan(s repository.Scanner) (Tag, error) {
	var t Tag
	err := s.Scan(
		&t.ID,
		&t.UserID,
		&t.Name,
		&t.Color,
	)
	return t, err
}
