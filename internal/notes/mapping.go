package notes

import (
	"github.com/JaimeStill/promptvault/pkg/query"
	"github.com/JaimeStill/promptvault/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "notes", "n").
	Project("id", "ID").
	Project("prompt_id", "PromptID").
	Project("content", "Content").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = []query.SortField{
	{Field: "CreatedAt"},
	{Field: "ID"},
}

const returning = "id, prompt_id, content, created_at, updated_at"

func scanNote(s repository.Scanner) (Note, error) {
	var n Note
	err := s.Scan(
		&n.ID,
		&n.PromptID,
		&n.Content,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	return n, err
}
