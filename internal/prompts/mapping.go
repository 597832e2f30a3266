package prompts

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/promptvault/pkg/query"
	"github.com/JaimeStill/promptvault/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("content", "Content").
	Project("title", "Title").
	Project("source", "Source").
	Project("is_favorite", "IsFavorite").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = []query.SortField{
	{Field: "UpdatedAt", Descending: true},
	{Field: "ID"},
}

const returning = "id, user_id, content, title, source, is_favorite, created_at, updated_at"

// touch bumps updated_at so that it strictly increases on every mutation,
// even when two writes land within the clock's resolution.
const touch = "updated_at = GREATEST($%d, updated_at + interval '1 microsecond')"

// Filters contains optional filtering criteria for prompt lists.
// Nil fields are ignored.
type Filters struct {
	Favorite *bool   `json:"favorite,omitempty"`
	TagID    *string `json:"tag,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereEquals("IsFavorite", f.Favorite)

	if f.TagID != nil && *f.TagID != "" {
		b.WhereRaw(
			"EXISTS (SELECT 1 FROM prompt_tags pt WHERE pt.prompt_id = {alias}.id AND pt.tag_id = $%d)",
			*f.TagID,
		)
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("favorites"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Favorite = &b
		}
	}

	if t := values.Get("tag"); t != "" {
		f.TagID = &t
	}

	return f
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var p Prompt
	err := s.Scan(
		&p.ID,
		&p.UserID,
		&p.Content,
		&p.Title,
		&p.Source,
		&p.IsFavorite,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
