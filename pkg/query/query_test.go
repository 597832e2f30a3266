package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/promptvault/pkg/query"
)

func promptProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "prompts", "p").
		Project("id", "ID").
		Project("user_id", "UserID").
		Project("content", "Content").
		Project("title", "Title").
		Project("is_favorite", "IsFavorite").
		Project("updated_at", "UpdatedAt")
}

func ptr[T any](v T) *T { return &v }

func TestProjectionMap(t *testing.T) {
	p := promptProjection()

	assert.Equal(t, "public.prompts p", p.Table())
	assert.Equal(t, "p.content", p.Column("Content"))
	assert.Equal(t, "unmapped", p.Column("unmapped"))
	assert.Equal(t, "p.id, p.user_id, p.content, p.title, p.is_favorite, p.updated_at", p.Columns())
}

func TestBuilder_BuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(promptProjection()).BuildSingle("ID", "prompt-1")

	assert.Equal(t, "SELECT p.id, p.user_id, p.content, p.title, p.is_favorite, p.updated_at FROM public.prompts p WHERE p.id = $1", sql)
	assert.Equal(t, []any{"prompt-1"}, args)
}

func TestBuilder_BuildPageNumbersPlaceholders(t *testing.T) {
	b := query.NewBuilder(
		promptProjection(),
		query.SortField{Field: "UpdatedAt", Descending: true},
		query.SortField{Field: "ID"},
	)

	b.WhereEquals("UserID", "user-1").
		WhereEquals("IsFavorite", (*bool)(nil)).
		WhereEquals("IsFavorite", ptr(true)).
		WhereSearch(ptr("50%_off"), "Content", "Title")

	sql, args := b.BuildPage(10, 20)

	assert.Equal(t,
		"SELECT p.id, p.user_id, p.content, p.title, p.is_favorite, p.updated_at FROM public.prompts p"+
			" WHERE p.user_id = $1 AND p.is_favorite = $2 AND (p.content ILIKE $3 OR p.title ILIKE $4)"+
			" ORDER BY p.updated_at DESC, p.id ASC LIMIT 10 OFFSET 20",
		sql,
	)
	assert.Equal(t, []any{"user-1", ptr(true), `%50\%\_off%`, `%50\%\_off%`}, args)
}

func TestBuilder_BuildCountOmitsOrdering(t *testing.T) {
	b := query.NewBuilder(promptProjection(), query.SortField{Field: "ID"})
	b.WhereEquals("UserID", "user-1").WhereContains("Title", ptr(""))

	sql, args := b.BuildCount()

	assert.Equal(t, "SELECT COUNT(*) FROM public.prompts p WHERE p.user_id = $1", sql)
	assert.Equal(t, []any{"user-1"}, args)
}

func TestBuilder_WhereRaw(t *testing.T) {
	b := query.NewBuilder(promptProjection())
	b.WhereEquals("UserID", "user-1").
		WhereRaw("EXISTS (SELECT 1 FROM public.prompt_tags pt WHERE pt.prompt_id = {alias}.id AND pt.tag_id = $%d)", "tag-1")

	sql, args := b.Build()

	assert.Equal(t,
		"SELECT p.id, p.user_id, p.content, p.title, p.is_favorite, p.updated_at FROM public.prompts p"+
			" WHERE p.user_id = $1 AND EXISTS (SELECT 1 FROM public.prompt_tags pt WHERE pt.prompt_id = p.id AND pt.tag_id = $2)",
		sql,
	)
	assert.Equal(t, []any{"user-1", "tag-1"}, args)
}

func TestUpdateBuilder(t *testing.T) {
	u := query.NewUpdate("public.prompts")
	assert.True(t, u.Empty())

	query.SetIf(u, "content", ptr("new"))
	query.SetIf(u, "title", (*string)(nil))
	u.SetExpr("updated_at = GREATEST($%d, updated_at + interval '1 microsecond')", "now").
		Returning("id, content")

	assert.False(t, u.Empty())

	sql, args := u.Build("id", "prompt-1")

	assert.Equal(t,
		"UPDATE public.prompts SET content = $1, updated_at = GREATEST($2, updated_at + interval '1 microsecond') WHERE id = $3 RETURNING id, content",
		sql,
	)
	assert.Equal(t, []any{"new", "now", "prompt-1"}, args)
}
