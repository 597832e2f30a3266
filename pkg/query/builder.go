package query

import (
	"fmt"
	"reflect"
	"strings"
)

const placeholder = "$%d"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type condition struct {
	clause string
	args   []any
}

// SortField represents a single column in an ORDER BY clause.
// Field is the logical field name (mapped via ProjectionMap).
// Descending controls sort direction (false = ASC, true = DESC).
type SortField struct {
	Field      string
	Descending bool
}

// Builder constructs SELECT queries using a fluent API with automatic parameter numbering.
type Builder struct {
	projection  *ProjectionMap
	conditions  []condition
	defaultSort []SortField
}

// NewBuilder creates a Builder for the given projection with optional default sort fields.
// Sort fields are applied in order; callers include a unique tiebreaker for stable paging.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		conditions:  make([]condition, 0),
		defaultSort: defaultSort,
	}
}

// Build returns a SELECT query with the current conditions and ordering.
func (b *Builder) Build() (string, []any) {
	where, args := b.buildWhere()

	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s%s",
		b.projection.Columns(),
		b.projection.Table(),
		where,
		b.buildOrderBy(),
	)

	return sql, args
}

// BuildCount returns a COUNT(*) query with the current conditions.
func (b *Builder) BuildCount() (string, []any) {
	where, args := b.buildWhere()
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.Table(), where)
	return sql, args
}

// BuildPage returns a SELECT query with ordering, limit, and offset.
func (b *Builder) BuildPage(limit, offset int) (string, []any) {
	where, args := b.buildWhere()

	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s%s LIMIT %d OFFSET %d",
		b.projection.Columns(),
		b.projection.Table(),
		where,
		b.buildOrderBy(),
		limit,
		offset,
	)

	return sql, args
}

// BuildSingle returns a SELECT query for a single record by ID.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	sql := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		b.projection.Columns(),
		b.projection.Table(),
		b.projection.Column(idField),
	)
	return sql, []any{id}
}

// WhereEquals adds an equality condition. No-op for nil values.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	col := b.projection.Column(field)
	b.conditions = append(b.conditions, condition{
		clause: fmt.Sprintf("%s = %s", col, placeholder),
		args:   []any{value},
	})
	return b
}

// WhereContains adds a case-insensitive substring condition. No-op for nil or empty values.
// LIKE metacharacters in value match literally.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	col := b.projection.Column(field)
	b.conditions = append(b.conditions, condition{
		clause: fmt.Sprintf("%s ILIKE %s", col, placeholder),
		args:   []any{containsPattern(*value)},
	})
	return b
}

// WhereSearch adds a case-insensitive substring condition OR'ed across fields.
// No-op for nil or empty search. LIKE metacharacters in search match literally.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	clauses := make([]string, len(fields))
	args := make([]any, len(fields))
	pattern := containsPattern(*search)

	for i, field := range fields {
		clauses[i] = fmt.Sprintf("%s ILIKE %s", b.projection.Column(field), placeholder)
		args[i] = pattern
	}

	b.conditions = append(b.conditions, condition{
		clause: "(" + strings.Join(clauses, " OR ") + ")",
		args:   args,
	})
	return b
}

// WhereRaw adds a literal condition. Each "$%d" in clause is numbered in order
// and bound to the corresponding arg. Use {alias} to reference the projection alias.
func (b *Builder) WhereRaw(clause string, args ...any) *Builder {
	clause = strings.ReplaceAll(clause, "{alias}", b.projection.Alias())
	b.conditions = append(b.conditions, condition{
		clause: clause,
		args:   args,
	})
	return b
}

func (b *Builder) buildOrderBy() string {
	if len(b.defaultSort) == 0 {
		return ""
	}

	parts := make([]string, len(b.defaultSort))
	for i, f := range b.defaultSort {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		parts[i] = fmt.Sprintf("%s %s", b.projection.Column(f.Field), dir)
	}

	return " ORDER BY " + strings.Join(parts, ", ")
}

func (b *Builder) buildWhere() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(b.conditions))
	args := make([]any, 0)
	next := 1

	for _, cond := range b.conditions {
		clause, n := number(cond.clause, next, len(cond.args))
		next = n
		args = append(args, cond.args...)
		clauses = append(clauses, clause)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

// number replaces the first count "$%d" placeholders in clause with
// sequential parameter indexes starting at start.
func number(clause string, start, count int) (string, int) {
	for range count {
		clause = strings.Replace(clause, placeholder, fmt.Sprintf("$%d", start), 1)
		start++
	}
	return clause, start
}

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}

	return false
}
