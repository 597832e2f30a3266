package query

import (
	"fmt"
	"strings"
)

// UpdateBuilder assembles a partial UPDATE statement from the fields a caller provided.
type UpdateBuilder struct {
	table     string
	sets      []condition
	returning string
}

// NewUpdate creates an UpdateBuilder targeting table.
func NewUpdate(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set assigns value to column.
func (u *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	u.sets = append(u.sets, condition{
		clause: fmt.Sprintf("%s = %s", column, placeholder),
		args:   []any{value},
	})
	return u
}

// SetIf assigns *value to column when value is non-nil.
func SetIf[T any](u *UpdateBuilder, column string, value *T) *UpdateBuilder {
	if value == nil {
		return u
	}
	return u.Set(column, *value)
}

// SetExpr adds a literal assignment. Each "$%d" in expr is bound to the corresponding arg.
func (u *UpdateBuilder) SetExpr(expr string, args ...any) *UpdateBuilder {
	u.sets = append(u.sets, condition{clause: expr, args: args})
	return u
}

// Returning sets the RETURNING column list.
func (u *UpdateBuilder) Returning(columns string) *UpdateBuilder {
	u.returning = columns
	return u
}

// Empty reports whether no assignments have been added.
func (u *UpdateBuilder) Empty() bool {
	return len(u.sets) == 0
}

// Build returns the UPDATE statement restricted to idColumn = id.
func (u *UpdateBuilder) Build(idColumn string, id any) (string, []any) {
	clauses := make([]string, 0, len(u.sets))
	args := make([]any, 0, len(u.sets)+1)
	next := 1

	for _, set := range u.sets {
		clause, n := number(set.clause, next, len(set.args))
		next = n
		clauses = append(clauses, clause)
		args = append(args, set.args...)
	}

	sql := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = $%d",
		u.table,
		strings.Join(clauses, ", "),
		idColumn,
		next,
	)
	args = append(args, id)

	if u.returning != "" {
		sql += " RETURNING " + u.returning
	}

	return sql, args
}
