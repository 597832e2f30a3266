package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/promptvault/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

func TestMapError(t *testing.T) {
	other := errors.New("connection reset")
	check := &pgconn.PgError{Code: "23514"}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, errNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), errNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"other pg error", check, check},
		{"other", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.err, errNotFound, errDuplicate)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, repository.IsForeignKeyViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, repository.IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, repository.IsForeignKeyViolation(errors.New("plain")))
}

func TestMapErrorWithoutDuplicateSentinel(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	assert.Equal(t, error(unique), repository.MapError(unique, errNotFound, nil))
}
