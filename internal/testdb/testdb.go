// Package testdb provides a migrated PostgreSQL connection for integration tests.
// Tests are skipped unless PROMPTVAULT_TEST_DSN holds a postgres:// URL.
//
// Tests share one database and never truncate it; each test isolates itself
// by creating its own user through NewUser.
package testdb

import (
	"database/sql"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/promptvault/migrations"
	"github.com/JaimeStill/promptvault/pkg/id"
)

// EnvDSN names the environment variable holding the test database URL.
const EnvDSN = "PROMPTVAULT_TEST_DSN"

var (
	migrateOnce sync.Once
	migrateErr  error
)

// Open returns a connection to the migrated test database, or skips t.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s not set", EnvDSN)
	}

	migrateOnce.Do(func() {
		migrateErr = migrations.Up(dsn)
	})
	require.NoError(t, migrateErr)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

// NewUser inserts a user with a unique email and returns its id.
func NewUser(t *testing.T, db *sql.DB) string {
	t.Helper()

	userID, err := id.Generate(id.User)
	require.NoError(t, err)

	_, err = db.Exec(
		"INSERT INTO users(id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)",
		userID, userID+"@test.local", "unused", time.Now().UTC(),
	)
	require.NoError(t, err)

	return userID
}

// Logger returns a logger that discards output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
