package users_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/promptvault/internal/testdb"
	"github.com/JaimeStill/promptvault/internal/users"
	"github.com/JaimeStill/promptvault/pkg/id"
)

func uniqueEmail(t *testing.T) string {
	t.Helper()
	v, err := id.Generate("mail")
	require.NoError(t, err)
	return "  " + v + "@Example.COM "
}

func TestCreateAndFind(t *testing.T) {
	db := testdb.Open(t)
	sys := users.New(db, testdb.Logger())
	ctx := context.Background()

	email := uniqueEmail(t)
	name := "Ada"

	created, err := sys.Create(ctx, users.CreateCommand{Email: email, Name: &name, PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, users.NormalizeEmail(email), created.Email)
	assert.Contains(t, created.ID, "user-")

	found, err := sys.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Ada", *found.Name)

	creds, err := sys.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, creds.User.ID)
	assert.Equal(t, "hash", creds.PasswordHash)
}

func TestCreateDuplicateEmail(t *testing.T) {
	db := testdb.Open(t)
	sys := users.New(db, testdb.Logger())
	ctx := context.Background()

	email := uniqueEmail(t)
	_, err := sys.Create(ctx, users.CreateCommand{Email: email, PasswordHash: "hash"})
	require.NoError(t, err)

	_, err = sys.Create(ctx, users.CreateCommand{Email: email, PasswordHash: "hash"})
	assert.ErrorIs(t, err, users.ErrDuplicate)
}

func TestFindMissing(t *testing.T) {
	db := testdb.Open(t)
	sys := users.New(db, testdb.Logger())

	_, err := sys.Find(context.Background(), "user-missing")
	assert.ErrorIs(t, err, users.ErrNotFound)

	_, err = sys.FindByEmail(context.Background(), "nobody@test.local")
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@example.com", users.NormalizeEmail("  A@Example.com\n"))
}
