package users

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/promptvault/pkg/id"
	"github.com/JaimeStill/promptvault/pkg/query"
	"github.com/JaimeStill/promptvault/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a user repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "users"),
	}
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*User, error) {
	userID, err := id.Generate(id.User)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO users(id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + returning

	args := []any{userID, NormalizeEmail(cmd.Email), cmd.Name, cmd.PasswordHash, time.Now().UTC()}

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user created", "id", u.ID)
	return &u, nil
}

func (r *repo) Find(ctx context.Context, userID string) (*User, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", userID)

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

func (r *repo) FindByEmail(ctx context.Context, email string) (*Credentials, error) {
	q := fmt.Sprintf(
		"SELECT %s, u.password_hash FROM %s WHERE u.email = $1",
		projection.Columns(),
		projection.Table(),
	)

	c, err := repository.QueryOne(ctx, r.db, q, []any{NormalizeEmail(email)}, scanCredentials)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}
