package notes

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/promptvault/pkg/id"
	"github.com/JaimeStill/promptvault/pkg/query"
	"github.com/JaimeStill/promptvault/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a note repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "notes"),
	}
}

func (r *repo) Create(ctx context.Context, promptID string, cmd Command) (*Note, error) {
	if strings.TrimSpace(cmd.Content) == "" {
		return nil, ErrContentRequired
	}

	noteID, err := id.Generate(id.Note)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO notes(id, prompt_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING ` + returning

	n, err := repository.QueryOne(ctx, r.db, q, []any{noteID, promptID, cmd.Content, time.Now().UTC()}, scanNote)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("prompt %s: %w", promptID, ErrNotFound)
		}
		return nil, fmt.Errorf("insert note: %w", err)
	}

	r.logger.Info("note created", "id", n.ID, "prompt_id", promptID)
	return &n, nil
}

func (r *repo) Find(ctx context.Context, noteID string) (*Note, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", noteID)

	n, err := repository.QueryOne(ctx, r.db, q, args, scanNote)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, nil)
	}
	return &n, nil
}

func (r *repo) List(ctx context.Context, promptID string) ([]Note, error) {
	q, args := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("PromptID", promptID).
		Build()

	notes, err := repository.QueryMany(ctx, r.db, q, args, scanNote)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	if notes == nil {
		notes = []Note{}
	}
	return notes, nil
}

func (r *repo) Update(ctx context.Context, noteID string, cmd Command) (*Note, error) {
	if strings.TrimSpace(cmd.Content) == "" {
		return nil, ErrContentRequired
	}

	q, args := query.
		NewUpdate("notes").
		Set("content", cmd.Content).
		SetExpr("updated_at = GREATEST($%d, updated_at + interval '1 microsecond')", time.Now().UTC()).
		Returning(returning).
		Build("id", noteID)

	n, err := repository.QueryOne(ctx, r.db, q, args, scanNote)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, nil)
	}

	r.logger.Info("note updated", "id", n.ID)
	return &n, nil
}

func (r *repo) Delete(ctx context.Context, noteID string) error {
	if err := repository.ExecExpectOne(ctx, r.db, "DELETE FROM notes WHERE id = $1", noteID); err != nil {
		return repository.MapError(err, ErrNotFound, nil)
	}

	r.logger.Info("note deleted", "id", noteID)
	return nil
}
