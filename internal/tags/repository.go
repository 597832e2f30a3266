package tags

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/promptvault/pkg/id"
	"github.com/JaimeStill/promptvault/pkg/pagination"
	"github.com/JaimeStill/promptvault/pkg/query"
	"github.com/JaimeStill/promptvault/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a tag repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "tags"),
		pagination: pagination,
	}
}

func (r *repo) Create(ctx context.Context, ownerID string, cmd CreateCommand) (*Tag, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	tagID, err := id.Generate(id.Tag)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO tags(id, user_id, name, color)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + returning

	t, err := repository.QueryOne(ctx, r.db, q, []any{tagID, ownerID, name, cmd.Color}, Scan)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tag created", "id", t.ID, "name", t.Name)
	return &t, nil
}

func (r *repo) Find(ctx context.Context, tagID string) (*Tag, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", tagID)

	t, err := repository.QueryOne(ctx, r.db, q, args, Scan)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) List(
	ctx context.Context,
	ownerID string,
	page pagination.PageRequest,
) (*pagination.PageResult[Tag], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("UserID", ownerID)

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.Count(ctx, r.db, countSQL, countArgs)
	if err != nil {
		return nil, fmt.Errorf("count tags: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Limit, page.Offset)
	tags, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, Scan)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}

	result := pagination.NewPageResult(tags, total, page)
	return &result, nil
}

func (r *repo) Update(ctx context.Context, tagID string, cmd UpdateCommand) (*Tag, error) {
	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		cmd.Name = &name
	}

	ub := query.NewUpdate("tags").Returning(returning)
	query.SetIf(ub, "name", cmd.Name)
	query.SetIf(ub, "color", cmd.Color)

	if ub.Empty() {
		return r.Find(ctx, tagID)
	}

	q, args := ub.Build("id", tagID)
	t, err := repository.QueryOne(ctx, r.db, q, args, Scan)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tag updated", "id", t.ID, "name", t.Name)
	return &t, nil
}

func (r *repo) Delete(ctx context.Context, tagID string) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, "DELETE FROM prompt_tags WHERE tag_id = $1", tagID); err != nil {
			return struct{}{}, fmt.Errorf("detach tag: %w", err)
		}
		if err := repository.ExecExpectOne(ctx, tx, "DELETE FROM tags WHERE id = $1", tagID); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tag deleted", "id", tagID)
	return nil
}
