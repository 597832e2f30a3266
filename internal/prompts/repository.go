package prompts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/promptvault/internal/tags"
	"github.com/JaimeStill/promptvault/pkg/id"
	"github.com/JaimeStill/promptvault/pkg/pagination"
	"github.com/JaimeStill/promptvault/pkg/query"
	"github.com/JaimeStill/promptvault/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	now        func() time.Time
}

// New creates a prompt repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "prompts"),
		pagination: pagination,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (r *repo) Create(ctx context.Context, ownerID string, cmd CreateCommand) (*Prompt, error) {
	if strings.TrimSpace(cmd.Content) == "" {
		return nil, ErrContentRequired
	}

	promptID, err := id.Generate(id.Prompt)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO prompts(id, user_id, content, title, source, is_favorite, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, false, $6, $6)
		RETURNING ` + returning

	args := []any{promptID, ownerID, cmd.Content, cmd.Title, cmd.Source, r.now()}

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, nil)
	}

	r.logger.Info("prompt created", "id", p.ID, "user_id", ownerID)
	return &p, nil
}

func (r *repo) Find(ctx context.Context, promptID string) (*Prompt, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", promptID)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, nil)
	}
	return &p, nil
}

func (r *repo) List(
	ctx context.Context,
	ownerID string,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Prompt], error) {
	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("UserID", ownerID)

	filters.Apply(qb)

	return r.page(ctx, qb, page)
}

func (r *repo) Search(
	ctx context.Context,
	ownerID string,
	q string,
	page pagination.PageRequest,
) (*pagination.PageResult[Prompt], error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrQueryRequired
	}

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("UserID", ownerID).
		WhereSearch(&q, "Content", "Title")

	return r.page(ctx, qb, page)
}

func (r *repo) page(
	ctx context.Context,
	qb *query.Builder,
	page pagination.PageRequest,
) (*pagination.PageResult[Prompt], error) {
	page.Normalize(r.pagination)

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.Count(ctx, r.db, countSQL, countArgs)
	if err != nil {
		return nil, fmt.Errorf("count prompts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Limit, page.Offset)
	prompts, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}

	result := pagination.NewPageResult(prompts, total, page)
	return &result, nil
}

func (r *repo) Update(ctx context.Context, promptID string, cmd UpdateCommand) (*Prompt, error) {
	if cmd.Content != nil && strings.TrimSpace(*cmd.Content) == "" {
		return nil, ErrContentRequired
	}

	ub := query.NewUpdate("prompts").Returning(returning)
	query.SetIf(ub, "content", cmd.Content)
	query.SetIf(ub, "title", cmd.Title)
	query.SetIf(ub, "source", cmd.Source)
	query.SetIf(ub, "is_favorite", cmd.IsFavorite)

	if ub.Empty() {
		return r.Find(ctx, promptID)
	}

	ub.SetExpr(touch, r.now())

	q, args := ub.Build("id", promptID)
	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, nil)
	}

	r.logger.Info("prompt updated", "id", p.ID)
	return &p, nil
}

func (r *repo) Delete(ctx context.Context, promptID string) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, "DELETE FROM prompt_tags WHERE prompt_id = $1", promptID); err != nil {
			return struct{}{}, fmt.Errorf("detach tags: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM notes WHERE prompt_id = $1", promptID); err != nil {
			return struct{}{}, fmt.Errorf("delete notes: %w", err)
		}
		if err := repository.ExecExpectOne(ctx, tx, "DELETE FROM prompts WHERE id = $1", promptID); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, nil)
	}

	r.logger.Info("prompt deleted", "id", promptID)
	return nil
}

func (r *repo) ToggleFavorite(ctx context.Context, promptID string) (*Prompt, error) {
	q, args := query.
		NewUpdate("prompts").
		SetExpr("is_favorite = NOT is_favorite").
		SetExpr(touch, r.now()).
		Returning(returning).
		Build("id", promptID)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, nil)
	}

	r.logger.Info("prompt favorite toggled", "id", p.ID, "is_favorite", p.IsFavorite)
	return &p, nil
}

func (r *repo) Attach(ctx context.Context, promptID, tagID string) error {
	_, err := r.db.ExecContext(
		ctx,
		"INSERT INTO prompt_tags(prompt_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		promptID, tagID,
	)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("attach tag: %w", err)
	}

	r.logger.Info("tag attached", "prompt_id", promptID, "tag_id", tagID)
	return nil
}

func (r *repo) Detach(ctx context.Context, promptID, tagID string) error {
	_, err := r.db.ExecContext(
		ctx,
		"DELETE FROM prompt_tags WHERE prompt_id = $1 AND tag_id = $2",
		promptID, tagID,
	)
	if err != nil {
		return fmt.Errorf("detach tag: %w", err)
	}

	r.logger.Info("tag detached", "prompt_id", promptID, "tag_id", tagID)
	return nil
}

func (r *repo) Tags(ctx context.Context, promptID string) ([]tags.Tag, error) {
	q := `
		SELECT t.id, t.user_id, t.name, t.color
		FROM tags t
		JOIN prompt_tags pt ON pt.tag_id = t.id
		WHERE pt.prompt_id = $1
		ORDER BY t.name, t.id`

	result, err := repository.QueryMany(ctx, r.db, q, []any{promptID}, tags.Scan)
	if err != nil {
		return nil, fmt.Errorf("query prompt tags: %w", err)
	}
	if result == nil {
		result = []tags.Tag{}
	}
	return result, nil
}
