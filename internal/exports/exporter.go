package exports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/promptvault/internal/prompts"
	"github.com/JaimeStill/promptvault/pkg/formatting"
	"github.com/JaimeStill/promptvault/pkg/pagination"
	"github.com/JaimeStill/promptvault/pkg/storage"
)

const (
	contentType = "application/json"
	nameLayout  = "20060102T150405.000000000Z"
)

var namePattern = regexp.MustCompile(`^prompts-\d{8}T\d{6}\.\d{9}Z\.json$`)

type exporter struct {
	prompts     prompts.System
	store       storage.System
	logger      *slog.Logger
	pageSize    int
	concurrency int
	now         func() time.Time
}

// Config tunes snapshot assembly.
type Config struct {
	// PageSize is the number of prompts read per list call.
	PageSize int
	// Concurrency bounds parallel tag lookups.
	Concurrency int
}

// New creates an export System writing to store.
func New(
	promptSys prompts.System,
	store storage.System,
	cfg Config,
	logger *slog.Logger,
) System {
	if cfg.PageSize < 1 {
		cfg.PageSize = 100
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 8
	}

	return &exporter{
		prompts:     promptSys,
		store:       store,
		logger:      logger.With("system", "exports"),
		pageSize:    cfg.PageSize,
		concurrency: cfg.Concurrency,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (e *exporter) Create(ctx context.Context, userID string) (*Export, error) {
	now := e.now()

	entries, err := e.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(Document{
		UserID:     userID,
		ExportedAt: now,
		Prompts:    entries,
	})
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	name := "prompts-" + now.Format(nameLayout) + ".json"
	if err := e.store.Upload(ctx, key(userID, name), bytes.NewReader(data), contentType); err != nil {
		return nil, fmt.Errorf("store export: %w", err)
	}

	e.logger.Info(
		"export created",
		"user_id", userID,
		"name", name,
		"prompts", len(entries),
		"size", formatting.FormatBytes(int64(len(data)), 1),
	)

	return &Export{
		Name:      name,
		Count:     len(entries),
		Size:      int64(len(data)),
		CreatedAt: now,
	}, nil
}

func (e *exporter) Open(ctx context.Context, userID, name string) (*storage.Blob, error) {
	if !namePattern.MatchString(name) {
		return nil, ErrInvalidName
	}

	blob, err := e.store.Download(ctx, key(userID, name))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return blob, nil
}

// snapshot pages through the user's prompts and resolves each prompt's
// tags with at most e.concurrency lookups in flight.
func (e *exporter) snapshot(ctx context.Context, userID string) ([]Entry, error) {
	var all []prompts.Prompt
	page := pagination.PageRequest{Limit: e.pageSize}

	for {
		result, err := e.prompts.List(ctx, userID, page, prompts.Filters{})
		if err != nil {
			return nil, fmt.Errorf("list prompts: %w", err)
		}

		all = append(all, result.Data...)
		page.Offset += len(result.Data)

		if len(result.Data) == 0 || page.Offset >= result.Total {
			break
		}
	}

	entries := make([]Entry, len(all))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, p := range all {
		g.Go(func() error {
			tags, err := e.prompts.Tags(gctx, p.ID)
			if err != nil {
				return fmt.Errorf("tags for %s: %w", p.ID, err)
			}

			names := make([]string, len(tags))
			for j, t := range tags {
				names[j] = t.Name
			}

			entries[i] = Entry{Prompt: p, Tags: names}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return entries, nil
}

func key(userID, name string) string {
	return "exports/" + userID + "/" + name
}
