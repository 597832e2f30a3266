package api

import (
	"github.com/JaimeStill/promptvault/internal/exports"
	"github.com/JaimeStill/promptvault/internal/notes"
	"github.com/JaimeStill/promptvault/internal/prompts"
	"github.com/JaimeStill/promptvault/internal/tags"
	"github.com/JaimeStill/promptvault/internal/users"
)

// Domain holds all domain systems that comprise the API.
// Exports is nil when blob storage is disabled.
type Domain struct {
	Users   users.System
	Prompts prompts.System
	Tags    tags.System
	Notes   notes.System
	Exports exports.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	promptsSystem := prompts.New(db, runtime.Logger, runtime.Pagination)

	d := &Domain{
		Users:   users.New(db, runtime.Logger),
		Prompts: promptsSystem,
		Tags:    tags.New(db, runtime.Logger, runtime.Pagination),
		Notes:   notes.New(db, runtime.Logger),
	}

	if runtime.Storage != nil {
		d.Exports = exports.New(
			promptsSystem,
			runtime.Storage,
			exports.Config{PageSize: runtime.Pagination.MaxLimit},
			runtime.Logger,
		)
	}

	return d
}
