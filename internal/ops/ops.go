// Package ops implements the tally operations invoked by the CLI and MCP
// layers. Each operation takes an Input struct and returns an Output struct;
// all I/O lives here or below, never in the inference core.
package ops

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/tally/internal/config"
	"github.com/hpungsan/tally/internal/timesheet"
)

// Pagination describes the window of a listing result.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// generateULID generates a new ULID.
func generateULID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// lookupFromConfig builds the tag lookup tables with config overrides applied.
func lookupFromConfig(cfg *config.Config) *timesheet.Lookup {
	if cfg == nil {
		return timesheet.NewLookup(nil, nil)
	}
	return timesheet.NewLookup(cfg.TaskAliases, cfg.TaskCategories)
}
