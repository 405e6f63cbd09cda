package ops

import (
	"database/sql"

	"github.com/hpungsan/tally/internal/config"
	"github.com/hpungsan/tally/internal/db"
	"github.com/hpungsan/tally/internal/errors"
)

// TagInput contains parameters for the Tag operation.
type TagInput struct {
	ID   string // required
	Task string // required
}

// TagOutput contains the result of the Tag operation.
type TagOutput struct {
	ID   string `json:"id"`
	Task string `json:"task"`
}

// Tag manually labels one entry with a task, canonicalizing the tag through
// the typo-correction table first. This is how suggestions get accepted: the
// tool never applies a prediction on its own.
func Tag(database *sql.DB, cfg *config.Config, input TagInput) (*TagOutput, error) {
	if input.ID == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	task := lookupFromConfig(cfg).Canonical(input.Task)
	if task == "" {
		return nil, errors.NewInvalidRequest("task is required")
	}

	if err := db.SetTask(database, input.ID, task); err != nil {
		return nil, err
	}

	return &TagOutput{ID: input.ID, Task: task}, nil
}
