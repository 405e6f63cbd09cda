package ops

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/hpungsan/tally/internal/config"
	"github.com/hpungsan/tally/internal/db"
	"github.com/hpungsan/tally/internal/errors"
	"github.com/hpungsan/tally/internal/timesheet"
)

// ImportMode controls what happens to existing entries during import.
type ImportMode string

const (
	ImportModeAppend  ImportMode = "append"  // default: add to existing entries
	ImportModeReplace ImportMode = "replace" // wipe the store first
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string     // required
	Mode ImportMode // default: append
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int        `json:"imported"`
	Tagged   int        `json:"tagged"`
	Untagged int        `json:"untagged"`
	Mode     ImportMode `json:"mode"`
}

// Import reads a timesheet CSV log into the entry store. Rows are parsed
// permissively (missing fields default, bad durations become zero) and task
// tags are canonicalized through the typo-correction table before insert. The
// whole import is one transaction; replace mode wipes existing entries first.
func Import(database *sql.DB, cfg *config.Config, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	if input.Mode == "" {
		input.Mode = ImportModeAppend
	}
	if input.Mode != ImportModeAppend && input.Mode != ImportModeReplace {
		return nil, errors.NewInvalidRequest("mode must be one of: append, replace")
	}

	if _, err := os.Stat(input.Path); os.IsNotExist(err) {
		return nil, errors.NewNotFound(input.Path)
	}

	file, err := os.Open(input.Path)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to open log: %w", err))
	}
	defer file.Close()

	rows, err := timesheet.ReadLog(file)
	if err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("failed to parse log: %v", err))
	}

	lookup := lookupFromConfig(cfg)
	now := time.Now().Unix()

	tx, err := database.Begin()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer tx.Rollback() //nolint:errcheck

	if input.Mode == ImportModeReplace {
		if err := db.DeleteAll(tx); err != nil {
			return nil, err
		}
	}

	out := &ImportOutput{Mode: input.Mode}
	for i := range rows {
		e := rows[i]
		e.ID = generateULID()
		e.Task = lookup.Canonical(e.Task)
		e.CreatedAt = now

		if err := db.InsertTx(tx, &e); err != nil {
			return nil, err
		}
		out.Imported++
		if e.Labeled() {
			out.Tagged++
		} else {
			out.Untagged++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return out, nil
}
