package ops

import (
	"database/sql"

	"github.com/hpungsan/tally/internal/db"
	"github.com/hpungsan/tally/internal/timesheet"
)

// Listing limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 500
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Year     *int    // optional filter by From-date year
	Task     *string // optional filter by exact task tag
	Untagged bool    // only untagged entries (overrides Task)
	Limit    int     // default: 20, max: 500
	Offset   int     // default: 0
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []timesheet.Entry `json:"items"`
	Pagination Pagination        `json:"pagination"`
}

// List returns a page of entries, newest first.
func List(database *sql.DB, input ListInput) (*ListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := max(input.Offset, 0)

	entries, total, err := db.List(database, db.EntryFilters{
		Year:     input.Year,
		Task:     input.Task,
		Untagged: input.Untagged,
	}, limit, offset)
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []timesheet.Entry{}
	}

	return &ListOutput{
		Items: entries,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(entries) < total,
			Total:   total,
		},
	}, nil
}
