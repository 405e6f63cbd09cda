package ops

import (
	"database/sql"
	"sort"

	"github.com/hpungsan/tally/internal/config"
	"github.com/hpungsan/tally/internal/db"
	"github.com/hpungsan/tally/internal/timesheet"
)

// TaskTotal aggregates one task's hours within a bucket.
type TaskTotal struct {
	Task     string  `json:"task"`
	Category string  `json:"category"`
	Hours    float64 `json:"hours"`
	Entries  int     `json:"entries"`
}

// YearSummary aggregates one calendar year. Year 0 collects entries whose
// From date could not be parsed.
type YearSummary struct {
	Year       int         `json:"year"`
	Tasks      []TaskTotal `json:"tasks"`
	TotalHours float64     `json:"total_hours"`
}

// SummaryInput contains parameters for the Summary operation.
type SummaryInput struct {
	Year *int // optional: restrict per-year sections to this year
}

// SummaryOutput contains the result of the Summary operation.
type SummaryOutput struct {
	Years           []YearSummary `json:"years"`
	AllTime         []TaskTotal   `json:"all_time"`
	TotalHours      float64       `json:"total_hours"`
	UntaggedHours   float64       `json:"untagged_hours"`
	UntaggedEntries int           `json:"untagged_entries"`
}

// Summary aggregates tagged entries into per-year and all-time task totals.
// Untagged entries are excluded from task totals and reported separately so
// the numbers reconcile. All-time totals always cover the full store, even
// when the per-year view is restricted.
func Summary(database *sql.DB, cfg *config.Config, input SummaryInput) (*SummaryOutput, error) {
	entries, err := db.All(database)
	if err != nil {
		return nil, err
	}

	lookup := lookupFromConfig(cfg)
	out := &SummaryOutput{}

	byYear := make(map[int]map[string]*TaskTotal)
	allTime := make(map[string]*TaskTotal)

	for i := range entries {
		e := &entries[i]
		out.TotalHours += e.Duration

		if !e.Labeled() {
			out.UntaggedHours += e.Duration
			out.UntaggedEntries++
			continue
		}

		accumulate(allTime, e, lookup)

		year := e.Year()
		if input.Year != nil && year != *input.Year {
			continue
		}
		tasks, ok := byYear[year]
		if !ok {
			tasks = make(map[string]*TaskTotal)
			byYear[year] = tasks
		}
		accumulate(tasks, e, lookup)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	out.Years = make([]YearSummary, 0, len(years))
	for _, y := range years {
		ys := YearSummary{Year: y, Tasks: sortTotals(byYear[y])}
		for _, t := range ys.Tasks {
			ys.TotalHours += t.Hours
		}
		out.Years = append(out.Years, ys)
	}
	out.AllTime = sortTotals(allTime)

	return out, nil
}

// accumulate folds one labeled entry into a task-total bucket.
func accumulate(totals map[string]*TaskTotal, e *timesheet.Entry, lookup *timesheet.Lookup) {
	task := lookup.Canonical(e.Task)
	t, ok := totals[task]
	if !ok {
		t = &TaskTotal{Task: task, Category: lookup.Category(task)}
		totals[task] = t
	}
	t.Hours += e.Duration
	t.Entries++
}

// sortTotals flattens a bucket, hours descending with task name as tie-break.
func sortTotals(totals map[string]*TaskTotal) []TaskTotal {
	result := make([]TaskTotal, 0, len(totals))
	for _, t := range totals {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Hours != result[j].Hours {
			return result[i].Hours > result[j].Hours
		}
		return result[i].Task < result[j].Task
	})
	return result
}
