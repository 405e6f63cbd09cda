// Package timesheet holds the timesheet log domain types and the permissive
// CSV collaborator that feeds them.
package timesheet

import "strconv"

// Entry is one observation from the timesheet log. Entries with a non-empty
// Task are labeled (training material); entries with an empty Task are
// untagged and become inference targets.
type Entry struct {
	ID        string  `json:"id"`
	Task      string  `json:"task,omitempty"`
	Remark    string  `json:"remark"`
	Duration  float64 `json:"duration_hours"`
	From      string  `json:"from,omitempty"` // YYYY-MM-DD prefixed, may be empty
	CreatedAt int64   `json:"created_at"`
}

// Labeled reports whether the entry carries a task tag.
func (e *Entry) Labeled() bool {
	return e.Task != ""
}

// Year extracts the year from the entry's From date. Returns 0 when the date
// is missing or not YYYY-prefixed.
func (e *Entry) Year() int {
	if len(e.From) < 4 {
		return 0
	}
	year, err := strconv.Atoi(e.From[:4])
	if err != nil || year <= 0 {
		return 0
	}
	return year
}
