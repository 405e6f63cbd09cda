package timesheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Log column headers. Matching is exact after whitespace trimming.
const (
	ColumnTask     = "Task"
	ColumnRemark   = "Remark"
	ColumnDuration = "Duration (hour)"
	ColumnFrom     = "From"
)

// ReadLog parses a timesheet CSV log. The first record is a header; columns
// are located by name so extra columns and arbitrary ordering are fine.
// Malformed fields never fail the read: a missing Task, Remark, or From
// defaults to the empty string and an unparseable duration defaults to zero.
// Quoted fields keep embedded newlines, so multi-line remarks survive.
func ReadLog(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var entries []Entry
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		entries = append(entries, Entry{
			Task:     field(record, columns, ColumnTask),
			Remark:   field(record, columns, ColumnRemark),
			Duration: parseDuration(field(record, columns, ColumnDuration)),
			From:     field(record, columns, ColumnFrom),
		})
	}

	return entries, nil
}

// field returns the named column from a record, or "" when the column is
// absent or the record is short.
func field(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// parseDuration converts the duration column to hours, defaulting to zero on
// blank or unparseable input.
func parseDuration(s string) float64 {
	if s == "" {
		return 0
	}
	hours, err := strconv.ParseFloat(s, 64)
	if err != nil || hours < 0 {
		return 0
	}
	return hours
}
