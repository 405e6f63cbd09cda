package db

import (
	"database/sql"
	"strings"

	"github.com/hpungsan/tally/internal/errors"
	"github.com/hpungsan/tally/internal/timesheet"
)

// EntryFilters narrows entry listings and counts.
type EntryFilters struct {
	Year     *int    // filter by From-date year
	Task     *string // filter by exact task tag
	Untagged bool    // only entries with no task
}

// Insert stores a new entry in the database.
func Insert(db *sql.DB, e *timesheet.Entry) error {
	query := `
		INSERT INTO entries (id, task, remark, duration_hours, from_date, year, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query, e.ID, e.Task, e.Remark, e.Duration, e.From, e.Year(), e.CreatedAt)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// InsertTx stores a new entry within a transaction.
func InsertTx(tx *sql.Tx, e *timesheet.Entry) error {
	query := `
		INSERT INTO entries (id, task, remark, duration_hours, from_date, year, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.Exec(query, e.ID, e.Task, e.Remark, e.Duration, e.From, e.Year(), e.CreatedAt)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetByID retrieves an entry by its ULID.
func GetByID(db *sql.DB, id string) (*timesheet.Entry, error) {
	row := db.QueryRow(`
		SELECT id, task, remark, duration_hours, from_date, created_at
		FROM entries
		WHERE id = ?
	`, id)

	e := &timesheet.Entry{}
	err := row.Scan(&e.ID, &e.Task, &e.Remark, &e.Duration, &e.From, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return e, nil
}

// SetTask updates the task tag on a single entry. The year column stays
// derived from from_date, so only the tag changes.
func SetTask(db *sql.DB, id, task string) error {
	result, err := db.Exec(`UPDATE entries SET task = ? WHERE id = ?`, task, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if affected == 0 {
		return errors.NewNotFound(id)
	}
	return nil
}

// List returns entries matching the filters, newest first, plus the total
// match count for pagination.
func List(db *sql.DB, f EntryFilters, limit, offset int) ([]timesheet.Entry, int, error) {
	where, args := buildWhere(f)

	var total int
	countQuery := "SELECT COUNT(*) FROM entries" + where
	if err := db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `
		SELECT id, task, remark, duration_hours, from_date, created_at
		FROM entries` + where + `
		ORDER BY from_date DESC, created_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := db.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// All returns every entry in the store, oldest first. Used to load the full
// in-memory dataset for training and inference.
func All(db *sql.DB) ([]timesheet.Entry, error) {
	rows, err := db.Query(`
		SELECT id, task, remark, duration_hours, from_date, created_at
		FROM entries
		ORDER BY from_date ASC, created_at ASC
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Years returns the distinct From-date years present in the store, ascending.
// Year 0 (entries without a parsable date) is included when present.
func Years(db *sql.DB) ([]int, error) {
	rows, err := db.Query(`SELECT DISTINCT year FROM entries ORDER BY year ASC`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, errors.NewInternal(err)
		}
		years = append(years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return years, nil
}

// DeleteAll removes every entry. Used by replace-mode import.
func DeleteAll(tx *sql.Tx) error {
	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// buildWhere assembles the WHERE clause and args for EntryFilters.
func buildWhere(f EntryFilters) (string, []any) {
	var conditions []string
	var args []any

	if f.Year != nil {
		conditions = append(conditions, "year = ?")
		args = append(args, *f.Year)
	}
	if f.Untagged {
		conditions = append(conditions, "task = ''")
	} else if f.Task != nil {
		conditions = append(conditions, "task = ?")
		args = append(args, *f.Task)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// scanEntries drains a result set into entries.
func scanEntries(rows *sql.Rows) ([]timesheet.Entry, error) {
	var entries []timesheet.Entry
	for rows.Next() {
		var e timesheet.Entry
		if err := rows.Scan(&e.ID, &e.Task, &e.Remark, &e.Duration, &e.From, &e.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return entries, nil
}
