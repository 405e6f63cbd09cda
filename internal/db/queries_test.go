package db

import (
	"database/sql"
	"testing"

	"github.com/hpungsan/tally/internal/errors"
	"github.com/hpungsan/tally/internal/timesheet"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func seed(t *testing.T, database *sql.DB, entries []timesheet.Entry) {
	t.Helper()
	for i := range entries {
		if err := Insert(database, &entries[i]); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
}

func TestInsertAndGetByID(t *testing.T) {
	database := testDB(t)

	e := timesheet.Entry{
		ID:        "01TESTENTRY0000000000000001",
		Task:      "website",
		Remark:    "implement email subscribe form",
		Duration:  1.5,
		From:      "2023-01-05",
		CreatedAt: 1700000000,
	}
	if err := Insert(database, &e); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := GetByID(database, e.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Task != e.Task || got.Remark != e.Remark || got.Duration != e.Duration || got.From != e.From {
		t.Errorf("GetByID = %+v, want %+v", got, e)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	database := testDB(t)

	_, err := GetByID(database, "missing")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("GetByID should return ErrNotFound, got %v", err)
	}
}

func TestSetTask(t *testing.T) {
	database := testDB(t)
	seed(t, database, []timesheet.Entry{
		{ID: "e1", Remark: "untagged work", From: "2023-06-01", CreatedAt: 1},
	})

	if err := SetTask(database, "e1", "ops"); err != nil {
		t.Fatalf("SetTask failed: %v", err)
	}

	got, err := GetByID(database, "e1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Task != "ops" {
		t.Errorf("Task = %q, want ops", got.Task)
	}

	if err := SetTask(database, "missing", "ops"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("SetTask on missing entry should return ErrNotFound, got %v", err)
	}
}

func TestList_Filters(t *testing.T) {
	database := testDB(t)
	seed(t, database, []timesheet.Entry{
		{ID: "e1", Task: "website", Remark: "subscribe form", From: "2023-01-05", CreatedAt: 1},
		{ID: "e2", Task: "admin", Remark: "inbox triage", From: "2023-02-01", CreatedAt: 2},
		{ID: "e3", Task: "website", Remark: "landing page", From: "2024-03-01", CreatedAt: 3},
		{ID: "e4", Remark: "mystery work", From: "2024-04-01", CreatedAt: 4},
	})

	year := 2023
	entries, total, err := List(database, EntryFilters{Year: &year}, 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 2 || len(entries) != 2 {
		t.Errorf("year filter: total=%d len=%d, want 2/2", total, len(entries))
	}

	task := "website"
	entries, total, err = List(database, EntryFilters{Task: &task}, 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 2 {
		t.Errorf("task filter: total=%d, want 2", total)
	}

	entries, total, err = List(database, EntryFilters{Untagged: true}, 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 || entries[0].ID != "e4" {
		t.Errorf("untagged filter: total=%d entries=%v, want just e4", total, entries)
	}
}

func TestList_Pagination(t *testing.T) {
	database := testDB(t)
	seed(t, database, []timesheet.Entry{
		{ID: "e1", Task: "ops", Remark: "a", From: "2023-01-01", CreatedAt: 1},
		{ID: "e2", Task: "ops", Remark: "b", From: "2023-01-02", CreatedAt: 2},
		{ID: "e3", Task: "ops", Remark: "c", From: "2023-01-03", CreatedAt: 3},
	})

	entries, total, err := List(database, EntryFilters{}, 2, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 3 || len(entries) != 2 {
		t.Errorf("page 1: total=%d len=%d, want 3/2", total, len(entries))
	}
	// Newest first.
	if entries[0].ID != "e3" {
		t.Errorf("entries[0].ID = %q, want e3", entries[0].ID)
	}

	entries, _, err = List(database, EntryFilters{}, 2, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "e1" {
		t.Errorf("page 2 = %v, want just e1", entries)
	}
}

func TestAll_OldestFirst(t *testing.T) {
	database := testDB(t)
	seed(t, database, []timesheet.Entry{
		{ID: "e2", Task: "ops", Remark: "b", From: "2023-05-01", CreatedAt: 2},
		{ID: "e1", Task: "ops", Remark: "a", From: "2023-01-01", CreatedAt: 1},
	})

	entries, err := All(database)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "e1" {
		t.Errorf("All = %v, want oldest first", entries)
	}
}

func TestYears(t *testing.T) {
	database := testDB(t)
	seed(t, database, []timesheet.Entry{
		{ID: "e1", Task: "ops", Remark: "a", From: "2024-01-01", CreatedAt: 1},
		{ID: "e2", Task: "ops", Remark: "b", From: "2023-01-01", CreatedAt: 2},
		{ID: "e3", Task: "ops", Remark: "c", From: "2023-06-01", CreatedAt: 3},
		{ID: "e4", Task: "ops", Remark: "d", From: "", CreatedAt: 4},
	})

	years, err := Years(database)
	if err != nil {
		t.Fatalf("Years failed: %v", err)
	}
	want := []int{0, 2023, 2024}
	if len(years) != len(want) {
		t.Fatalf("Years = %v, want %v", years, want)
	}
	for i := range want {
		if years[i] != want[i] {
			t.Errorf("Years[%d] = %d, want %d", i, years[i], want[i])
		}
	}
}

func TestDeleteAll(t *testing.T) {
	database := testDB(t)
	seed(t, database, []timesheet.Entry{
		{ID: "e1", Task: "ops", Remark: "a", From: "2023-01-01", CreatedAt: 1},
	})

	tx, err := database.Begin()
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := DeleteAll(tx); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	entries, err := All(database)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d after DeleteAll, want 0", len(entries))
	}
}
