package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hpungsan/tally/internal/config"
	"github.com/hpungsan/tally/internal/db"
	"github.com/hpungsan/tally/internal/ops"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
	cleanup := func() {
		database.Close()
	}
	return database, cleanup
}

// writeSampleLog writes a small CSV log to a temp file.
func writeSampleLog(t *testing.T) string {
	t.Helper()
	content := `From,Task,Remark,Duration (hour)
2023-01-05,website,implement subscribe form,1.5
2023-01-09,animal-ai,box model training session,2
2023-02-10,,more box model training,1
`
	path := filepath.Join(t.TempDir(), "log.csv")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

// runApp runs the CLI app capturing stdout, returning output bytes and error.
func runApp(t *testing.T, database *sql.DB, cfg *config.Config, args []string) ([]byte, error) {
	t.Helper()

	app := newCLIApp(database, cfg)

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := app.Run(args)

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.Bytes(), err
}

// TestCLIImport tests the import command.
func TestCLIImport(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := config.DefaultConfig()

	out, err := runApp(t, database, cfg, []string{"tally", "import", writeSampleLog(t)})
	if err != nil {
		t.Fatalf("import command failed: %v", err)
	}

	var output ops.ImportOutput
	if err := json.Unmarshal(out, &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}

	if output.Imported != 3 {
		t.Errorf("imported = %d, want 3", output.Imported)
	}
	if output.Untagged != 1 {
		t.Errorf("untagged = %d, want 1", output.Untagged)
	}
}

// TestCLIList tests the list command.
func TestCLIList(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := config.DefaultConfig()

	if _, err := runApp(t, database, cfg, []string{"tally", "import", writeSampleLog(t)}); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	out, err := runApp(t, database, cfg, []string{"tally", "list", "--untagged"})
	if err != nil {
		t.Fatalf("list command failed: %v", err)
	}

	var output ops.ListOutput
	if err := json.Unmarshal(out, &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.Pagination.Total != 1 {
		t.Errorf("total = %d, want 1 untagged", output.Pagination.Total)
	}
}

// TestCLITag tests the tag command.
func TestCLITag(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := config.DefaultConfig()

	if _, err := runApp(t, database, cfg, []string{"tally", "import", writeSampleLog(t)}); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	out, err := runApp(t, database, cfg, []string{"tally", "list", "--untagged"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	var listOut ops.ListOutput
	if err := json.Unmarshal(out, &listOut); err != nil {
		t.Fatalf("failed to parse list output: %v", err)
	}
	id := listOut.Items[0].ID

	out, err = runApp(t, database, cfg, []string{"tally", "tag", id, "animalai"})
	if err != nil {
		t.Fatalf("tag command failed: %v", err)
	}
	var tagOut ops.TagOutput
	if err := json.Unmarshal(out, &tagOut); err != nil {
		t.Fatalf("failed to parse tag output: %v", err)
	}
	if tagOut.Task != "animal-ai" {
		t.Errorf("task = %q, want alias-corrected animal-ai", tagOut.Task)
	}
}

// TestCLISummary tests the summary command.
func TestCLISummary(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := config.DefaultConfig()

	if _, err := runApp(t, database, cfg, []string{"tally", "import", writeSampleLog(t)}); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	out, err := runApp(t, database, cfg, []string{"tally", "summary", "--year", "2023"})
	if err != nil {
		t.Fatalf("summary command failed: %v", err)
	}

	var output ops.SummaryOutput
	if err := json.Unmarshal(out, &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.TotalHours != 4.5 {
		t.Errorf("total_hours = %v, want 4.5", output.TotalHours)
	}
	if output.UntaggedEntries != 1 {
		t.Errorf("untagged_entries = %d, want 1", output.UntaggedEntries)
	}
}

// TestCLISuggest tests the suggest command.
func TestCLISuggest(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := config.DefaultConfig()

	if _, err := runApp(t, database, cfg, []string{"tally", "import", writeSampleLog(t)}); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	out, err := runApp(t, database, cfg, []string{"tally", "suggest"})
	if err != nil {
		t.Fatalf("suggest command failed: %v", err)
	}

	var output ops.SuggestOutput
	if err := json.Unmarshal(out, &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.TrainedOn != 2 {
		t.Errorf("trained_on = %d, want 2", output.TrainedOn)
	}
	if len(output.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(output.Items))
	}
	if len(output.Items[0].Candidates) == 0 || output.Items[0].Candidates[0].Task != "animal-ai" {
		t.Errorf("top candidate = %+v, want animal-ai", output.Items[0].Candidates)
	}
}

// TestCLIExport tests the export command.
func TestCLIExport(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := config.DefaultConfig()

	if _, err := runApp(t, database, cfg, []string{"tally", "import", writeSampleLog(t)}); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "summary.md")
	out, err := runApp(t, database, cfg, []string{"tally", "export", "--out", path})
	if err != nil {
		t.Fatalf("export command failed: %v", err)
	}

	var output ops.ExportOutput
	if err := json.Unmarshal(out, &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.Path != path {
		t.Errorf("path = %q, want %q", output.Path, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("report not written: %v", err)
	}
}

// TestCLIErrorHandling verifies errors surface as returned errors, not panics.
func TestCLIErrorHandling(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := config.DefaultConfig()

	t.Run("import missing path argument", func(t *testing.T) {
		_, err := runApp(t, database, cfg, []string{"tally", "import"})
		if err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("import nonexistent file", func(t *testing.T) {
		_, err := runApp(t, database, cfg, []string{"tally", "import", filepath.Join(t.TempDir(), "nope.csv")})
		if err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("tag unknown entry", func(t *testing.T) {
		_, err := runApp(t, database, cfg, []string{"tally", "tag", "nonexistent", "ops"})
		if err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("export unsupported format", func(t *testing.T) {
		_, err := runApp(t, database, cfg, []string{"tally", "export", "--format", "pdf"})
		if err == nil {
			t.Error("expected error, got nil")
		}
	})
}

// TestIsCLIMode tests the isCLIMode function.
func TestIsCLIMode(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{
			name:     "no args",
			args:     []string{"tally"},
			expected: false,
		},
		{
			name:     "import command",
			args:     []string{"tally", "import"},
			expected: true,
		},
		{
			name:     "summary command",
			args:     []string{"tally", "summary"},
			expected: true,
		},
		{
			name:     "help flag",
			args:     []string{"tally", "--help"},
			expected: true,
		},
		{
			name:     "version flag",
			args:     []string{"tally", "--version"},
			expected: true,
		},
		{
			name:     "unknown arg defaults to MCP",
			args:     []string{"tally", "--unknown"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()

			os.Args = tt.args
			if result := isCLIMode(); result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

// TestIsHelpOrVersion tests the isHelpOrVersion function.
func TestIsHelpOrVersion(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{
			name:     "no args",
			args:     []string{"tally"},
			expected: false,
		},
		{
			name:     "help subcommand",
			args:     []string{"tally", "help"},
			expected: true,
		},
		{
			name:     "help flag",
			args:     []string{"tally", "--help"},
			expected: true,
		},
		{
			name:     "version flag",
			args:     []string{"tally", "-v"},
			expected: true,
		},
		{
			name:     "regular command",
			args:     []string{"tally", "summary"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()

			os.Args = tt.args
			if result := isHelpOrVersion(); result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}
