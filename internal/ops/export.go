package ops

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hpungsan/tally/internal/config"
	"github.com/hpungsan/tally/internal/errors"
	"github.com/hpungsan/tally/internal/report"
)

// ExportFormat selects the report output format.
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatHTML     ExportFormat = "html"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path   string       // optional, default: ~/.tally/exports/summary-<timestamp>.<ext>
	Format ExportFormat // default: markdown
	Year   *int         // optional: restrict per-year sections
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path        string       `json:"path"`
	Format      ExportFormat `json:"format"`
	GeneratedAt int64        `json:"generated_at"`
}

// Export writes the summary report (per-year and all-time task totals plus
// pending suggestions) to a file. Written to a temp file first and renamed
// into place so a failed export never clobbers an existing report.
func Export(database *sql.DB, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	if input.Format == "" {
		input.Format = ExportFormatMarkdown
	}
	if input.Format != ExportFormatMarkdown && input.Format != ExportFormatHTML {
		return nil, errors.NewInvalidRequest("format must be one of: markdown, html")
	}

	summary, err := Summary(database, cfg, SummaryInput{Year: input.Year})
	if err != nil {
		return nil, err
	}
	suggestions, err := Suggest(database, cfg, SuggestInput{})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	markdown := buildReport(summary, suggestions, now)

	content := []byte(markdown)
	if input.Format == ExportFormatHTML {
		content, err = report.HTML("Timesheet summary", markdown)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
	}

	exportPath := input.Path
	if exportPath == "" {
		exportPath, err = defaultExportPath(input.Format, now)
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	// Write to temp file first, then atomic rename to preserve existing file on failure
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := exportPath + "." + hex.EncodeToString(randBytes) + ".tmp"
	if err := os.WriteFile(tempPath, content, 0600); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to write export file: %w", err))
	}
	if err := os.Rename(tempPath, exportPath); err != nil {
		os.Remove(tempPath)
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	return &ExportOutput{
		Path:        exportPath,
		Format:      input.Format,
		GeneratedAt: now.Unix(),
	}, nil
}

// buildReport assembles the markdown summary report.
func buildReport(summary *SummaryOutput, suggestions *SuggestOutput, now time.Time) string {
	var b strings.Builder

	b.WriteString("# Timesheet summary\n\n")
	fmt.Fprintf(&b, "Generated %s. Total %s h logged", now.UTC().Format("2006-01-02 15:04"), report.Hours(summary.TotalHours))
	if summary.UntaggedEntries > 0 {
		fmt.Fprintf(&b, ", of which %s h across %d entries are untagged", report.Hours(summary.UntaggedHours), summary.UntaggedEntries)
	}
	b.WriteString(".\n")

	for _, year := range summary.Years {
		label := fmt.Sprintf("%d", year.Year)
		if year.Year == 0 {
			label = "Undated"
		}
		fmt.Fprintf(&b, "\n## %s (%s h)\n\n", label, report.Hours(year.TotalHours))
		writeTotalsTable(&b, year.Tasks)
	}

	if len(summary.AllTime) > 0 {
		b.WriteString("\n## All time\n\n")
		writeTotalsTable(&b, summary.AllTime)
	}

	if len(suggestions.Items) > 0 {
		b.WriteString("\n## Pending suggestions\n\n")
		for _, s := range suggestions.Items {
			fmt.Fprintf(&b, "- %s — ", excerpt(s.Remark, 80))
			if len(s.Candidates) == 0 {
				b.WriteString("no tasks meet the criteria")
			} else {
				parts := make([]string, 0, len(s.Candidates))
				for _, c := range s.Candidates {
					parts = append(parts, fmt.Sprintf("%s (%s)", c.Task, report.Percent(c.Probability)))
				}
				b.WriteString(strings.Join(parts, ", "))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// writeTotalsTable writes one task-totals markdown table.
func writeTotalsTable(b *strings.Builder, totals []TaskTotal) {
	b.WriteString("| Task | Category | Hours | Entries |\n")
	b.WriteString("|------|----------|-------|---------|\n")
	for _, t := range totals {
		fmt.Fprintf(b, "| %s | %s | %s | %d |\n", t.Task, t.Category, report.Hours(t.Hours), t.Entries)
	}
}

// excerpt flattens a remark to one line and truncates it for display.
func excerpt(remark string, maxChars int) string {
	flat := strings.Join(strings.Fields(remark), " ")
	if len(flat) <= maxChars {
		return flat
	}
	return flat[:maxChars] + "..."
}

// defaultExportPath generates the default export path under ~/.tally/exports.
func defaultExportPath(format ExportFormat, now time.Time) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to get home directory: %w", err))
	}

	ext := "md"
	if format == ExportFormatHTML {
		ext = "html"
	}
	filename := fmt.Sprintf("summary-%s.%s", now.Format("2006-01-02T150405"), ext)
	return filepath.Join(homeDir, ".tally", "exports", filename), nil
}
