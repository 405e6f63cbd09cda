package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/tally/internal/config"
	"github.com/hpungsan/tally/internal/errors"
	"github.com/hpungsan/tally/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "tally",
		Usage:   "Personal timesheet tagger",
		Version: Version,
		Commands: []*cli.Command{
			importCmd(db, cfg),
			listCmd(db),
			tagCmd(db, cfg),
			summaryCmd(db, cfg),
			suggestCmd(db, cfg),
			exportCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// importCmd creates the import command.
func importCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import a timesheet CSV log",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "append", Usage: "Import mode: append|replace"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("path argument is required"))
			}

			output, err := ops.Import(db, cfg, ops.ImportInput{
				Path: c.Args().First(),
				Mode: ops.ImportMode(c.String("mode")),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List entries, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "year", Aliases: []string{"y"}, Usage: "Filter by From-date year"},
			&cli.StringFlag{Name: "task", Aliases: []string{"t"}, Usage: "Filter by exact task tag"},
			&cli.BoolFlag{Name: "untagged", Aliases: []string{"u"}, Usage: "Only entries without a task tag"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum entries to return"},
			&cli.IntFlag{Name: "offset", Usage: "Number of entries to skip"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ListInput{
				Untagged: c.Bool("untagged"),
				Limit:    c.Int("limit"),
				Offset:   c.Int("offset"),
			}

			if c.IsSet("year") {
				year := c.Int("year")
				input.Year = &year
			}
			if task := c.String("task"); task != "" {
				input.Task = &task
			}

			output, err := ops.List(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// tagCmd creates the tag command.
func tagCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "tag",
		Usage:     "Assign a task tag to an entry",
		ArgsUsage: "<id> <task>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return outputError(errors.NewInvalidRequest("usage: tag <id> <task>"))
			}

			output, err := ops.Tag(db, cfg, ops.TagInput{
				ID:   c.Args().Get(0),
				Task: c.Args().Get(1),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// summaryCmd creates the summary command.
func summaryCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Aggregate tagged hours per task, per year and all time",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "year", Aliases: []string{"y"}, Usage: "Restrict per-year sections to this year"},
		},
		Action: func(c *cli.Context) error {
			input := ops.SummaryInput{}
			if c.IsSet("year") {
				year := c.Int("year")
				input.Year = &year
			}

			output, err := ops.Summary(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// suggestCmd creates the suggest command.
func suggestCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "Suggest likely task tags for untagged entries",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum untagged entries to report"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Suggest(db, cfg, ops.SuggestInput{
				Limit: c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write a summary report to a file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output path (default: exports dir under ~/.tally)"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "markdown", Usage: "Report format: markdown|html"},
			&cli.IntFlag{Name: "year", Aliases: []string{"y"}, Usage: "Restrict per-year sections to this year"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ExportInput{
				Path:   c.String("out"),
				Format: ops.ExportFormat(c.String("format")),
			}
			if c.IsSet("year") {
				year := c.Int("year")
				input.Year = &year
			}

			output, err := ops.Export(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if tErr, ok := err.(*errors.TallyError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", tErr.Code, tErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
