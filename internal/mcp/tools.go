package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions for the tally MCP surface.

var importToolDef = mcp.NewTool("tally_import",
	mcp.WithDescription("Import a timesheet CSV log into the store. Columns: From, Task, Remark, Duration (hour)."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path to the CSV log file"),
	),
	mcp.WithString("mode",
		mcp.Description("Import mode: 'append' (default) or 'replace' to wipe the store first"),
		mcp.Enum("append", "replace"),
	),
)

var listToolDef = mcp.NewTool("tally_list",
	mcp.WithDescription("List timesheet entries, newest first, with optional filters and pagination."),
	mcp.WithNumber("year",
		mcp.Description("Only entries whose From date falls in this year"),
	),
	mcp.WithString("task",
		mcp.Description("Only entries tagged with this exact task"),
	),
	mcp.WithBoolean("untagged",
		mcp.Description("Only entries without a task tag (overrides task)"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum entries to return (default 20, max 500)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Number of entries to skip"),
	),
)

var tagToolDef = mcp.NewTool("tally_tag",
	mcp.WithDescription("Assign a task tag to an entry. The tag is canonicalized through configured aliases."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Entry ID"),
	),
	mcp.WithString("task",
		mcp.Required(),
		mcp.Description("Task tag to assign"),
	),
)

var summaryToolDef = mcp.NewTool("tally_summary",
	mcp.WithDescription("Aggregate tagged hours per task, per year and all time."),
	mcp.WithNumber("year",
		mcp.Description("Restrict per-year sections to this year (all-time totals are unaffected)"),
	),
)

var suggestToolDef = mcp.NewTool("tally_suggest",
	mcp.WithDescription("Suggest likely task tags for untagged entries, ranked by probability."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum untagged entries to report (default all)"),
	),
)

var exportToolDef = mcp.NewTool("tally_export",
	mcp.WithDescription("Write a summary report, including pending suggestions, to a file."),
	mcp.WithString("path",
		mcp.Description("Output path (default: exports dir under the data directory)"),
	),
	mcp.WithString("format",
		mcp.Description("Report format: 'markdown' (default) or 'html'"),
		mcp.Enum("markdown", "html"),
	),
	mcp.WithNumber("year",
		mcp.Description("Restrict per-year sections to this year"),
	),
)
