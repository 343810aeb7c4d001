package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `timesheets tracks one weekly timesheet per work week (Monday to Friday) and the tasks logged on it.

Core concepts:
- Timesheet: week number, date range ("19 January, 2026 - 23 January, 2026") and a status.
- Task: one entry on a day of the week with project, type of work, description and hours (1-24).
- Status: MISSING (no tasks), INCOMPLETE (under 40 hours), COMPLETED (40 hours or more).

Workflow:
1) list_timesheets to find a week (filter by status, 5 per page).
2) get_timesheet for the per-day breakdown and progress toward 40 hours.
3) add_task / update_task / delete_task; the status is recomputed after each change.
4) create_timesheet appends the week after the most recently created one.

Docs:
- docs://timesheets/status-rules
- docs://timesheets/weeks
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "docs://timesheets/status-rules",
		Name:        "status_rules",
		Title:       "Timesheet status rules",
		Description: "How a timesheet's status follows from its logged hours, and when it can be overridden.",
		Content: `# Timesheet status rules

| total hours | status |
|---|---|
| no tasks | MISSING |
| 1-39 | INCOMPLETE |
| 40 or more | COMPLETED |

- The target is 40 hours per week. Progress is total / 40, capped at 100%.
- Hours per task are clamped to 1-24 on add and update.
- Every task change (add, update, delete) recomputes the status.
- update_timesheet_status overrides the status directly. The override lasts until the next task change.
- Task status (completed, incomplete, pending) is an optional marker and does not affect the timesheet status.
`,
	},
	{
		URI:         "docs://timesheets/weeks",
		Name:        "weeks",
		Title:       "Week numbering",
		Description: "How timesheet weeks, date ranges and week numbers are derived.",
		Content: `# Week numbering

- A timesheet covers Monday to Friday. Dates are displayed as "19 January, 2026".
- The first timesheet covers the current week; each new one covers the week after the previous.
- Week number = ceil((day of year of the Monday, 0-based) + weekday of Jan 1 (Sunday = 0) + 1) / 7).
  This is not ISO-8601: the week of Monday 29 December 2025 is week 53.
- Task dates are YYYY-MM-DD and are grouped per day of the week.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
