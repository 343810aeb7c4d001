package mcp

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/timesheets/internal/domain/activity"
	"github.com/rpggio/timesheets/internal/domain/timesheet"
	"github.com/stretchr/testify/require"
)

type memActivity struct {
	entries []activity.ActivityEntry
}

func (m *memActivity) Log(_ context.Context, entry *activity.ActivityEntry) error {
	entry.ID = int64(len(m.entries) + 1)
	m.entries = append([]activity.ActivityEntry{*entry}, m.entries...)
	return nil
}

func (m *memActivity) List(_ context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	var out []activity.ActivityEntry
	for _, e := range m.entries {
		if opts.TimesheetID != nil && e.TimesheetID != *opts.TimesheetID {
			continue
		}
		if opts.ActivityType != nil && e.ActivityType != *opts.ActivityType {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type harness struct {
	svc     *timesheet.Service
	session *sdkmcp.ClientSession
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	acts := &memActivity{}
	n := 0
	svc := timesheet.NewService(nil, acts, nil,
		timesheet.WithClock(func() time.Time { return time.Date(2026, time.January, 21, 10, 0, 0, 0, time.Local) }),
		timesheet.WithIDGenerator(func() string { n++; return "id" + strconv.Itoa(n) }),
	)

	server := NewServer(Config{
		Services: Services{
			Timesheets: svc,
			Activity:   activity.NewService(acts, nil),
		},
		TransportMode: "stdio",
	})

	ctx := context.Background()
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		clientSession.Close()
		serverSession.Wait()
	})

	return &harness{svc: svc, session: clientSession}
}

// call invokes a tool and decodes its structured result into out.
func (h *harness) call(t *testing.T, name string, args any, out any) *sdkmcp.CallToolResult {
	t.Helper()

	res, err := h.session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	if out != nil && !res.IsError {
		data, err := json.Marshal(res.StructuredContent)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, out))
	}
	return res
}

func errorText(res *sdkmcp.CallToolResult) string {
	for _, c := range res.Content {
		if text, ok := c.(*sdkmcp.TextContent); ok {
			return text.Text
		}
	}
	return ""
}

func TestListTools(t *testing.T) {
	h := newHarness(t)

	res, err := h.session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"list_timesheets", "create_timesheet", "get_timesheet", "update_timesheet_status",
		"delete_timesheet", "export_timesheet", "add_task", "update_task", "delete_task",
		"get_recent_activity",
	}, names)
}

func TestTimesheetTools(t *testing.T) {
	h := newHarness(t)

	var created TimesheetResult
	res := h.call(t, "create_timesheet", map[string]any{}, &created)
	require.False(t, res.IsError)
	require.Equal(t, "id1", created.ID)
	require.Equal(t, 4, created.Week)
	require.Equal(t, "MISSING", created.Status)
	require.Equal(t, "19 January, 2026 - 23 January, 2026", created.DateRange)

	var task TaskResult
	res = h.call(t, "add_task", AddTaskParams{
		TimesheetID: created.ID, Date: "2026-01-19", Project: "Alpha", WorkType: "Development", Description: "API", Hours: 40,
	}, &task)
	require.False(t, res.IsError, errorText(res))
	require.Equal(t, 24, task.Hours)

	var detail TimesheetDetailResult
	res = h.call(t, "get_timesheet", GetTimesheetParams{ID: created.ID}, &detail)
	require.False(t, res.IsError, errorText(res))
	require.Equal(t, "INCOMPLETE", detail.Timesheet.Status)
	require.Equal(t, 24, detail.TotalHours)
	require.Equal(t, 60.0, detail.ProgressPercentage)
	require.Len(t, detail.Days, 5)
	require.Equal(t, 24, detail.Days[0].Hours)
	require.Equal(t, "Jan 23", detail.Days[4].Label)

	hours := 8
	status := "pending"
	res = h.call(t, "update_task", UpdateTaskParams{TimesheetID: created.ID, TaskID: task.ID, Hours: &hours, Status: &status}, &task)
	require.False(t, res.IsError, errorText(res))
	require.Equal(t, 8, task.Hours)
	require.Equal(t, "pending", task.Status)
	require.Equal(t, "Alpha", task.Project)

	var list TimesheetListResult
	res = h.call(t, "list_timesheets", ListTimesheetsParams{Status: "INCOMPLETE"}, &list)
	require.False(t, res.IsError, errorText(res))
	require.Len(t, list.Items, 1)
	require.Equal(t, 8, list.Items[0].TotalHours)

	var updated TimesheetResult
	res = h.call(t, "update_timesheet_status", UpdateTimesheetStatusParams{ID: created.ID, Status: "COMPLETED"}, &updated)
	require.False(t, res.IsError, errorText(res))
	require.Equal(t, "COMPLETED", updated.Status)

	var deleted DeleteResult
	h.call(t, "delete_task", DeleteTaskParams{TimesheetID: created.ID, TaskID: task.ID}, &deleted)
	require.True(t, deleted.Deleted)
	h.call(t, "delete_task", DeleteTaskParams{TimesheetID: created.ID, TaskID: task.ID}, &deleted)
	require.False(t, deleted.Deleted)

	got, ok := h.svc.Get(context.Background(), created.ID)
	require.True(t, ok)
	require.Equal(t, timesheet.StatusMissing, got.Status)

	h.call(t, "delete_timesheet", DeleteTimesheetParams{ID: created.ID}, &deleted)
	require.True(t, deleted.Deleted)
	require.Empty(t, h.svc.List(context.Background()))
}

func TestToolErrors(t *testing.T) {
	h := newHarness(t)
	ts := h.svc.Create(context.Background())

	res := h.call(t, "get_timesheet", GetTimesheetParams{ID: "missing"}, nil)
	require.True(t, res.IsError)
	require.Contains(t, errorText(res), "TIMESHEET_NOT_FOUND")

	res = h.call(t, "update_timesheet_status", UpdateTimesheetStatusParams{ID: ts.ID, Status: "DONE"}, nil)
	require.True(t, res.IsError)
	require.Contains(t, errorText(res), "INVALID_STATUS")

	res = h.call(t, "add_task", AddTaskParams{TimesheetID: "missing", Date: "2026-01-19", Hours: 4}, nil)
	require.True(t, res.IsError)
	require.Contains(t, errorText(res), "TIMESHEET_NOT_FOUND")

	hours := 4
	res = h.call(t, "update_task", UpdateTaskParams{TimesheetID: ts.ID, TaskID: "missing", Hours: &hours}, nil)
	require.True(t, res.IsError)
	require.Contains(t, errorText(res), "TASK_NOT_FOUND")

	res = h.call(t, "export_timesheet", ExportTimesheetParams{ID: ts.ID, Format: "pdf"}, nil)
	require.True(t, res.IsError)
	require.Contains(t, errorText(res), "INVALID_FORMAT")
}

func TestExportAndActivityTools(t *testing.T) {
	h := newHarness(t)
	ts := h.svc.Create(context.Background())
	_, ok := h.svc.AddTask(context.Background(), ts.ID, timesheet.TaskInput{Date: "2026-01-20", Project: "Beta", Hours: 6})
	require.True(t, ok)

	var exported ExportResult
	res := h.call(t, "export_timesheet", ExportTimesheetParams{ID: ts.ID}, &exported)
	require.False(t, res.IsError, errorText(res))
	require.Equal(t, "csv", exported.Format)
	require.Equal(t, "timesheet-week-4.csv", exported.Filename)
	require.Contains(t, exported.Content, "2026-01-20,Beta")

	var acts ActivityListResult
	res = h.call(t, "get_recent_activity", GetRecentActivityParams{TimesheetID: ts.ID}, &acts)
	require.False(t, res.IsError, errorText(res))
	require.Len(t, acts.Entries, 2)
	require.Equal(t, string(activity.TypeTaskAdded), acts.Entries[0].Type)
	require.NotEmpty(t, acts.Entries[0].TaskID)

	res = h.call(t, "get_recent_activity", GetRecentActivityParams{Type: string(activity.TypeTimesheetCreated)}, &acts)
	require.False(t, res.IsError, errorText(res))
	require.Len(t, acts.Entries, 1)
}

func TestDocResources(t *testing.T) {
	h := newHarness(t)

	res, err := h.session.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "docs://timesheets/status-rules"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "COMPLETED")

	list, err := h.session.ListResources(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, list.Resources, len(docResources))
}
