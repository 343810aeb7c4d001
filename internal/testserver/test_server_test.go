package testserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/timesheets/internal/domain/timesheet"
	"github.com/rpggio/timesheets/internal/sqlite"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.January, 21, 10, 0, 0, 0, time.Local)

func TestLoginAndRESTFlow(t *testing.T) {
	ts := New(t, fixedNow)

	body, err := json.Marshal(map[string]string{"email": Email, "password": Password})
	require.NoError(t, err)
	resp, err := http.Post(ts.Server.URL+"/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	require.Equal(t, Email, login.User.Email)

	client := ts.Client(login.Token)
	resp, err = client.Post(ts.Server.URL+"/timesheets", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created timesheet.Timesheet
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.Equal(t, "19 January, 2026", created.StartDate)

	task, err := json.Marshal(map[string]any{"date": "2026-01-19", "project": "Alpha", "work_type": "Development", "description": "API", "hours": 8})
	require.NoError(t, err)
	resp, err = client.Post(ts.Server.URL+"/timesheets/"+created.ID+"/tasks", "application/json", bytes.NewReader(task))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(ts.Server.URL + "/timesheets")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWritesSurviveRestart(t *testing.T) {
	ts := New(t, fixedNow)
	ctx := t.Context()

	created := ts.Timesheets.Create(ctx)
	_, ok := ts.Timesheets.AddTask(ctx, created.ID, timesheet.TaskInput{Date: "2026-01-20", Project: "Beta", Hours: 12})
	require.True(t, ok)

	restarted := timesheet.NewService(sqlite.NewSnapshotRepository(ts.DB), nil, nil)
	restarted.Load(ctx)
	got, ok := restarted.Get(ctx, created.ID)
	require.True(t, ok)
	require.Equal(t, timesheet.StatusIncomplete, got.Status)
	require.Equal(t, 12, got.TotalHours())
}

func TestMCPOverHTTP(t *testing.T) {
	ts := New(t, fixedNow)
	session := ts.ConnectMCP(t, ts.Token)

	res, err := session.CallTool(t.Context(), &sdkmcp.CallToolParams{Name: "create_timesheet", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.False(t, res.IsError)

	res, err = session.CallTool(t.Context(), &sdkmcp.CallToolParams{Name: "list_timesheets", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.False(t, res.IsError)

	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var list struct {
		TotalItems int `json:"total_items"`
	}
	require.NoError(t, json.Unmarshal(data, &list))
	require.Equal(t, 1, list.TotalItems)
	require.Len(t, ts.Timesheets.List(t.Context()), 1)
}

func TestMCPOverHTTP_RejectsBadToken(t *testing.T) {
	ts := New(t, fixedNow)
	session := ts.ConnectMCP(t, "not-a-token")

	_, err := session.CallTool(t.Context(), &sdkmcp.CallToolParams{Name: "list_timesheets", Arguments: map[string]any{}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unauthorized")
	require.Empty(t, ts.Timesheets.List(t.Context()))
}
