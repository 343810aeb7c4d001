package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/rpggio/timesheets/internal/domain/timesheet"
	"github.com/stretchr/testify/require"
)

func sampleTimesheet() timesheet.Timesheet {
	return timesheet.Timesheet{
		ID:        "ts1",
		Week:      4,
		DateRange: "19 January, 2026 - 23 January, 2026",
		Status:    timesheet.StatusIncomplete,
		StartDate: "19 January, 2026",
		EndDate:   "23 January, 2026",
		Tasks: []timesheet.Task{
			{ID: "t1", Date: "2026-01-19", Project: "Alpha", WorkType: "Development", Description: "API, part 1", Hours: 8, Status: timesheet.TaskCompleted},
			{ID: "t2", Date: "2026-01-20", Project: "Beta", WorkType: "Testing", Description: "regression \"suite\"", Hours: 4},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatCSV, f)

	f, err = ParseFormat(" JSON ")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)
	require.Equal(t, "application/json", f.ContentType())
	require.Equal(t, "timesheet-week-4.json", f.Filename(sampleTimesheet()))

	_, err = ParseFormat("xlsx")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestToCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToCSV(&buf, sampleTimesheet()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	require.Equal(t, []string{"Week", "Date", "Project", "Type of Work", "Description", "Hours", "Status"}, records[0])
	require.Equal(t, []string{"4", "2026-01-19", "Alpha", "Development", "API, part 1", "8", "completed"}, records[1])
	require.Equal(t, "regression \"suite\"", records[2][4])
	require.Equal(t, "", records[2][6])
	require.Equal(t, []string{"4", "", "", "", "Total", "12", "INCOMPLETE"}, records[3])
}

func TestToCSV_NoTasks(t *testing.T) {
	ts := sampleTimesheet()
	ts.Tasks = nil
	ts.Status = timesheet.StatusMissing

	var buf bytes.Buffer
	require.NoError(t, ToCSV(&buf, ts))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "0", records[1][5])
}

func TestToJSON(t *testing.T) {
	exportedAt := time.Date(2026, time.January, 21, 9, 30, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, ToJSON(&buf, sampleTimesheet(), exportedAt))

	var decoded struct {
		ExportedAt  string           `json:"exported_at"`
		Week        int              `json:"week"`
		Status      string           `json:"status"`
		TotalHours  int              `json:"total_hours"`
		TargetHours int              `json:"target_hours"`
		Count       int              `json:"count"`
		Tasks       []timesheet.Task `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "2026-01-21T09:30:00Z", decoded.ExportedAt)
	require.Equal(t, 4, decoded.Week)
	require.Equal(t, "INCOMPLETE", decoded.Status)
	require.Equal(t, 12, decoded.TotalHours)
	require.Equal(t, 40, decoded.TargetHours)
	require.Equal(t, 2, decoded.Count)
	require.Equal(t, sampleTimesheet().Tasks, decoded.Tasks)
}

func TestToJSON_EmptyTasksIsArray(t *testing.T) {
	ts := sampleTimesheet()
	ts.Tasks = nil

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, ts, time.Now()))
	require.Contains(t, buf.String(), `"tasks": []`)
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	require.ErrorIs(t, Write(&buf, Format("xml"), sampleTimesheet(), time.Now()), ErrUnknownFormat)
}
