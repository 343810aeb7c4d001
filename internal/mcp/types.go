package mcp

import (
	"time"

	"github.com/rpggio/timesheets/internal/domain/activity"
	"github.com/rpggio/timesheets/internal/domain/timesheet"
	"github.com/rpggio/timesheets/internal/domain/view"
)

type ListTimesheetsParams struct {
	Status  string `json:"status,omitempty" jsonschema:"MISSING, INCOMPLETE, COMPLETED or All Status (default)"`
	Page    int    `json:"page,omitempty" jsonschema:"1-based page number (default 1)"`
	PerPage int    `json:"per_page,omitempty" jsonschema:"page size (default 5)"`
}

type CreateTimesheetParams struct{}

type GetTimesheetParams struct {
	ID string `json:"id" jsonschema:"timesheet ID"`
}

type UpdateTimesheetStatusParams struct {
	ID     string `json:"id" jsonschema:"timesheet ID"`
	Status string `json:"status" jsonschema:"MISSING, INCOMPLETE or COMPLETED"`
}

type DeleteTimesheetParams struct {
	ID string `json:"id" jsonschema:"timesheet ID"`
}

type AddTaskParams struct {
	TimesheetID string `json:"timesheet_id" jsonschema:"timesheet ID"`
	Date        string `json:"date" jsonschema:"day of the task as YYYY-MM-DD"`
	Project     string `json:"project" jsonschema:"project name"`
	WorkType    string `json:"work_type" jsonschema:"type of work"`
	Description string `json:"description" jsonschema:"task description"`
	Hours       int    `json:"hours" jsonschema:"hours worked, clamped to 1-24"`
	Status      string `json:"status,omitempty" jsonschema:"optional task status: completed, incomplete or pending"`
}

type UpdateTaskParams struct {
	TimesheetID string  `json:"timesheet_id" jsonschema:"timesheet ID"`
	TaskID      string  `json:"task_id" jsonschema:"task ID"`
	Date        *string `json:"date,omitempty" jsonschema:"new day as YYYY-MM-DD"`
	Project     *string `json:"project,omitempty" jsonschema:"new project name"`
	WorkType    *string `json:"work_type,omitempty" jsonschema:"new type of work"`
	Description *string `json:"description,omitempty" jsonschema:"new description"`
	Hours       *int    `json:"hours,omitempty" jsonschema:"new hours, clamped to 1-24"`
	Status      *string `json:"status,omitempty" jsonschema:"new task status"`
}

type DeleteTaskParams struct {
	TimesheetID string `json:"timesheet_id" jsonschema:"timesheet ID"`
	TaskID      string `json:"task_id" jsonschema:"task ID"`
}

type ExportTimesheetParams struct {
	ID     string `json:"id" jsonschema:"timesheet ID"`
	Format string `json:"format,omitempty" jsonschema:"csv (default) or json"`
}

type GetRecentActivityParams struct {
	TimesheetID string `json:"timesheet_id,omitempty" jsonschema:"only activity of this timesheet"`
	Type        string `json:"type,omitempty" jsonschema:"only activity of this type"`
	Limit       int    `json:"limit,omitempty" jsonschema:"maximum number of entries (default 50)"`
}

// TaskResult is the tool view of a task.
type TaskResult struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Project     string `json:"project"`
	WorkType    string `json:"work_type"`
	Description string `json:"description"`
	Hours       int    `json:"hours"`
	Status      string `json:"status,omitempty"`
}

// TimesheetResult is the tool view of a timesheet.
type TimesheetResult struct {
	ID         string       `json:"id"`
	Week       int          `json:"week"`
	DateRange  string       `json:"date_range"`
	Status     string       `json:"status"`
	StartDate  string       `json:"start_date"`
	EndDate    string       `json:"end_date"`
	TotalHours int          `json:"total_hours"`
	Tasks      []TaskResult `json:"tasks"`
}

type TimesheetListResult struct {
	Items      []TimesheetResult `json:"items"`
	Status     string            `json:"status"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
	TotalItems int               `json:"total_items"`
	TotalPages int               `json:"total_pages"`
}

type DayResult struct {
	Date  string       `json:"date"`
	Label string       `json:"label"`
	Hours int          `json:"hours"`
	Tasks []TaskResult `json:"tasks"`
}

type TimesheetDetailResult struct {
	Timesheet          TimesheetResult `json:"timesheet"`
	Days               []DayResult     `json:"days"`
	TotalHours         int             `json:"total_hours"`
	TargetHours        int             `json:"target_hours"`
	ProgressPercentage float64         `json:"progress_percentage"`
}

type DeleteResult struct {
	Deleted bool `json:"deleted"`
}

type ExportResult struct {
	Format   string `json:"format"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type ActivityResult struct {
	ID          int64  `json:"id"`
	TimesheetID string `json:"timesheet_id"`
	TaskID      string `json:"task_id,omitempty"`
	Type        string `json:"type"`
	Summary     string `json:"summary"`
	Details     string `json:"details,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type ActivityListResult struct {
	Entries []ActivityResult `json:"entries"`
}

func toTaskResult(task timesheet.Task) TaskResult {
	return TaskResult{
		ID:          task.ID,
		Date:        task.Date,
		Project:     task.Project,
		WorkType:    task.WorkType,
		Description: task.Description,
		Hours:       task.Hours,
		Status:      string(task.Status),
	}
}

func toTaskResults(tasks []timesheet.Task) []TaskResult {
	out := make([]TaskResult, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toTaskResult(task))
	}
	return out
}

func toTimesheetResult(ts timesheet.Timesheet) TimesheetResult {
	return TimesheetResult{
		ID:         ts.ID,
		Week:       ts.Week,
		DateRange:  ts.DateRange,
		Status:     string(ts.Status),
		StartDate:  ts.StartDate,
		EndDate:    ts.EndDate,
		TotalHours: ts.TotalHours(),
		Tasks:      toTaskResults(ts.Tasks),
	}
}

func toListResult(page view.ListPage) TimesheetListResult {
	items := make([]TimesheetResult, 0, len(page.Items))
	for _, ts := range page.Items {
		items = append(items, toTimesheetResult(ts))
	}
	return TimesheetListResult{
		Items:      items,
		Status:     page.Status,
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}

func toDetailResult(detail view.TimesheetDetail) TimesheetDetailResult {
	days := make([]DayResult, 0, len(detail.Days))
	for _, day := range detail.Days {
		days = append(days, DayResult{
			Date:  day.Date,
			Label: day.Label,
			Hours: timesheet.TotalHours(day.Tasks),
			Tasks: toTaskResults(day.Tasks),
		})
	}
	return TimesheetDetailResult{
		Timesheet:          toTimesheetResult(detail.Timesheet),
		Days:               days,
		TotalHours:         detail.TotalHours,
		TargetHours:        detail.TargetHours,
		ProgressPercentage: detail.ProgressPercentage,
	}
}

func toActivityResult(entry activity.ActivityEntry) ActivityResult {
	result := ActivityResult{
		ID:          entry.ID,
		TimesheetID: entry.TimesheetID,
		Type:        string(entry.ActivityType),
		Summary:     entry.Summary,
		Details:     entry.Details,
		CreatedAt:   entry.CreatedAt.Format(time.RFC3339),
	}
	if entry.TaskID != nil {
		result.TaskID = *entry.TaskID
	}
	return result
}
