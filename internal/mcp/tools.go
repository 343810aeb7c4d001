package mcp

import (
	"bytes"
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/timesheets/internal/domain/activity"
	"github.com/rpggio/timesheets/internal/domain/timesheet"
	"github.com/rpggio/timesheets/internal/domain/view"
	"github.com/rpggio/timesheets/internal/export"
)

// registerTools adds every timesheet tool to server.
func registerTools(server *sdkmcp.Server, svcs Services, now func() time.Time) {
	ts := svcs.Timesheets

	// Timesheets
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_timesheets",
		Description: "List timesheets newest-last, filtered by status and paginated (5 per page by default)",
	}, listTimesheetsHandler(ts))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_timesheet",
		Description: "Create the timesheet for the week after the most recently created one",
	}, createTimesheetHandler(ts))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_timesheet",
		Description: "Get a timesheet broken down by work day, with total hours and progress toward 40",
	}, getTimesheetHandler(ts))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_timesheet_status",
		Description: "Override a timesheet's status; the next task change derives it again",
	}, updateTimesheetStatusHandler(ts))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_timesheet",
		Description: "Delete a timesheet; deleting an unknown ID is not an error",
	}, deleteTimesheetHandler(ts))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_timesheet",
		Description: "Export a timesheet as CSV or JSON text",
	}, exportTimesheetHandler(ts, now))

	// Tasks
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_task",
		Description: "Log a task on a timesheet; hours are clamped to 1-24 and the status is recomputed",
	}, addTaskHandler(ts))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_task",
		Description: "Change the given fields of a task; omitted fields keep their value",
	}, updateTaskHandler(ts))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task from a timesheet; deleting an unknown ID is not an error",
	}, deleteTaskHandler(ts))

	// Activity
	if svcs.Activity != nil {
		sdkmcp.AddTool(server, &sdkmcp.Tool{
			Name:        "get_recent_activity",
			Description: "List recent timesheet and task changes, newest first",
		}, getRecentActivityHandler(svcs.Activity))
	}
}

func listTimesheetsHandler(svc TimesheetService) sdkmcp.ToolHandlerFor[ListTimesheetsParams, TimesheetListResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListTimesheetsParams) (*sdkmcp.CallToolResult, TimesheetListResult, error) {
		page := view.List(svc.List(ctx), view.ListQuery{Status: in.Status, Page: in.Page, PerPage: in.PerPage})
		return nil, toListResult(page), nil
	}
}

func createTimesheetHandler(svc TimesheetService) sdkmcp.ToolHandlerFor[CreateTimesheetParams, TimesheetResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ CreateTimesheetParams) (*sdkmcp.CallToolResult, TimesheetResult, error) {
		return nil, toTimesheetResult(svc.Create(ctx)), nil
	}
}

func getTimesheetHandler(svc TimesheetService) sdkmcp.ToolHandlerFor[GetTimesheetParams, TimesheetDetailResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetTimesheetParams) (*sdkmcp.CallToolResult, TimesheetDetailResult, error) {
		ts, ok := svc.Get(ctx, in.ID)
		if !ok {
			return nil, TimesheetDetailResult{}, toolError(timesheet.ErrTimesheetNotFound)
		}
		detail, err := view.Detail(ts)
		if err != nil {
			return nil, TimesheetDetailResult{}, toolError(fmt.Errorf("%w: %v", timesheet.ErrTimesheetNotFound, err))
		}
		return nil, toDetailResult(detail), nil
	}
}

func updateTimesheetStatusHandler(svc TimesheetService) sdkmcp.ToolHandlerFor[UpdateTimesheetStatusParams, TimesheetResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateTimesheetStatusParams) (*sdkmcp.CallToolResult, TimesheetResult, error) {
		status, err := timesheet.ParseStatus(in.Status)
		if err != nil {
			return nil, TimesheetResult{}, toolError(err)
		}
		ts, ok := svc.UpdateStatus(ctx, in.ID, status)
		if !ok {
			return nil, TimesheetResult{}, toolError(timesheet.ErrTimesheetNotFound)
		}
		return nil, toTimesheetResult(ts), nil
	}
}

func deleteTimesheetHandler(svc TimesheetService) sdkmcp.ToolHandlerFor[DeleteTimesheetParams, DeleteResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteTimesheetParams) (*sdkmcp.CallToolResult, DeleteResult, error) {
		return nil, DeleteResult{Deleted: svc.Delete(ctx, in.ID)}, nil
	}
}

func exportTimesheetHandler(svc TimesheetService, now func() time.Time) sdkmcp.ToolHandlerFor[ExportTimesheetParams, ExportResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ExportTimesheetParams) (*sdkmcp.CallToolResult, ExportResult, error) {
		format, err := export.ParseFormat(in.Format)
		if err != nil {
			return nil, ExportResult{}, toolError(err)
		}
		ts, ok := svc.Get(ctx, in.ID)
		if !ok {
			return nil, ExportResult{}, toolError(timesheet.ErrTimesheetNotFound)
		}
		var buf bytes.Buffer
		if err := export.Write(&buf, format, ts, now()); err != nil {
			return nil, ExportResult{}, fmt.Errorf("export timesheet: %w", err)
		}
		return nil, ExportResult{Format: string(format), Filename: format.Filename(ts), Content: buf.String()}, nil
	}
}

func addTaskHandler(svc TimesheetService) sdkmcp.ToolHandlerFor[AddTaskParams, TaskResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddTaskParams) (*sdkmcp.CallToolResult, TaskResult, error) {
		status, err := timesheet.ParseTaskStatus(in.Status)
		if err != nil {
			return nil, TaskResult{}, toolError(err)
		}
		task, ok := svc.AddTask(ctx, in.TimesheetID, timesheet.TaskInput{
			Date:        in.Date,
			Project:     in.Project,
			WorkType:    in.WorkType,
			Description: in.Description,
			Hours:       in.Hours,
			Status:      status,
		})
		if !ok {
			return nil, TaskResult{}, toolError(timesheet.ErrTimesheetNotFound)
		}
		return nil, toTaskResult(task), nil
	}
}

func updateTaskHandler(svc TimesheetService) sdkmcp.ToolHandlerFor[UpdateTaskParams, TaskResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateTaskParams) (*sdkmcp.CallToolResult, TaskResult, error) {
		patch := timesheet.TaskPatch{
			Date:        in.Date,
			Project:     in.Project,
			WorkType:    in.WorkType,
			Description: in.Description,
			Hours:       in.Hours,
		}
		if in.Status != nil {
			status, err := timesheet.ParseTaskStatus(*in.Status)
			if err != nil {
				return nil, TaskResult{}, toolError(err)
			}
			patch.Status = &status
		}
		task, ok := svc.UpdateTask(ctx, in.TimesheetID, in.TaskID, patch)
		if !ok {
			return nil, TaskResult{}, toolError(timesheet.ErrTaskNotFound)
		}
		return nil, toTaskResult(task), nil
	}
}

func deleteTaskHandler(svc TimesheetService) sdkmcp.ToolHandlerFor[DeleteTaskParams, DeleteResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteTaskParams) (*sdkmcp.CallToolResult, DeleteResult, error) {
		return nil, DeleteResult{Deleted: svc.DeleteTask(ctx, in.TimesheetID, in.TaskID)}, nil
	}
}

func getRecentActivityHandler(svc ActivityService) sdkmcp.ToolHandlerFor[GetRecentActivityParams, ActivityListResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetRecentActivityParams) (*sdkmcp.CallToolResult, ActivityListResult, error) {
		opts := activity.ListActivityOptions{Limit: in.Limit}
		if in.TimesheetID != "" {
			opts.TimesheetID = &in.TimesheetID
		}
		if in.Type != "" {
			activityType := activity.ActivityType(in.Type)
			opts.ActivityType = &activityType
		}
		entries, err := svc.GetRecentActivity(ctx, opts)
		if err != nil {
			return nil, ActivityListResult{}, err
		}
		result := ActivityListResult{Entries: make([]ActivityResult, 0, len(entries))}
		for _, entry := range entries {
			result.Entries = append(result.Entries, toActivityResult(entry))
		}
		return nil, result, nil
	}
}
