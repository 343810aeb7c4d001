package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeTimesheetCreated ActivityType = "timesheet_created"
	TypeTimesheetDeleted ActivityType = "timesheet_deleted"
	TypeStatusOverridden ActivityType = "status_overridden"
	TypeTaskAdded        ActivityType = "task_added"
	TypeTaskUpdated      ActivityType = "task_updated"
	TypeTaskDeleted      ActivityType = "task_deleted"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	TimesheetID  string       `json:"timesheet_id"`
	TaskID       *string      `json:"task_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
