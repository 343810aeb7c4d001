package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/timesheets/internal/domain/timesheet"
	"github.com/rpggio/timesheets/internal/export"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		return &APIError{Code: "TIMESHEET_NOT_FOUND", Message: "timesheet not found", RecoveryHint: "Call list_timesheets for valid IDs"}
	case errors.Is(err, timesheet.ErrTaskNotFound):
		return &APIError{Code: "TASK_NOT_FOUND", Message: "task not found", RecoveryHint: "Call get_timesheet for valid task IDs"}
	case errors.Is(err, timesheet.ErrInvalidStatus):
		return &APIError{Code: "INVALID_STATUS", Message: err.Error(), RecoveryHint: "Use MISSING, INCOMPLETE or COMPLETED"}
	case errors.Is(err, timesheet.ErrInvalidTaskStatus):
		return &APIError{Code: "INVALID_TASK_STATUS", Message: err.Error(), RecoveryHint: "Use completed, incomplete or pending"}
	case errors.Is(err, export.ErrUnknownFormat):
		return &APIError{Code: "INVALID_FORMAT", Message: err.Error(), RecoveryHint: "Use csv or json"}
	default:
		return nil
	}
}

// toolError returns the mapped APIError for err, or err itself when unmapped.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
