package timesheet

import "errors"

var (
	// ErrInvalidStatus indicates a status value outside MISSING, INCOMPLETE and COMPLETED.
	ErrInvalidStatus = errors.New("invalid timesheet status")
	// ErrInvalidTaskStatus indicates an unknown per-task status.
	ErrInvalidTaskStatus = errors.New("invalid task status")

	// ErrTimesheetNotFound and ErrTaskNotFound are used by the outer surfaces to report a
	// false ok result from the service.
	ErrTimesheetNotFound = errors.New("timesheet not found")
	ErrTaskNotFound      = errors.New("task not found")
)
