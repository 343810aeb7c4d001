package timesheet

import (
	"fmt"
	"strings"
)

const (
	MinHours = 1
	MaxHours = 24
)

// ClampHours forces h into [MinHours, MaxHours].
func ClampHours(h int) int {
	return min(max(h, MinHours), MaxHours)
}

// ParseStatus validates a timesheet status string.
func ParseStatus(s string) (Status, error) {
	switch status := Status(strings.ToUpper(strings.TrimSpace(s))); status {
	case StatusMissing, StatusIncomplete, StatusCompleted:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// ParseTaskStatus validates an optional task status. The empty string is allowed.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch status := TaskStatus(strings.ToLower(strings.TrimSpace(s))); status {
	case "", TaskCompleted, TaskIncomplete, TaskPending:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, s)
	}
}
