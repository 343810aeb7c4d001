// Package view builds the read models the UI renders: the filtered, paginated list of
// timesheets and the per-day breakdown of a single timesheet.
package view

import (
	"strings"

	"github.com/rpggio/timesheets/internal/domain/timesheet"
)

const (
	// AllStatus disables status filtering.
	AllStatus = "All Status"
	// DefaultPerPage matches the page size the list opens with.
	DefaultPerPage = 5
)

// ListQuery selects a page of timesheets.
type ListQuery struct {
	Status  string
	Page    int
	PerPage int
}

// ListPage is one page of the filtered timesheet list.
type ListPage struct {
	Items      []timesheet.Timesheet `json:"items"`
	Status     string                `json:"status"`
	Page       int                   `json:"page"`
	PerPage    int                   `json:"per_page"`
	TotalItems int                   `json:"total_items"`
	TotalPages int                   `json:"total_pages"`
}

// List filters timesheets by status and returns the requested page.
//
// The page is not reset when the filter changes; a page past the end is empty.
func List(timesheets []timesheet.Timesheet, q ListQuery) ListPage {
	status := strings.TrimSpace(q.Status)
	if status == "" {
		status = AllStatus
	}
	page := max(q.Page, 1)
	perPage := q.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	filtered := make([]timesheet.Timesheet, 0, len(timesheets))
	for _, ts := range timesheets {
		if status == AllStatus || string(ts.Status) == status {
			filtered = append(filtered, ts)
		}
	}

	start := min((page-1)*perPage, len(filtered))
	end := min(page*perPage, len(filtered))

	return ListPage{
		Items:      filtered[start:end],
		Status:     status,
		Page:       page,
		PerPage:    perPage,
		TotalItems: len(filtered),
		TotalPages: (len(filtered) + perPage - 1) / perPage,
	}
}
