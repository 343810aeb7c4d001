package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rpggio/timesheets/internal/domain/timesheet"
)

type jsonExport struct {
	ExportedAt  string           `json:"exported_at"`
	ID          string           `json:"id"`
	Week        int              `json:"week"`
	DateRange   string           `json:"date_range"`
	Status      timesheet.Status `json:"status"`
	TotalHours  int              `json:"total_hours"`
	TargetHours int              `json:"target_hours"`
	Count       int              `json:"count"`
	Tasks       []timesheet.Task `json:"tasks"`
}

// ToJSON writes ts as an indented JSON document.
func ToJSON(w io.Writer, ts timesheet.Timesheet, exportedAt time.Time) error {
	tasks := ts.Tasks
	if tasks == nil {
		tasks = []timesheet.Task{}
	}
	export := jsonExport{
		ExportedAt:  exportedAt.UTC().Format(time.RFC3339),
		ID:          ts.ID,
		Week:        ts.Week,
		DateRange:   ts.DateRange,
		Status:      ts.Status,
		TotalHours:  ts.TotalHours(),
		TargetHours: timesheet.TargetHours,
		Count:       len(tasks),
		Tasks:       tasks,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
