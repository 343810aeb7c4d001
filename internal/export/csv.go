package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rpggio/timesheets/internal/domain/timesheet"
)

// ToCSV writes one row per task followed by a total row.
func ToCSV(w io.Writer, ts timesheet.Timesheet) error {
	cw := csv.NewWriter(w)

	// Header
	if err := cw.Write([]string{"Week", "Date", "Project", "Type of Work", "Description", "Hours", "Status"}); err != nil {
		return err
	}

	week := strconv.Itoa(ts.Week)
	for _, task := range ts.Tasks {
		row := []string{
			week,
			task.Date,
			task.Project,
			task.WorkType,
			task.Description,
			strconv.Itoa(task.Hours),
			string(task.Status),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	if err := cw.Write([]string{week, "", "", "", "Total", strconv.Itoa(ts.TotalHours()), string(ts.Status)}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}
