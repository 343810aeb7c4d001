package view

import (
	"fmt"

	"github.com/rpggio/timesheets/internal/domain/timesheet"
	"github.com/rpggio/timesheets/internal/domain/week"
)

// DayTasks is one day of the work week with the tasks logged on it.
type DayTasks struct {
	week.Day
	Tasks []timesheet.Task `json:"tasks"`
}

// TimesheetDetail is the per-day view of one timesheet with its progress.
type TimesheetDetail struct {
	Timesheet          timesheet.Timesheet         `json:"timesheet"`
	Days               []DayTasks                  `json:"days"`
	TasksByDate        map[string][]timesheet.Task `json:"tasks_by_date"`
	TotalHours         int                         `json:"total_hours"`
	TargetHours        int                         `json:"target_hours"`
	ProgressPercentage float64                     `json:"progress_percentage"`
}

// TasksByDate groups tasks by calendar day, keeping insertion order within a day.
func TasksByDate(tasks []timesheet.Task) map[string][]timesheet.Task {
	byDate := make(map[string][]timesheet.Task)
	for _, task := range tasks {
		byDate[task.Date] = append(byDate[task.Date], task)
	}
	return byDate
}

// Progress returns total/target as a percentage, capped at 100.
func Progress(totalHours, targetHours int) float64 {
	if targetHours <= 0 {
		return 0
	}
	return min(float64(totalHours)/float64(targetHours)*100, 100)
}

// Detail expands a timesheet into its work week. It fails when the stored start date
// cannot be parsed.
func Detail(ts timesheet.Timesheet) (TimesheetDetail, error) {
	days, err := week.ExpandWorkWeek(ts.StartDate)
	if err != nil {
		return TimesheetDetail{}, fmt.Errorf("expanding week of timesheet %s: %w", ts.ID, err)
	}

	byDate := TasksByDate(ts.Tasks)
	dayTasks := make([]DayTasks, 0, len(days))
	for _, day := range days {
		tasks := byDate[day.Date]
		if tasks == nil {
			tasks = []timesheet.Task{}
		}
		dayTasks = append(dayTasks, DayTasks{Day: day, Tasks: tasks})
	}

	total := ts.TotalHours()
	return TimesheetDetail{
		Timesheet:          ts,
		Days:               dayTasks,
		TasksByDate:        byDate,
		TotalHours:         total,
		TargetHours:        timesheet.TargetHours,
		ProgressPercentage: Progress(total, timesheet.TargetHours),
	}, nil
}
