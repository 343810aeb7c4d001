package timesheet

// TargetHours is a full work week: 8 hours over 5 days.
const TargetHours = 40

// DeriveStatus maps a task list to the status its total hours earn.
func DeriveStatus(tasks []Task) Status {
	if len(tasks) == 0 {
		return StatusMissing
	}
	total := TotalHours(tasks)
	switch {
	case total >= TargetHours:
		return StatusCompleted
	case total > 0:
		return StatusIncomplete
	default:
		return StatusMissing
	}
}

// TotalHours sums the hours of tasks.
func TotalHours(tasks []Task) int {
	total := 0
	for _, task := range tasks {
		total += task.Hours
	}
	return total
}
