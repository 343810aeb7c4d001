package timesheet

// Status is the completion state of a timesheet, derived from its logged hours.
type Status string

const (
	StatusMissing    Status = "MISSING"
	StatusIncomplete Status = "INCOMPLETE"
	StatusCompleted  Status = "COMPLETED"
)

// TaskStatus is an optional per-task marker set by the client.
type TaskStatus string

const (
	TaskCompleted  TaskStatus = "completed"
	TaskIncomplete TaskStatus = "incomplete"
	TaskPending    TaskStatus = "pending"
)

// Task is a single logged unit of work inside a timesheet
type Task struct {
	ID          string     `json:"id"`
	Date        string     `json:"date"`
	Project     string     `json:"project"`
	WorkType    string     `json:"work_type"`
	Description string     `json:"description"`
	Hours       int        `json:"hours"`
	Status      TaskStatus `json:"status,omitempty"`
}

// Timesheet is one weekly record of tasks and its cached status
type Timesheet struct {
	ID        string `json:"id"`
	Week      int    `json:"week"`
	DateRange string `json:"date_range"`
	Status    Status `json:"status"`
	Tasks     []Task `json:"tasks"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// TaskInput holds the client supplied fields of a new task.
type TaskInput struct {
	Date        string
	Project     string
	WorkType    string
	Description string
	Hours       int
	Status      TaskStatus
}

// TaskPatch holds the fields to merge into an existing task. Nil fields are left alone.
type TaskPatch struct {
	Date        *string
	Project     *string
	WorkType    *string
	Description *string
	Hours       *int
	Status      *TaskStatus
}

// Clone returns a copy that shares no memory with t.
func (t Timesheet) Clone() Timesheet {
	tasks := make([]Task, len(t.Tasks))
	copy(tasks, t.Tasks)
	t.Tasks = tasks
	return t
}

// TotalHours sums the hours logged on the timesheet.
func (t Timesheet) TotalHours() int {
	return TotalHours(t.Tasks)
}

func cloneAll(timesheets []Timesheet) []Timesheet {
	out := make([]Timesheet, len(timesheets))
	for i, ts := range timesheets {
		out[i] = ts.Clone()
	}
	return out
}
