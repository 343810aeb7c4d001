package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	TimesheetID  *string
	TaskID       *string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
