package timesheet

import "context"

// StorageKey identifies the timesheet collection in the persistence store.
const StorageKey = "tentwenty_timesheets"

// Repository persists the whole timesheet collection as one snapshot.
type Repository interface {
	// Load returns the stored collection; found is false when nothing was saved yet.
	Load(ctx context.Context) (timesheets []Timesheet, found bool, err error)
	Save(ctx context.Context, timesheets []Timesheet) error
}
