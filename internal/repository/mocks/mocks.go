package mocks

import (
	"context"

	"github.com/rpggio/timesheets/internal/domain/activity"
	"github.com/rpggio/timesheets/internal/domain/timesheet"
	"github.com/stretchr/testify/mock"
)

// TimesheetRepository is a mock for timesheet.Repository.
type TimesheetRepository struct {
	mock.Mock
}

func (m *TimesheetRepository) Load(ctx context.Context) ([]timesheet.Timesheet, bool, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]timesheet.Timesheet); ok {
		return list, args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *TimesheetRepository) Save(ctx context.Context, timesheets []timesheet.Timesheet) error {
	args := m.Called(ctx, timesheets)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
