package timesheet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/timesheets/internal/domain/activity"
	"github.com/rpggio/timesheets/internal/domain/week"
)

// Service owns the timesheet collection. Every mutation recomputes the derived status of
// the touched timesheet and writes the whole collection through to the repository.
type Service struct {
	mu         sync.Mutex
	timesheets []Timesheet

	repo       Repository
	activities activity.Repository
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

// Option customises a Service.
type Option func(*Service)

// WithClock sets the clock used to place new timesheets.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator sets the generator for timesheet and task ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService creates a timesheet service. repo and activities may be nil.
func NewService(repo Repository, activities activity.Repository, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		timesheets: []Timesheet{},
		repo:       repo,
		activities: activities,
		logger:     logger,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load hydrates the collection from the repository. A failed or empty load leaves the
// service with no timesheets.
func (s *Service) Load(ctx context.Context) {
	if s.repo == nil {
		return
	}

	timesheets, found, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load timesheets", "error", err)
		return
	}
	if !found {
		s.logger.Info("no stored timesheets")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.timesheets = cloneAll(timesheets)
	s.logger.Info("loaded timesheets", "count", len(s.timesheets))
}

// Create appends the timesheet for the week after the most recently created one.
func (s *Service) Create(ctx context.Context) Timesheet {
	s.mu.Lock()
	defer s.mu.Unlock()

	dates := week.Dates(s.now(), len(s.timesheets))
	ts := Timesheet{
		ID:        s.newID(),
		Week:      dates.WeekNumber,
		DateRange: dates.DateRange,
		Status:    StatusMissing,
		Tasks:     []Task{},
		StartDate: dates.StartDate,
		EndDate:   dates.EndDate,
	}
	s.timesheets = append(s.timesheets, ts)

	s.persist(ctx)
	s.logActivity(ctx, &activity.ActivityEntry{
		TimesheetID:  ts.ID,
		ActivityType: activity.TypeTimesheetCreated,
		Summary:      fmt.Sprintf("created timesheet for week %d (%s)", ts.Week, ts.DateRange),
	})

	return ts.Clone()
}

// UpdateStatus overrides the status of a timesheet without deriving it.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (Timesheet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Timesheet{}, false
	}
	previous := s.timesheets[i].Status
	s.timesheets[i].Status = status

	s.persist(ctx)
	s.logActivity(ctx, &activity.ActivityEntry{
		TimesheetID:  id,
		ActivityType: activity.TypeStatusOverridden,
		Summary:      fmt.Sprintf("status set to %s", status),
		Details:      details(map[string]any{"from": previous, "to": status}),
	})

	return s.timesheets[i].Clone(), true
}

// Delete removes a timesheet. It reports whether anything was removed.
func (s *Service) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.timesheets = slices.Delete(s.timesheets, i, i+1)

	s.persist(ctx)
	s.logActivity(ctx, &activity.ActivityEntry{
		TimesheetID:  id,
		ActivityType: activity.TypeTimesheetDeleted,
		Summary:      "deleted timesheet",
	})
	return true
}

// Get returns a copy of a timesheet.
func (s *Service) Get(_ context.Context, id string) (Timesheet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Timesheet{}, false
	}
	return s.timesheets[i].Clone(), true
}

// List returns a copy of every timesheet in creation order.
func (s *Service) List(_ context.Context) []Timesheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.timesheets)
}

// CalculateStatus derives the status a timesheet's tasks earn, without storing it.
func (s *Service) CalculateStatus(_ context.Context, id string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return StatusMissing
	}
	return DeriveStatus(s.timesheets[i].Tasks)
}

// AddTask appends a task to a timesheet. Nothing is created when the timesheet is unknown.
func (s *Service) AddTask(ctx context.Context, timesheetID string, in TaskInput) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(timesheetID)
	if i < 0 {
		return Task{}, false
	}

	task := Task{
		ID:          s.newID(),
		Date:        in.Date,
		Project:     in.Project,
		WorkType:    in.WorkType,
		Description: in.Description,
		Hours:       ClampHours(in.Hours),
		Status:      in.Status,
	}
	ts := &s.timesheets[i]
	ts.Tasks = append(ts.Tasks, task)
	previous := s.recompute(i)

	s.persist(ctx)
	s.logActivity(ctx, &activity.ActivityEntry{
		TimesheetID:  timesheetID,
		TaskID:       &task.ID,
		ActivityType: activity.TypeTaskAdded,
		Summary:      fmt.Sprintf("added %dh on %s to %s", task.Hours, task.Date, task.Project),
		Details:      statusDetails(previous, *ts),
	})

	return task, true
}

// UpdateTask merges patch into a task of a timesheet.
func (s *Service) UpdateTask(ctx context.Context, timesheetID, taskID string, patch TaskPatch) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(timesheetID)
	if i < 0 {
		return Task{}, false
	}
	ts := &s.timesheets[i]
	j := slices.IndexFunc(ts.Tasks, func(t Task) bool { return t.ID == taskID })
	if j < 0 {
		return Task{}, false
	}

	task := &ts.Tasks[j]
	if patch.Date != nil {
		task.Date = *patch.Date
	}
	if patch.Project != nil {
		task.Project = *patch.Project
	}
	if patch.WorkType != nil {
		task.WorkType = *patch.WorkType
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Hours != nil {
		task.Hours = ClampHours(*patch.Hours)
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	updated := *task
	previous := s.recompute(i)

	s.persist(ctx)
	s.logActivity(ctx, &activity.ActivityEntry{
		TimesheetID:  timesheetID,
		TaskID:       &updated.ID,
		ActivityType: activity.TypeTaskUpdated,
		Summary:      fmt.Sprintf("updated task on %s", updated.Date),
		Details:      statusDetails(previous, *ts),
	})

	return updated, true
}

// DeleteTask removes a task from a timesheet. It reports whether anything was removed.
func (s *Service) DeleteTask(ctx context.Context, timesheetID, taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(timesheetID)
	if i < 0 {
		return false
	}
	ts := &s.timesheets[i]
	j := slices.IndexFunc(ts.Tasks, func(t Task) bool { return t.ID == taskID })
	if j < 0 {
		return false
	}
	ts.Tasks = slices.Delete(ts.Tasks, j, j+1)
	previous := s.recompute(i)

	s.persist(ctx)
	s.logActivity(ctx, &activity.ActivityEntry{
		TimesheetID:  timesheetID,
		TaskID:       &taskID,
		ActivityType: activity.TypeTaskDeleted,
		Summary:      "deleted task",
		Details:      statusDetails(previous, *ts),
	})
	return true
}

// recompute refreshes the cached status of timesheet i and returns the previous one.
// Callers must hold s.mu.
func (s *Service) recompute(i int) Status {
	previous := s.timesheets[i].Status
	s.timesheets[i].Status = DeriveStatus(s.timesheets[i].Tasks)
	if previous != s.timesheets[i].Status {
		s.logger.Debug("timesheet status changed",
			"timesheet_id", s.timesheets[i].ID,
			"from", previous,
			"to", s.timesheets[i].Status,
		)
	}
	return previous
}

func (s *Service) indexOf(id string) int {
	return slices.IndexFunc(s.timesheets, func(ts Timesheet) bool { return ts.ID == id })
}

// persist writes the collection through. Failures are logged; memory stays authoritative.
func (s *Service) persist(ctx context.Context) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(ctx, cloneAll(s.timesheets)); err != nil {
		s.logger.Error("failed to save timesheets", "error", err)
	}
}

func (s *Service) logActivity(ctx context.Context, entry *activity.ActivityEntry) {
	if s.activities == nil {
		return
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	if err := s.activities.Log(ctx, entry); err != nil {
		s.logger.Warn("failed to log activity", "type", entry.ActivityType, "error", err)
	}
}

func statusDetails(previous Status, ts Timesheet) string {
	return details(map[string]any{
		"from":        previous,
		"to":          ts.Status,
		"total_hours": ts.TotalHours(),
	})
}

func details(fields map[string]any) string {
	data, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(data)
}
