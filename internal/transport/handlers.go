package transport

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/timesheets/internal/auth"
	"github.com/rpggio/timesheets/internal/domain/activity"
	"github.com/rpggio/timesheets/internal/domain/timesheet"
	"github.com/rpggio/timesheets/internal/domain/view"
	"github.com/rpggio/timesheets/internal/export"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  auth.User `json:"user"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type taskRequest struct {
	Date        string `json:"date"`
	Project     string `json:"project"`
	WorkType    string `json:"work_type"`
	Description string `json:"description"`
	Hours       int    `json:"hours"`
	Status      string `json:"status,omitempty"`
}

type taskPatchRequest struct {
	Date        *string `json:"date,omitempty"`
	Project     *string `json:"project,omitempty"`
	WorkType    *string `json:"work_type,omitempty"`
	Description *string `json:"description,omitempty"`
	Hours       *int    `json:"hours,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type activityResponse struct {
	Entries []activity.ActivityEntry `json:"entries"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	token, user, err := s.authorizer.Authorize(req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrRejected) {
			s.logger.Error("login failed", "error", err)
		}
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (s *Server) handleListTimesheets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := optionalInt(q.Get("page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "page must be an integer")
		return
	}
	perPage, err := optionalInt(q.Get("per_page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "per_page must be an integer")
		return
	}

	result := view.List(s.timesheets.List(r.Context()), view.ListQuery{
		Status:  q.Get("status"),
		Page:    page,
		PerPage: perPage,
	})
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateTimesheet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, s.timesheets.Create(r.Context()))
}

func (s *Server) handleGetTimesheet(w http.ResponseWriter, r *http.Request) {
	ts, ok := s.timesheets.Get(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		writeNotFound(w, timesheet.ErrTimesheetNotFound)
		return
	}

	detail, err := view.Detail(ts)
	if err != nil {
		s.logger.Warn("timesheet has an unreadable start date", "timesheet_id", ts.ID, "error", err)
		writeNotFound(w, timesheet.ErrTimesheetNotFound)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	status, err := timesheet.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_STATUS", err.Error())
		return
	}

	ts, ok := s.timesheets.UpdateStatus(r.Context(), chi.URLParam(r, "id"), status)
	if !ok {
		writeNotFound(w, timesheet.ErrTimesheetNotFound)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (s *Server) handleDeleteTimesheet(w http.ResponseWriter, r *http.Request) {
	s.timesheets.Delete(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	status, err := timesheet.ParseTaskStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_TASK_STATUS", err.Error())
		return
	}

	task, ok := s.timesheets.AddTask(r.Context(), chi.URLParam(r, "id"), timesheet.TaskInput{
		Date:        req.Date,
		Project:     req.Project,
		WorkType:    req.WorkType,
		Description: req.Description,
		Hours:       req.Hours,
		Status:      status,
	})
	if !ok {
		writeNotFound(w, timesheet.ErrTimesheetNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req taskPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	patch := timesheet.TaskPatch{
		Date:        req.Date,
		Project:     req.Project,
		WorkType:    req.WorkType,
		Description: req.Description,
		Hours:       req.Hours,
	}
	if req.Status != nil {
		status, err := timesheet.ParseTaskStatus(*req.Status)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_TASK_STATUS", err.Error())
			return
		}
		patch.Status = &status
	}

	task, ok := s.timesheets.UpdateTask(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "taskID"), patch)
	if !ok {
		writeNotFound(w, timesheet.ErrTaskNotFound)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	s.timesheets.DeleteTask(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "taskID"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORMAT", err.Error())
		return
	}
	ts, ok := s.timesheets.Get(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		writeNotFound(w, timesheet.ErrTimesheetNotFound)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+format.Filename(ts)+`"`)
	if err := export.Write(w, format, ts, s.now()); err != nil {
		s.logger.Error("failed to export timesheet", "timesheet_id", ts.ID, "error", err)
	}
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := optionalInt(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "limit must be an integer")
		return
	}

	opts := activity.ListActivityOptions{Limit: limit}
	if id := q.Get("timesheet_id"); id != "" {
		opts.TimesheetID = &id
	}
	if typ := q.Get("type"); typ != "" {
		activityType := activity.ActivityType(typ)
		opts.ActivityType = &activityType
	}

	entries, err := s.activity.GetRecentActivity(r.Context(), opts)
	if err != nil {
		s.logger.Error("failed to list activity", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to list activity")
		return
	}
	if entries == nil {
		entries = []activity.ActivityEntry{}
	}
	writeJSON(w, http.StatusOK, activityResponse{Entries: entries})
}

func writeNotFound(w http.ResponseWriter, err error) {
	code := "TIMESHEET_NOT_FOUND"
	if errors.Is(err, timesheet.ErrTaskNotFound) {
		code = "TASK_NOT_FOUND"
	}
	writeError(w, http.StatusNotFound, code, err.Error())
}

func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
