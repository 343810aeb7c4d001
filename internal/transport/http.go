package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/timesheets/internal/auth"
	"github.com/rpggio/timesheets/internal/domain/activity"
	"github.com/rpggio/timesheets/internal/domain/timesheet"
)

// TimesheetService defines the timesheet operations served over HTTP.
type TimesheetService interface {
	List(ctx context.Context) []timesheet.Timesheet
	Create(ctx context.Context) timesheet.Timesheet
	Get(ctx context.Context, id string) (timesheet.Timesheet, bool)
	UpdateStatus(ctx context.Context, id string, status timesheet.Status) (timesheet.Timesheet, bool)
	Delete(ctx context.Context, id string) bool
	AddTask(ctx context.Context, timesheetID string, in timesheet.TaskInput) (timesheet.Task, bool)
	UpdateTask(ctx context.Context, timesheetID, taskID string, patch timesheet.TaskPatch) (timesheet.Task, bool)
	DeleteTask(ctx context.Context, timesheetID, taskID string) bool
}

// ActivityService defines activity operations served over HTTP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Authorizer checks login credentials and issues session tokens.
type Authorizer interface {
	Authorize(identity, secret string) (string, auth.User, error)
}

// Config wires the HTTP server.
type Config struct {
	Timesheets TimesheetService
	Activity   ActivityService
	// Authorizer serves /login. When nil the route is not registered.
	Authorizer Authorizer
	// AuthMiddleware guards the API routes. When nil the API is open.
	AuthMiddleware func(http.Handler) http.Handler
	// MCP is mounted at /mcp when set. It authenticates its own requests.
	MCP    http.Handler
	Logger *slog.Logger
	Now    func() time.Time
}

// Server wires HTTP handlers.
type Server struct {
	timesheets TimesheetService
	activity   ActivityService
	authorizer Authorizer
	logger     *slog.Logger
	now        func() time.Time
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	srv := &Server{
		timesheets: cfg.Timesheets,
		activity:   cfg.Activity,
		authorizer: cfg.Authorizer,
		logger:     logger,
		now:        now,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", srv.handleHealth)
	if srv.authorizer != nil {
		r.Post("/login", srv.handleLogin)
	}
	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	r.Group(func(r chi.Router) {
		if cfg.AuthMiddleware != nil {
			r.Use(cfg.AuthMiddleware)
		}

		r.Route("/timesheets", func(r chi.Router) {
			r.Get("/", srv.handleListTimesheets)
			r.Post("/", srv.handleCreateTimesheet)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", srv.handleGetTimesheet)
				r.Delete("/", srv.handleDeleteTimesheet)
				r.Patch("/status", srv.handleUpdateStatus)
				r.Get("/export", srv.handleExport)

				r.Post("/tasks", srv.handleAddTask)
				r.Patch("/tasks/{taskID}", srv.handleUpdateTask)
				r.Delete("/tasks/{taskID}", srv.handleDeleteTask)
			})
		})

		if srv.activity != nil {
			r.Get("/activity", srv.handleActivity)
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
