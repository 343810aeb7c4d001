package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/timesheets/internal/domain/activity"
	"github.com/rpggio/timesheets/internal/domain/timesheet"
)

// TimesheetService defines timesheet operations needed by MCP.
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

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Timesheets TimesheetService
	Activity   ActivityService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      IdentityResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "timesheets",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio mode: always disable auth (local dev only)
	if cfg.TransportMode == "stdio" || !cfg.AuthEnabled {
		server.AddReceivingMiddleware(noAuthMiddleware(localIdentity))
	} else {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services, time.Now)

	return server
}
