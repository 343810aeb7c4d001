// Package testserver runs the full HTTP stack over an in-memory database for tests.
package testserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/timesheets/internal/auth"
	"github.com/rpggio/timesheets/internal/domain/activity"
	"github.com/rpggio/timesheets/internal/domain/timesheet"
	"github.com/rpggio/timesheets/internal/mcp"
	"github.com/rpggio/timesheets/internal/sqlite"
	"github.com/rpggio/timesheets/internal/transport"
	"github.com/stretchr/testify/require"
)

const (
	Email    = "admin@tentwenty.com"
	Password = "admin123"
)

type TestServer struct {
	Server     *httptest.Server
	DB         *sqlite.DB
	Timesheets *timesheet.Service
	Auth       *auth.Authenticator
	Token      string
}

// New starts a server whose clock is fixed at now.
func New(t *testing.T, now time.Time) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	clock := func() time.Time { return now }
	activityRepo := sqlite.NewActivityRepository(db)
	timesheetSvc := timesheet.NewService(sqlite.NewSnapshotRepository(db), activityRepo, nil, timesheet.WithClock(clock))
	timesheetSvc.Load(t.Context())
	activitySvc := activity.NewService(activityRepo, nil)

	authenticator, err := auth.New(auth.Config{
		UserID:   "1",
		Email:    Email,
		Password: Password,
		Name:     "Admin User",
		Secret:   "test-secret",
		TTL:      time.Hour,
	}, nil)
	require.NoError(t, err)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Timesheets: timesheetSvc,
			Activity:   activitySvc,
		},
		Resolver:      authenticator,
		AuthEnabled:   true,
		TransportMode: "http",
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Timesheets:     timesheetSvc,
		Activity:       activitySvc,
		Authorizer:     authenticator,
		AuthMiddleware: transport.AuthMiddleware(authenticator),
		MCP:            mcpHandler,
		Now:            clock,
	}))

	token, _, err := authenticator.Authorize(Email, Password)
	require.NoError(t, err)

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:     server,
		DB:         db,
		Timesheets: timesheetSvc,
		Auth:       authenticator,
		Token:      token,
	}
}

// bearerTransport adds an Authorization header to every request.
type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b bearerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("Authorization", "Bearer "+b.token)
	return b.base.RoundTrip(r)
}

// Client returns an HTTP client that sends token as a bearer token.
func (ts *TestServer) Client(token string) *http.Client {
	return &http.Client{Transport: bearerTransport{token: token, base: http.DefaultTransport}}
}

// ConnectMCP opens an MCP client session against /mcp using token.
func (ts *TestServer) ConnectMCP(t *testing.T, token string) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(t.Context(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: ts.Client(token),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}
