package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TIMESHEETS_CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: 9090
db:
  path: /tmp/ts.db
log:
  level: debug
auth:
  email: boss@example.com
  ttl: 2h
transport:
  mode: stdio
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	t.Setenv("TIMESHEETS_CONFIG_PATH", path)
	t.Setenv("TIMESHEETS_SERVER_PORT", "7070")
	t.Setenv("TIMESHEETS_AUTH_PASSWORD", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, "/tmp/ts.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "boss@example.com", cfg.Auth.Email)
	require.Equal(t, "s3cret", cfg.Auth.Password)
	require.Equal(t, 2*time.Hour, cfg.Auth.TTL)
	require.Equal(t, TransportStdio, cfg.Transport.Mode)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TIMESHEETS_CONFIG_PATH", "")
	t.Setenv("TIMESHEETS_AUTH_ENABLED", "false")
	t.Setenv("TIMESHEETS_AUTH_TTL", "45m")
	t.Setenv("TIMESHEETS_LOG_PATH", "/var/log/ts.log")

	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.Auth.Enabled)
	require.Equal(t, 45*time.Minute, cfg.Auth.TTL)
	require.Equal(t, "/var/log/ts.log", cfg.Log.Path)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("TIMESHEETS_CONFIG_PATH", "")
	t.Setenv("TIMESHEETS_SERVER_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("TIMESHEETS_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Transport.Mode = "grpc"
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.Port = 0
	require.Error(t, cfg.Validate())

	cfg.Transport.Mode = TransportStdio
	require.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.Auth.Secret = ""
	require.Error(t, cfg.Validate())

	cfg.Auth.Enabled = false
	require.NoError(t, cfg.Validate())
}
