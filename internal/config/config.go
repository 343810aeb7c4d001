package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Transport modes.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Auth      AuthConfig      `yaml:"auth"`
	Transport TransportConfig `yaml:"transport"`
}

type ServerConfig struct {
	Host string `yaml:"host" env:"TIMESHEETS_SERVER_HOST"`
	Port int    `yaml:"port" env:"TIMESHEETS_SERVER_PORT"`
}

type DBConfig struct {
	Path string `yaml:"path" env:"TIMESHEETS_DB_PATH"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"TIMESHEETS_LOG_LEVEL"`
	Path  string `yaml:"path" env:"TIMESHEETS_LOG_PATH"`
}

// AuthConfig holds the single login accepted by the server.
type AuthConfig struct {
	Enabled  bool          `yaml:"enabled" env:"TIMESHEETS_AUTH_ENABLED"`
	UserID   string        `yaml:"user_id" env:"TIMESHEETS_AUTH_USER_ID"`
	Email    string        `yaml:"email" env:"TIMESHEETS_AUTH_EMAIL"`
	Password string        `yaml:"password" env:"TIMESHEETS_AUTH_PASSWORD"`
	Name     string        `yaml:"name" env:"TIMESHEETS_AUTH_NAME"`
	Secret   string        `yaml:"secret" env:"TIMESHEETS_AUTH_SECRET"`
	TTL      time.Duration `yaml:"ttl" env:"TIMESHEETS_AUTH_TTL"`
}

type TransportConfig struct {
	Mode string `yaml:"mode" env:"TIMESHEETS_TRANSPORT_MODE"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "timesheets.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Auth: AuthConfig{
			Enabled:  true,
			UserID:   "1",
			Email:    "admin@tentwenty.com",
			Password: "admin123",
			Name:     "Admin User",
			Secret:   "timesheets-dev-secret",
			TTL:      24 * time.Hour,
		},
		Transport: TransportConfig{
			Mode: TransportHTTP,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("TIMESHEETS_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case TransportHTTP, TransportStdio:
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	if c.Transport.Mode == TransportHTTP && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Auth.Enabled {
		if c.Auth.Secret == "" {
			return errors.New("auth secret is required when auth is enabled")
		}
		if c.Auth.Email == "" || c.Auth.Password == "" {
			return errors.New("auth email and password are required when auth is enabled")
		}
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
