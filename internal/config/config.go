package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// DefaultDataFile is the tool record document served by /api/tools.
const DefaultDataFile = "models.json"

// Config holds the configuration for the tool catalog service
// Environment variables are automatically parsed from TOOLS_SERVER_ prefix
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"3000"`

	// DataFile is resolved against the binary's directory when relative.
	DataFile string `envconfig:"DATA_FILE" default:"models.json"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Health
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// executable is swapped in tests.
var executable = os.Executable

// ResolveDefaults validates the loaded values and makes DataFile absolute.
func (c *Config) ResolveDefaults() error {
	switch c.Environment {
	case EnvDevelopment, EnvTesting, EnvProduction:
	default:
		return fmt.Errorf("unsupported ENVIRONMENT: %s", c.Environment)
	}

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	if c.HealthIntervalSeconds <= 0 {
		return fmt.Errorf("HEALTH_INTERVAL_SECONDS must be positive, got %d", c.HealthIntervalSeconds)
	}
	if c.HealthProbeTimeoutSeconds <= 0 {
		return fmt.Errorf("HEALTH_PROBE_TIMEOUT_SECONDS must be positive, got %d", c.HealthProbeTimeoutSeconds)
	}

	if c.DataFile == "" {
		c.DataFile = DefaultDataFile
	}
	if !filepath.IsAbs(c.DataFile) {
		dir, err := BinaryDir()
		if err != nil {
			return err
		}
		c.DataFile = filepath.Join(dir, c.DataFile)
	}
	return nil
}

// BinaryDir returns the directory holding the running executable, with symlinks resolved.
func BinaryDir() (string, error) {
	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// New creates a new Config by parsing environment variables
// Environment variables should be prefixed with TOOLS_SERVER_
// Example: TOOLS_SERVER_HTTP_PORT, TOOLS_SERVER_DATA_FILE
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("TOOLS_SERVER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		Environment:               EnvTesting,
		HTTPPort:                  3000,
		DataFile:                  DefaultDataFile,
		LogLevel:                  "debug",
		HealthIntervalSeconds:     1,
		HealthProbeTimeoutSeconds: 1,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
