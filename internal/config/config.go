package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"VizChat/internal/chart"
)

// Config holds application configuration
type Config struct {
	SessionID string
	Debug     bool

	DBPath    string // SQLite session store
	LogDir    string // logs, traces and metrics
	OutputDir string // rendered chart pages
	Addr      string // HTTP listen address for serve

	StyleFile  string // optional YAML style overrides
	AutoDetect bool   // answer visualization requests with sample charts
	Telemetry  bool   // export traces and metrics; noop providers when false

	MaxUploadMB int // upload size limit for the HTTP API
}

// Load reads defaults from the environment, after merging a .env file when one exists
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from environment variables only
func FromEnv() Config {
	return Config{
		DBPath:      envOrDefault("VIZCHAT_DB_PATH", "vizchat.db"),
		LogDir:      envOrDefault("VIZCHAT_LOG_DIR", "logs"),
		OutputDir:   envOrDefault("VIZCHAT_OUTPUT_DIR", "charts"),
		Addr:        envOrDefault("VIZCHAT_ADDR", ":8080"),
		StyleFile:   envOrDefault("VIZCHAT_STYLE_FILE", ""),
		AutoDetect:  envBoolOrDefault("VIZCHAT_AUTO_DETECT", true),
		Telemetry:   envBoolOrDefault("VIZCHAT_TELEMETRY", true),
		MaxUploadMB: envIntOrDefault("VIZCHAT_MAX_UPLOAD_MB", 10),
	}
}

// Validate rejects settings the application cannot run with
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("database path is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d MB", c.MaxUploadMB)
	}
	return nil
}

// ChartOptions returns resolver options for the configured style file
func (c Config) ChartOptions() ([]chart.Option, error) {
	if c.StyleFile == "" {
		return nil, nil
	}
	overrides, err := chart.LoadStyle(c.StyleFile)
	if err != nil {
		return nil, err
	}
	return []chart.Option{chart.WithOverrides(overrides)}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBoolOrDefault(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v == "1" || strings.EqualFold(v, "true")
}
