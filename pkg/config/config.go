package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hostpanel/hostpanel/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Plugins       PluginConfig
	I18n          I18nConfig
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for k8s probes)
	HealthPort string
}

// PluginConfig holds plugin discovery configuration
type PluginConfig struct {
	// Dirs are the directories scanned for plugin manifests.
	Dirs []string
	// Watch enables registering/unregistering plugins as manifests change.
	Watch bool
}

// I18nConfig holds translation loading configuration
type I18nConfig struct {
	FetchTimeout    time.Duration
	RefreshSchedule string
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("HOSTPANEL_HOST", "0.0.0.0"),
			Port:            getEnv("HOSTPANEL_PORT", "8080"),
			ReadTimeout:     getEnvDuration("HOSTPANEL_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("HOSTPANEL_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("HOSTPANEL_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("HOSTPANEL_SHUTDOWN_TIMEOUT", 30*time.Second),
			HealthPort:      getEnv("HOSTPANEL_HEALTH_PORT", "9090"),
		},
		Plugins: PluginConfig{
			Dirs:  getEnvPathList("HOSTPANEL_PLUGIN_DIRS", defaultPluginDirs()),
			Watch: getEnvBool("HOSTPANEL_PLUGIN_WATCH", true),
		},
		I18n: I18nConfig{
			FetchTimeout:    getEnvDuration("HOSTPANEL_I18N_FETCH_TIMEOUT", 10*time.Second),
			RefreshSchedule: getEnv("HOSTPANEL_I18N_REFRESH_SCHEDULE", "@every 1h"),
		},
		Observability: ObservabilityConfig{
			LogLevel:       parseLogLevel(getEnv("HOSTPANEL_LOG_LEVEL", "info")),
			MetricsEnabled: getEnvBool("HOSTPANEL_METRICS_ENABLED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}
	if len(c.Plugins.Dirs) == 0 {
		return fmt.Errorf("at least one plugin directory is required")
	}
	if c.I18n.RefreshSchedule == "" {
		return fmt.Errorf("i18n refresh schedule is required")
	}
	return nil
}

// defaultPluginDirs returns the default plugin search directories
func defaultPluginDirs() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "/tmp"
	}
	return []string{
		filepath.Join(homeDir, ".hostpanel", "plugins"),
		"/etc/hostpanel/plugins",
		"./plugins",
	}
}

func parseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.InfoLevel
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return strings.ToLower(value) == "true"
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvPathList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, string(os.PathListSeparator))
	dirs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			dirs = append(dirs, p)
		}
	}
	if len(dirs) == 0 {
		return fallback
	}
	return dirs
}
