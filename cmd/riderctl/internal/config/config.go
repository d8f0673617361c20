package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/client"
	"github.com/plunoo/riderapp/cmd/riderctl/internal/router"
)

type contextKey string

const configKey contextKey = "riderctl-config"

const (
	// DefaultServerURL matches the backend's local development port.
	DefaultServerURL = "http://localhost:8000"
	// DefaultPollInterval is the admin dashboard refresh cadence.
	DefaultPollInterval = 10 * time.Second

	configFile = "config.yaml"
)

// Settings is the resolved CLI configuration: defaults, then
// ~/.riderctl/config.yaml, then RIDERCTL_* environment variables; flags
// override all of it at the root command.
type Settings struct {
	ServerURL      string
	PollInterval   time.Duration
	NonInteractive bool
	LogLevel       string
}

// fileSettings is the on-disk YAML shape. Durations are strings because
// yaml.v3 has no native time.Duration support.
type fileSettings struct {
	ServerURL      string `yaml:"server"`
	PollInterval   string `yaml:"poll_interval"`
	NonInteractive bool   `yaml:"non_interactive"`
	LogLevel       string `yaml:"log_level"`
}

// LoadSettings resolves settings from defaults, the config file and the
// RIDERCTL_* environment. A missing config file is not an error.
func LoadSettings(dir string) (*Settings, error) {
	settings := &Settings{
		ServerURL:    DefaultServerURL,
		PollInterval: DefaultPollInterval,
		LogLevel:     "info",
	}

	data, err := os.ReadFile(filepath.Join(dir, configFile))
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		var file fileSettings
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		if file.ServerURL != "" {
			settings.ServerURL = file.ServerURL
		}
		if file.PollInterval != "" {
			interval, err := time.ParseDuration(file.PollInterval)
			if err != nil {
				return nil, fmt.Errorf("invalid poll_interval in config file: %w", err)
			}
			settings.PollInterval = interval
		}
		if file.NonInteractive {
			settings.NonInteractive = true
		}
		if file.LogLevel != "" {
			settings.LogLevel = file.LogLevel
		}
	}

	if v := os.Getenv("RIDERCTL_SERVER"); v != "" {
		settings.ServerURL = v
	}
	if v := os.Getenv("RIDERCTL_POLL_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RIDERCTL_POLL_INTERVAL: %w", err)
		}
		settings.PollInterval = interval
	}
	if os.Getenv("RIDERCTL_NON_INTERACTIVE") == "1" {
		settings.NonInteractive = true
	}
	if v := os.Getenv("RIDERCTL_LOG_LEVEL"); v != "" {
		settings.LogLevel = v
	}

	if settings.PollInterval <= 0 {
		settings.PollInterval = DefaultPollInterval
	}
	return settings, nil
}

// GlobalConfig holds shared state for all riderctl commands. The root
// command injects it into the cobra command context in PersistentPreRunE;
// subcommands consume it via MustFromContext.
type GlobalConfig struct {
	ServerURL      string
	PollInterval   time.Duration
	NonInteractive bool
	Clients        *client.Provider
	Router         *router.Table
}

// InjectConfig adds config to the cobra command context.
func InjectConfig(ctx context.Context, cfg *GlobalConfig) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from the command context.
func FromContext(ctx context.Context) (*GlobalConfig, bool) {
	cfg, ok := ctx.Value(configKey).(*GlobalConfig)
	return cfg, ok
}

// MustFromContext retrieves config from context or panics. Only for command
// RunE functions, where the root command has already injected it.
func MustFromContext(ctx context.Context) *GlobalConfig {
	cfg, ok := FromContext(ctx)
	if !ok {
		panic("riderctl: config not found in context - this is a bug in riderctl")
	}
	return cfg
}
