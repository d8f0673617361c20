package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	settings, err := LoadSettings(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, settings.ServerURL)
	assert.Equal(t, DefaultPollInterval, settings.PollInterval)
	assert.False(t, settings.NonInteractive)
	assert.Equal(t, "info", settings.LogLevel)
}

func TestLoadSettingsFromFile(t *testing.T) {
	dir := t.TempDir()
	body := "server: https://ops.example.com\npoll_interval: 30s\nnon_interactive: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0600))

	settings, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://ops.example.com", settings.ServerURL)
	assert.Equal(t, 30*time.Second, settings.PollInterval)
	assert.True(t, settings.NonInteractive)
}

func TestLoadSettingsEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: https://file.example.com\n"), 0600))
	t.Setenv("RIDERCTL_SERVER", "https://env.example.com")
	t.Setenv("RIDERCTL_POLL_INTERVAL", "5s")
	t.Setenv("RIDERCTL_NON_INTERACTIVE", "1")

	settings, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", settings.ServerURL)
	assert.Equal(t, 5*time.Second, settings.PollInterval)
	assert.True(t, settings.NonInteractive)
}

func TestLoadSettingsRejectsBadInterval(t *testing.T) {
	t.Setenv("RIDERCTL_POLL_INTERVAL", "soon")
	_, err := LoadSettings(t.TempDir())
	require.Error(t, err)
}

func TestLoadSettingsRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [broken"), 0600))
	_, err := LoadSettings(dir)
	require.Error(t, err)
}

func TestConfigContextRoundTrip(t *testing.T) {
	cfg := &GlobalConfig{ServerURL: "https://ops.example.com"}
	ctx := InjectConfig(context.Background(), cfg)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, cfg, got)
	assert.Same(t, cfg, MustFromContext(ctx))

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
	assert.Panics(t, func() { MustFromContext(context.Background()) })
}
