package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.internal
  port: 5433
  user: app
  password: secret
  database: courseside

rabbitmq:
  host: mq.internal
  port: 5672
  user: app
  password: secret

printer:
  simulate_delays: false
  notifications_enabled: true
  status_delays:
    preparing_ms: 1000
    ready_ms: 2000
    en_route_ms: 3000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "mq.internal", cfg.RabbitMQ.Host)

	settings := cfg.Printer.Settings()
	assert.False(t, settings.SimulateDelays)
	assert.True(t, settings.NotificationsEnabled)
	assert.Equal(t, time.Second, settings.Delays.Preparing)
	assert.Equal(t, 2*time.Second, settings.Delays.Ready)
	assert.Equal(t, 3*time.Second, settings.Delays.EnRoute)
}

func TestLoadAppliesPrinterDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  host: localhost
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	settings := cfg.Printer.Settings()
	assert.True(t, settings.SimulateDelays)
	assert.True(t, settings.NotificationsEnabled)
	assert.Equal(t, 30*time.Second, settings.Delays.Preparing)
	assert.Equal(t, 2*time.Minute, settings.Delays.Ready)
	assert.Equal(t, 30*time.Second, settings.Delays.EnRoute)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "database: [not: a mapping")
	_, err := Load(path)
	assert.Error(t, err)
}
