package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URI", "postgres://localhost/remindly")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/remindly", cfg.DatabaseURI)
	assert.Equal(t, "0 8 * * *", cfg.SweepSchedule)
	assert.Equal(t, 5, cfg.AlertThresholdDays)
	assert.Equal(t, 4, cfg.SweepWorkers)
	assert.Equal(t, 10*time.Second, cfg.WebhookTimeout)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ALERT_THRESHOLD_DAYS", "3")
	t.Setenv("SWEEP_SCHEDULE", "*/30 * * * *")
	t.Setenv("WEBHOOK_TIMEOUT_SECONDS", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.AlertThresholdDays)
	assert.Equal(t, "*/30 * * * *", cfg.SweepSchedule)
	assert.Equal(t, 2*time.Second, cfg.WebhookTimeout)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("ALERT_THRESHOLD_DAYS", "soon")
	t.Setenv("SWEEP_WORKERS", "-2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.AlertThresholdDays)
	assert.Equal(t, 4, cfg.SweepWorkers)
}
