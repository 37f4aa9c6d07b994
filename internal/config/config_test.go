package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_USER_ID", "42")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.AdminUserID)
	assert.Equal(t, "nexus_files.db", cfg.DatabaseURL)
	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.Equal(t, 10*time.Second, cfg.WorkerStopTimeout)
	assert.Equal(t, "nexus-worker", cfg.WorkerBin)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("ADMIN_USER_ID", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
	assert.Contains(t, err.Error(), "ADMIN_USER_ID")
}

func TestLoadRejectsBadAdminID(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_USER_ID", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadParsesDurations(t *testing.T) {
	setRequired(t)
	t.Setenv("WORKER_STOP_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.WorkerStopTimeout)

	t.Setenv("WORKER_STOP_TIMEOUT", "banana")
	_, err = Load()
	assert.Error(t, err)
}
