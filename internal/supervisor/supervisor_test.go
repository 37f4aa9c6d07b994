package supervisor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sleeper() Config {
	return Config{
		Command:    []string{"sleep", "60"},
		StartProbe: 50 * time.Millisecond,
	}
}

func TestStartAndGracefulStop(t *testing.T) {
	sup := New(sleeper())

	require.NoError(t, sup.Start())
	assert.Equal(t, Running, sup.Status())
	assert.NotZero(t, sup.Pid())

	start := time.Now()
	sup.Stop()
	assert.Equal(t, Stopped, sup.Status())
	// sleep dies on SIGTERM, well before the graceful timeout.
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestStopEscalatesToKill(t *testing.T) {
	cfg := Config{
		// Worker that ignores the graceful signal.
		Command:     []string{"sh", "-c", `trap '' TERM; sleep 60`},
		StopTimeout: 500 * time.Millisecond,
		StartProbe:  50 * time.Millisecond,
	}
	sup := New(cfg)
	require.NoError(t, sup.Start())

	start := time.Now()
	sup.Stop()
	elapsed := time.Since(start)

	assert.Equal(t, Stopped, sup.Status())
	// Full graceful wait, then the kill takes effect promptly.
	assert.GreaterOrEqual(t, elapsed, 500*time.Millisecond)
	assert.Less(t, elapsed, 5*time.Second)
}

func TestStopIsIdempotent(t *testing.T) {
	sup := New(sleeper())

	// Stop before any start is a no-op.
	sup.Stop()
	assert.Equal(t, NotStarted, sup.Status())

	require.NoError(t, sup.Start())
	sup.Stop()
	assert.Equal(t, Stopped, sup.Status())

	// And again after stopping.
	sup.Stop()
	assert.Equal(t, Stopped, sup.Status())
}

func TestStartFailedOnImmediateExit(t *testing.T) {
	cfg := Config{
		Command:    []string{"sh", "-c", "exit 7"},
		StartProbe: time.Second,
	}
	sup := New(cfg)

	err := sup.Start()
	require.Error(t, err)
	assert.Equal(t, StartFailed, sup.Status())
	assert.Equal(t, 7, sup.ExitCode())

	// Stop after a failed start is a no-op.
	sup.Stop()
}

func TestStartFailedOnMissingBinary(t *testing.T) {
	sup := New(Config{Command: []string{"definitely-not-a-real-binary-1b2f"}})

	require.Error(t, sup.Start())
	assert.Equal(t, StartFailed, sup.Status())
}

func TestStartIsReentrant(t *testing.T) {
	sup := New(sleeper())
	defer sup.Stop()

	require.NoError(t, sup.Start())
	pid := sup.Pid()
	require.NotZero(t, pid)

	// Second start must not spawn a second worker.
	require.NoError(t, sup.Start())
	assert.Equal(t, pid, sup.Pid())
}

func TestReloadMarkerSuppressesSpawn(t *testing.T) {
	t.Setenv("SUP_TEST_RELOAD_MARKER", "1")

	cfg := sleeper()
	cfg.ReloadMarker = "SUP_TEST_RELOAD_MARKER"
	sup := New(cfg)

	require.NoError(t, sup.Start())
	require.NoError(t, sup.Start())
	// No worker in a reload child context, no matter how often the
	// startup routine runs.
	assert.Equal(t, NotStarted, sup.Status())
	assert.Zero(t, sup.Pid())
}

func TestEnvOverridesReachWorker(t *testing.T) {
	cfg := Config{
		// Exits immediately (start failure) unless the override is seen.
		Command:    []string{"sh", "-c", `[ "$SUP_TEST_MARKER" = "yes" ] && sleep 60`},
		Env:        map[string]string{"SUP_TEST_MARKER": "yes"},
		StartProbe: 100 * time.Millisecond,
	}
	sup := New(cfg)
	defer sup.Stop()

	require.NoError(t, sup.Start())
	assert.Equal(t, Running, sup.Status())
}
