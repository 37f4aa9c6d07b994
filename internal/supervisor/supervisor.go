// Package supervisor owns the lifecycle of the bot worker process: spawn
// with an augmented environment, liveness check at the start boundary,
// graceful-then-forceful termination, and idempotent stop so signal
// handlers and deferred cleanup can both call it safely.
package supervisor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

type State int

const (
	NotStarted State = iota
	Starting
	Running
	Stopping
	Stopped
	StartFailed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	case StartFailed:
		return "start_failed"
	default:
		return "unknown"
	}
}

const (
	defaultStopTimeout = 10 * time.Second

	// startProbe is how long after spawn the supervisor watches for an
	// immediate exit before declaring the worker running.
	defaultStartProbe = 200 * time.Millisecond
)

type Config struct {
	// Command is the worker argv. Command[0] is resolved via PATH.
	Command []string

	// Env entries are appended to the parent's environment.
	Env map[string]string

	// StopTimeout bounds the graceful phase of Stop before SIGKILL.
	// Zero means 10s.
	StopTimeout time.Duration

	// ReloadMarker names an environment variable that, when set in this
	// process, marks a hot-reload child context: Start becomes a no-op
	// so a re-executed startup routine never spawns a duplicate worker.
	ReloadMarker string

	// StartProbe overrides the immediate-exit probe window. Zero means
	// the default.
	StartProbe time.Duration

	Logger *logrus.Logger
}

type Supervisor struct {
	cfg Config
	log *logrus.Logger

	mu       sync.Mutex
	state    State
	cmd      *exec.Cmd
	waitCh   chan error
	exitCode int
}

func New(cfg Config) *Supervisor {
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = defaultStopTimeout
	}
	if cfg.StartProbe <= 0 {
		cfg.StartProbe = defaultStartProbe
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Supervisor{cfg: cfg, log: log}
}

// Start spawns the worker and verifies it survived the start boundary.
// Calling Start while a worker is live is a no-op, as is calling it in a
// marked reload-child context.
func (s *Supervisor) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.ReloadMarker != "" && os.Getenv(s.cfg.ReloadMarker) != "" {
		s.log.WithField("marker", s.cfg.ReloadMarker).Info("reload child context, not spawning worker")
		return nil
	}
	if s.state == Starting || s.state == Running {
		s.log.Info("worker already running, skipping spawn")
		return nil
	}
	if len(s.cfg.Command) == 0 {
		s.state = StartFailed
		return errors.New("supervisor: empty worker command")
	}

	s.state = Starting

	cmd := exec.Command(s.cfg.Command[0], s.cfg.Command[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	for k, v := range s.cfg.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	if err := cmd.Start(); err != nil {
		s.state = StartFailed
		return fmt.Errorf("supervisor: start worker: %w", err)
	}

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	// A worker that dies right away is a failed start, not a running
	// worker that happened to exit.
	select {
	case <-waitCh:
		s.state = StartFailed
		s.exitCode = cmd.ProcessState.ExitCode()
		return fmt.Errorf("supervisor: worker exited immediately with code %d", s.exitCode)
	case <-time.After(s.cfg.StartProbe):
	}

	s.cmd = cmd
	s.waitCh = waitCh
	s.state = Running
	s.log.WithField("pid", cmd.Process.Pid).Info("worker process started")
	return nil
}

// Stop terminates the worker: SIGTERM, bounded wait, then SIGKILL. It is
// idempotent and safe to call concurrently; a second caller blocks until
// the first finishes, observes Stopped, and returns. Signal errors are
// logged but never block shutdown.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case NotStarted, StartFailed:
		s.log.Info("no active worker process to terminate")
		return
	case Stopped:
		return
	}

	s.state = Stopping
	pid := s.cmd.Process.Pid
	s.log.WithField("pid", pid).Info("terminating worker process")

	if err := s.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		s.log.WithError(err).Warn("SIGTERM failed, worker may already be gone")
	}

	select {
	case <-s.waitCh:
		s.log.WithField("pid", pid).Info("worker terminated gracefully")
	case <-time.After(s.cfg.StopTimeout):
		s.log.WithField("pid", pid).Warn("worker did not terminate in time, killing")
		if err := s.cmd.Process.Kill(); err != nil {
			s.log.WithError(err).Warn("SIGKILL failed")
		}
		<-s.waitCh
		s.log.WithField("pid", pid).Info("worker killed")
	}

	s.cmd = nil
	s.waitCh = nil
	s.state = Stopped
}

func (s *Supervisor) Status() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Pid returns the worker's process id, or 0 when no worker is live.
func (s *Supervisor) Pid() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Running || s.cmd == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// ExitCode returns the recorded exit code after a failed start.
func (s *Supervisor) ExitCode() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitCode
}
