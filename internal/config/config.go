package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDatabaseURL = "nexus_files.db"
	defaultListenAddr  = ":8000"
	defaultWorkerBin   = "nexus-worker"
	defaultStopTimeout = "10s"
	defaultSessionTTL  = "1h"

	// ReloadMarkerEnv is set in the environment of hot-reload child
	// processes. When present the supervisor skips spawning a worker so a
	// re-executed startup routine never produces a duplicate bot.
	ReloadMarkerEnv = "NEXUS_RELOAD_CHILD"
)

type Config struct {
	BotToken    string
	BotUsername string
	AdminUserID int64

	DatabaseURL string
	ListenAddr  string

	// DashboardPasscode is either a bcrypt hash or, for initial setup, a
	// plain value.
	DashboardPasscode string
	JWTSecret         string
	SessionTTL        time.Duration

	WorkerBin         string
	WorkerStopTimeout time.Duration
}

// Load reads configuration from the environment, after best-effort loading
// a local .env file. Missing required values are reported together so the
// operator fixes them in one pass.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:          strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		BotUsername:       strings.TrimSpace(os.Getenv("TELEGRAM_BOT_USERNAME")),
		DatabaseURL:       envOr("DATABASE_URL", defaultDatabaseURL),
		ListenAddr:        envOr("LISTEN_ADDR", defaultListenAddr),
		DashboardPasscode: os.Getenv("ADMIN_DASHBOARD_PASSCODE"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		WorkerBin:         envOr("WORKER_BIN", defaultWorkerBin),
	}

	var missing []string
	if cfg.BotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	adminRaw := strings.TrimSpace(os.Getenv("ADMIN_USER_ID"))
	if adminRaw == "" {
		missing = append(missing, "ADMIN_USER_ID")
	} else {
		id, err := strconv.ParseInt(adminRaw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_USER_ID is not a valid integer: %q", adminRaw)
		}
		cfg.AdminUserID = id
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	var err error
	cfg.WorkerStopTimeout, err = envDuration("WORKER_STOP_TIMEOUT", defaultStopTimeout)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL, err = envDuration("DASHBOARD_SESSION_TTL", defaultSessionTTL)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envDuration(key, fallback string) (time.Duration, error) {
	raw := envOr(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration: %q", key, raw)
	}
	return d, nil
}
