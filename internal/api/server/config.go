package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/infix-calc/pkg/config/env"
	"github.com/DjordjeVuckovic/infix-calc/pkg/utils"
)

const (
	defaultPort            = "8080"
	defaultShutdownTimeout = 10 * time.Second
)

// Config holds the HTTP settings of calc_api.
type Config struct {
	Port            string
	UseHttp2        bool
	CorsOrigins     []string
	ShutdownTimeout time.Duration
}

// LoadConfig reads the .env file (when present) and then PORT, USE_HTTP2,
// CORS_ORIGINS and SHUTDOWN_TIMEOUT.
func LoadConfig() (*Config, error) {
	if err := env.LoadDotEnv(os.Getenv("APP_ENV"), "cmd/calc_api/.env"); err != nil {
		slog.Info("Continuing without .env file", "error", err)
	}

	cfg := &Config{
		Port:            os.Getenv("PORT"),
		UseHttp2:        os.Getenv("USE_HTTP2") == "true",
		CorsOrigins:     utils.SplitTrimmed(os.Getenv("CORS_ORIGINS"), ","),
		ShutdownTimeout: defaultShutdownTimeout,
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if err := validatePort(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	if len(cfg.CorsOrigins) == 0 {
		cfg.CorsOrigins = []string{"*"}
	}

	if raw := os.Getenv("SHUTDOWN_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: expected a positive duration such as 5s", raw)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}

func validatePort(port string) error {
	n, err := strconv.Atoi(port)
	if err != nil {
		return errors.New("port must be a number")
	}
	if n < 1 || n > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}
