package server

import (
	"context"
	"log/slog"
	"time"
)

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

// Pinger is satisfied by backends that can report their own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingHealthChecker is healthy while every pinger answers within timeout.
type PingHealthChecker struct {
	pingers map[string]Pinger
	timeout time.Duration
}

func NewPingHealthChecker(timeout time.Duration, pingers map[string]Pinger) *PingHealthChecker {
	return &PingHealthChecker{
		pingers: pingers,
		timeout: timeout,
	}
}

func (hc *PingHealthChecker) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, hc.timeout)
	defer cancel()

	healthy := true
	for name, p := range hc.pingers {
		if err := p.Ping(ctx); err != nil {
			slog.Warn("Health check failed", "dependency", name, "error", err)
			healthy = false
		}
	}
	return healthy
}
