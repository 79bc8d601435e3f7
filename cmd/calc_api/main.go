// Package main Infix Calculator API
// @title Infix Calculator API
// @version 1.0
// @description Tokenizes and evaluates infix integer expressions and keeps an evaluation history
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	_ "github.com/DjordjeVuckovic/infix-calc/docs"
	"github.com/DjordjeVuckovic/infix-calc/internal/api/router"
	"github.com/DjordjeVuckovic/infix-calc/internal/api/server"
	"github.com/DjordjeVuckovic/infix-calc/internal/calc"
	"github.com/DjordjeVuckovic/infix-calc/internal/storage"
	"github.com/DjordjeVuckovic/infix-calc/internal/storage/factory"
	pkgserver "github.com/DjordjeVuckovic/infix-calc/pkg/server"
	"github.com/labstack/echo/v4"
)

func main() {
	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(logLevel())

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration", "error", err)
		os.Exit(1)
	}

	history, cleanup, err := factory.New(context.Background(), storageCfg)
	if err != nil {
		slog.Error("Failed to create history store", "type", storageCfg.Type, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	s := server.New(sCfg, healthChecker(history)).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Infix Calculator API is running")
	})

	var svcOpts []calc.Option
	var routerOpts []router.CalcRouterOption
	if history != nil {
		svcOpts = append(svcOpts, calc.WithStorer(history))
		routerOpts = append(routerOpts, router.WithHistoryReader(history))
		slog.Info("Evaluation history enabled", "type", storageCfg.Type)
	} else {
		slog.Info("Evaluation history disabled")
	}

	calcRouter := router.NewCalcRouter(s.Echo, calc.New(svcOpts...), routerOpts...)
	calcRouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		cleanup()
		os.Exit(1)
	}
}

func logLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func healthChecker(history storage.History) pkgserver.HealthChecker {
	if p, ok := history.(storage.Pinger); ok {
		return pkgserver.NewPingHealthChecker(2*time.Second, map[string]pkgserver.Pinger{"history": p})
	}
	return pkgserver.NewOkHealthChecker()
}
