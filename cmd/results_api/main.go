// Package main Time Series Benchmark Results API
// @title Time Series Benchmark Results API
// @version 1.0
// @description Read-only access to time series classification benchmark results
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/DjordjeVuckovic/ts-bench/cmd/results_api/docs"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/details"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
	"github.com/DjordjeVuckovic/ts-bench/internal/router"
	"github.com/DjordjeVuckovic/ts-bench/internal/server"
	pkgserver "github.com/DjordjeVuckovic/ts-bench/pkg/server"
	"github.com/labstack/echo/v4"
)

func main() {
	cfg, err := server.LoadConfig("cmd/results_api/.env")
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	rs, err := result.LoadMerged(cfg.ResultsFiles...)
	if err != nil {
		slog.Error("Failed to load results", "files", cfg.ResultsFiles, "error", err)
		os.Exit(1)
	}
	det, err := details.LoadFromFile(cfg.DetailsFile)
	if err != nil {
		slog.Error("Failed to load dataset details", "file", cfg.DetailsFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded results", "datasets", rs.Len(), "metrics", len(rs.Metrics()))

	health := pkgserver.HealthCheckFunc(func(context.Context) bool { return rs.Len() > 0 })
	s := server.New(cfg, health).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks().
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Time Series Benchmark Results API is running")
	})

	resultsRouter := router.NewResultsRouter(s.Echo, rs, det)
	if err := resultsRouter.Validate(); err != nil {
		slog.Error("Nothing to serve", "error", err)
		os.Exit(1)
	}
	resultsRouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
