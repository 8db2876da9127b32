package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mcpadapter "github.com/jkatiyar/ai-enterprise-search/internal/adapters/mcp"
	"github.com/jkatiyar/ai-enterprise-search/internal/bootstrap"
	"github.com/jkatiyar/ai-enterprise-search/internal/config"
	"github.com/jkatiyar/ai-enterprise-search/internal/observability/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", "error", err)
		os.Exit(1)
	}
	// Stdout carries the MCP protocol; route logs to stderr.
	slog.SetDefault(logging.NewJSONLoggerTo(os.Stderr, "mcp", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	server := mcpadapter.NewServer(app.EDUEUC, app.HybridUC)
	slog.Info("mcp_serving_stdio")
	if err := server.ServeStdio(); err != nil {
		slog.Error("mcp_server_failed", "error", err)
		os.Exit(1)
	}
}
