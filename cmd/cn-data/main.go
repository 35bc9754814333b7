package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cn-data/internal/slogx"
)

func init() {
	slog.SetDefault(slogx.NewDefault("info"))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := InitializeApp()
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}

	res, err := a.Run(ctx)
	cleanup()
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
	slog.Info("screening finished, see result file", "path", res.Path, "matched", len(res.Rows))
}
