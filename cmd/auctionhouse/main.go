package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/gobid/auctionhouse/internal/di"
)

func main() {
	mode := flag.String("mode", "server", "run mode: server, or seed with category names as arguments")
	flag.Parse()

	// Bootstrap logger, used only until the configured logger exists.
	bootstrapLogger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	bootstrapLogger.Info("starting application", "mode", *mode)

	ctx := context.Background()

	application, err := di.BuildApp()
	if err != nil {
		bootstrapLogger.Error("failed to build app", "error", err)
		os.Exit(1)
	}

	logger := application.LoggerIns()
	logger.Info("application initialized successfully")

	if err := application.Run(ctx, *mode, flag.Args()); err != nil {
		logger.Error("application run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
