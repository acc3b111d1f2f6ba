package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/gobid/auctionhouse/internal/config"
	"github.com/gobid/auctionhouse/internal/database/client"
	"github.com/gobid/auctionhouse/internal/handler"
)

// App bundles the wired application.
type App struct {
	Config     *config.Config
	logger     *slog.Logger
	dbClient   *client.Client
	webHandler *handler.WebHandler
	seeder     *CategorySeeder
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *client.Client,
	webHandler *handler.WebHandler,
	seeder *CategorySeeder,
) *App {
	return &App{
		Config:     cfg,
		logger:     logger,
		dbClient:   dbClient,
		webHandler: webHandler,
		seeder:     seeder,
	}
}

// LoggerIns returns the application logger.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run starts the app in the requested mode and blocks until shutdown.
func (a *App) Run(ctx context.Context, mode string, seedNames []string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", mode)

	var err error
	switch mode {
	case "server":
		err = runServer(ctx, a.Config, a.webHandler, a.logger)
	case "seed":
		err = a.seeder.Seed(ctx, seedNames)
	default:
		err = fmt.Errorf("unknown mode: %s (use 'server' or 'seed')", mode)
	}
	if err != nil {
		return err
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	a.logger.Info("stopped cleanly")
	return nil
}

// Shutdown closes all application resources.
func (a *App) Shutdown() error {
	if a.dbClient != nil {
		if err := a.dbClient.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
	}
	return nil
}
