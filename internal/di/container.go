package di

import (
	"fmt"

	"github.com/gobid/auctionhouse/internal/adapter/storage/s3"
	"github.com/gobid/auctionhouse/internal/app"
	"github.com/gobid/auctionhouse/internal/config"
	"github.com/gobid/auctionhouse/internal/core/ports"
	"github.com/gobid/auctionhouse/internal/database/client"
	"github.com/gobid/auctionhouse/internal/database/storage"
	"github.com/gobid/auctionhouse/internal/handler"
	"github.com/gobid/auctionhouse/internal/logger"
	"github.com/gobid/auctionhouse/internal/usecase"
)

const migrationsPath = "internal/database/migrations"

// BuildApp initializes all dependencies and returns the assembled App.
func BuildApp() (*app.App, error) {
	// 1. Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. PostgreSQL client (migrations applied on connect)
	dbClient, err := client.NewClient(cfg.DatabaseURL, migrationsPath, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Storages
	userStorage := storage.NewUserStorage(dbClient.DB, slogger)
	catalogStorage := storage.NewCatalogStorage(dbClient.Gorm, slogger)
	bidStorage := storage.NewBidStorage(dbClient.Gorm, slogger)
	socialStorage := storage.NewSocialStorage(dbClient.DB, slogger)

	// 4. Optional image store
	var fileStorage ports.FileStorage
	if cfg.ImageStoreEnabled() {
		s3Client, err := s3.NewClient(cfg, slogger)
		if err != nil {
			return nil, fmt.Errorf("initializing image store: %w", err)
		}
		fileStorage = s3Client
	} else {
		slogger.Info("image store not configured, listing image uploads disabled")
	}

	// 5. Upload limiter caps concurrent image uploads.
	uploadLimiter := make(chan struct{}, 5)

	// 6. Business logic
	authUseCase := usecase.NewAuthUseCase(userStorage, cfg.SessionSecret, cfg.SessionTTL, slogger)
	listingUseCase := usecase.NewListingUseCase(catalogStorage, bidStorage, socialStorage, fileStorage, uploadLimiter, slogger)
	biddingUseCase := usecase.NewBiddingUseCase(bidStorage, slogger)
	socialUseCase := usecase.NewSocialUseCase(socialStorage, catalogStorage, slogger)

	// 7. Presentation
	renderer, err := handler.NewRenderer(slogger)
	if err != nil {
		return nil, fmt.Errorf("initializing renderer: %w", err)
	}
	webHandler := handler.NewWebHandler(authUseCase, listingUseCase, biddingUseCase, socialUseCase, renderer, cfg.SessionTTL, slogger)

	// 8. Administrative seeder
	seeder := app.NewCategorySeeder(catalogStorage, slogger)

	application := app.NewApp(cfg, slogger, dbClient, webHandler, seeder)

	slogger.Info("all dependencies initialized")
	return application, nil
}
