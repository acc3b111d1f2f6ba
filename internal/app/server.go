package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gobid/auctionhouse/internal/config"
	"github.com/gobid/auctionhouse/internal/handler"
)

// runServer starts the HTTP server and blocks until the context is cancelled.
func runServer(
	ctx context.Context,
	cfg *config.Config,
	webHandler *handler.WebHandler,
	logger *slog.Logger,
) error {
	r := chi.NewRouter()
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(handler.WithIdentity(cfg.SessionSecret))

	// Public pages.
	r.Get("/", webHandler.Index)
	r.Post("/", webHandler.Index)
	r.Get("/listing/{id}", webHandler.ListingDetail)
	r.Get("/category/{slug}", webHandler.CategoryListings)
	r.Get("/login", webHandler.LoginForm)
	r.Post("/login", webHandler.Login)
	r.Get("/logout", webHandler.Logout)
	r.Get("/register", webHandler.RegisterForm)
	r.Post("/register", webHandler.Register)

	// Pages requiring an authenticated session.
	r.Group(func(r chi.Router) {
		r.Use(handler.RequireAuth)
		r.Get("/create", webHandler.CreateForm)
		r.Post("/create", webHandler.CreateListing)
		r.Get("/add_watchlist/{listingId}", webHandler.AddWatchlist)
		r.Get("/remove_watchlist/{listingId}", webHandler.RemoveWatchlist)
		r.Get("/watchlist", webHandler.Watchlist)
		r.Post("/add_comment/{listingId}", webHandler.AddComment)
		r.Post("/add_bid/{listingId}", webHandler.AddBid)
		r.Get("/close_auction/{listingId}", webHandler.CloseAuction)
	})

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
