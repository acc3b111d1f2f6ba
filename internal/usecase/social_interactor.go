package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gobid/auctionhouse/internal/core/ports"
	"github.com/gobid/auctionhouse/internal/domain"
	"github.com/google/uuid"
)

// socialUseCase implements SocialUseCase.
type socialUseCase struct {
	socialStorage  ports.SocialStorage
	catalogStorage ports.CatalogStorage
	logger         *slog.Logger
}

// NewSocialUseCase creates a new SocialUseCase.
func NewSocialUseCase(socialStorage ports.SocialStorage, catalogStorage ports.CatalogStorage, logger *slog.Logger) SocialUseCase {
	return &socialUseCase{
		socialStorage:  socialStorage,
		catalogStorage: catalogStorage,
		logger:         logger,
	}
}

func (uc *socialUseCase) AddComment(ctx context.Context, authorID, listingID uuid.UUID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment must not be empty", domain.ErrValidation)
	}
	if len(content) > domain.MaxCommentLength {
		return nil, fmt.Errorf("%w: comment must be at most %d characters", domain.ErrValidation, domain.MaxCommentLength)
	}

	if _, err := uc.catalogStorage.GetListingByID(ctx, listingID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ListingID: listingID,
		AuthorID:  authorID,
		Content:   content,
	}
	if err := uc.socialStorage.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (uc *socialUseCase) AddToWatchlist(ctx context.Context, userID, listingID uuid.UUID) error {
	if _, err := uc.catalogStorage.GetListingByID(ctx, listingID); err != nil {
		return err
	}
	return uc.socialStorage.AddWatchlistEntry(ctx, userID, listingID)
}

func (uc *socialUseCase) RemoveFromWatchlist(ctx context.Context, userID, listingID uuid.UUID) error {
	return uc.socialStorage.RemoveWatchlistEntry(ctx, userID, listingID)
}

func (uc *socialUseCase) Watchlist(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error) {
	ids, err := uc.socialStorage.WatchedListingIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: loading watchlist ids: %w", err)
	}

	listings, err := uc.catalogStorage.ListingsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("usecase: loading watched listings: %w", err)
	}
	return listings, nil
}
