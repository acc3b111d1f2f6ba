package usecase

import (
	"context"

	"github.com/gobid/auctionhouse/internal/domain"
	"github.com/google/uuid"
)

// SocialUseCase defines comments and watchlist membership.
type SocialUseCase interface {
	// AddComment appends a comment to an existing listing. Empty content or
	// content over domain.MaxCommentLength is domain.ErrValidation.
	AddComment(ctx context.Context, authorID, listingID uuid.UUID, content string) (*domain.Comment, error)

	// AddToWatchlist marks a listing as watched. Adding an already watched
	// listing is a no-op.
	AddToWatchlist(ctx context.Context, userID, listingID uuid.UUID) error

	// RemoveFromWatchlist unmarks a listing. Removing an unwatched listing is
	// a no-op.
	RemoveFromWatchlist(ctx context.Context, userID, listingID uuid.UUID) error

	// Watchlist returns the user's watched listings in entry order.
	Watchlist(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error)
}
