package ports

import (
	"context"

	"github.com/gobid/auctionhouse/internal/domain"
	"github.com/google/uuid"
)

// UserStorage defines persistence for accounts.
type UserStorage interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// CatalogStorage defines persistence for categories and listings.
type CatalogStorage interface {
	CreateCategory(ctx context.Context, category *domain.Category) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	CreateListing(ctx context.Context, listing *domain.Listing) error
	GetListingByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	ListActiveListings(ctx context.Context, categoryID *uuid.UUID) ([]domain.Listing, error)
	ListingsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Listing, error)
}

// BidStorage defines persistence for bids and the listing state transitions
// they drive. PlaceBid and CloseListing are single transactions: the listing
// row is locked so concurrent bids on one listing serialize and the
// compare-then-write on bid_current cannot lose updates.
type BidStorage interface {
	// PlaceBid records a bid and advances the listing's current price.
	// Returns domain.ErrNotFound, domain.ErrAuctionClosed or domain.ErrBidTooLow
	// without writing anything when the bid cannot be accepted.
	PlaceBid(ctx context.Context, listingID, bidderID uuid.UUID, amount float64) (*domain.Bid, error)

	// CloseListing transitions the listing to closed and returns the winning
	// bid (the most recently accepted one). Only users who have bid on the
	// listing may close it; others get domain.ErrPermission.
	CloseListing(ctx context.Context, listingID, userID uuid.UUID) (*domain.Bid, error)

	// TopBid returns the most recently accepted bid for a listing, or nil when
	// there are none.
	TopBid(ctx context.Context, listingID uuid.UUID) (*domain.Bid, error)
}

// SocialStorage defines persistence for comments and watchlist membership.
type SocialStorage interface {
	CreateComment(ctx context.Context, comment *domain.Comment) error
	ListCommentsByListing(ctx context.Context, listingID uuid.UUID) ([]domain.Comment, error)
	AddWatchlistEntry(ctx context.Context, userID, listingID uuid.UUID) error
	RemoveWatchlistEntry(ctx context.Context, userID, listingID uuid.UUID) error
	IsWatched(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	WatchedListingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
