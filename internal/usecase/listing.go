package usecase

import (
	"context"
	"io"

	"github.com/gobid/auctionhouse/internal/domain"
	"github.com/google/uuid"
)

// ImageUpload is an optional image file submitted with the create form.
type ImageUpload struct {
	Reader      io.Reader
	ContentType string
}

// CreateListingInput carries the create-listing form fields.
type CreateListingInput struct {
	Title       string
	Description string
	ImageURL    string
	StartPrice  float64
	CategoryID  uuid.UUID
	IsActive    bool
	Image       *ImageUpload
}

// ListingDetail is everything the listing page renders.
type ListingDetail struct {
	Listing  domain.Listing
	Category *domain.Category
	Comments []domain.Comment
	TopBid   *domain.Bid
	Watched  bool
}

// ListingUseCase defines the catalog business logic.
type ListingUseCase interface {
	// ListActive returns active listings, newest first. A non-empty slug must
	// resolve to a category or the call fails with domain.ErrNotFound; the
	// resolved category is returned alongside for rendering.
	ListActive(ctx context.Context, categorySlug string) ([]domain.Listing, *domain.Category, error)

	// Categories returns all categories for filter and form rendering.
	Categories(ctx context.Context) ([]domain.Category, error)

	// CreateListing creates a listing owned by sellerID with
	// bid_current = StartPrice. A negative or non-finite price and an unknown
	// category are domain.ErrValidation. When an image file is attached and an
	// object store is configured, the file is uploaded and its URL wins over
	// the typed-in ImageURL.
	CreateListing(ctx context.Context, sellerID uuid.UUID, input CreateListingInput) (*domain.Listing, error)

	// GetListingDetail loads the listing plus its comments in insertion order
	// and the most recent bid. When viewerID is non-nil the watched flag is
	// populated for that user.
	GetListingDetail(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*ListingDetail, error)
}
