package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/gobid/auctionhouse/internal/core/ports"
	"github.com/gobid/auctionhouse/internal/domain"
	"github.com/google/uuid"
)

// listingUseCase implements ListingUseCase.
type listingUseCase struct {
	catalogStorage ports.CatalogStorage
	bidStorage     ports.BidStorage
	socialStorage  ports.SocialStorage
	fileStorage    ports.FileStorage // nil when no object store is configured
	uploadLimiter  chan struct{}
	logger         *slog.Logger
}

// NewListingUseCase creates a new ListingUseCase.
func NewListingUseCase(
	catalogStorage ports.CatalogStorage,
	bidStorage ports.BidStorage,
	socialStorage ports.SocialStorage,
	fileStorage ports.FileStorage,
	uploadLimiter chan struct{},
	logger *slog.Logger,
) ListingUseCase {
	return &listingUseCase{
		catalogStorage: catalogStorage,
		bidStorage:     bidStorage,
		socialStorage:  socialStorage,
		fileStorage:    fileStorage,
		uploadLimiter:  uploadLimiter,
		logger:         logger,
	}
}

func (uc *listingUseCase) ListActive(ctx context.Context, categorySlug string) ([]domain.Listing, *domain.Category, error) {
	var category *domain.Category
	var categoryID *uuid.UUID

	if categorySlug != "" {
		c, err := uc.catalogStorage.GetCategoryBySlug(ctx, categorySlug)
		if err != nil {
			return nil, nil, err
		}
		category = c
		categoryID = &c.ID
	}

	listings, err := uc.catalogStorage.ListActiveListings(ctx, categoryID)
	if err != nil {
		return nil, nil, fmt.Errorf("usecase: listing active listings: %w", err)
	}
	return listings, category, nil
}

func (uc *listingUseCase) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := uc.catalogStorage.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: listing categories: %w", err)
	}
	return categories, nil
}

func (uc *listingUseCase) CreateListing(ctx context.Context, sellerID uuid.UUID, input CreateListingInput) (*domain.Listing, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len(input.Title) > 64 {
		return nil, fmt.Errorf("%w: title must be at most 64 characters", domain.ErrValidation)
	}
	if len(input.Description) > 500 {
		return nil, fmt.Errorf("%w: description must be at most 500 characters", domain.ErrValidation)
	}
	if input.StartPrice < 0 || math.IsNaN(input.StartPrice) || math.IsInf(input.StartPrice, 0) {
		return nil, fmt.Errorf("%w: starting price must be a non-negative number", domain.ErrValidation)
	}

	category, err := uc.catalogStorage.GetCategoryByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: category does not exist", domain.ErrValidation)
		}
		return nil, fmt.Errorf("usecase: resolving category: %w", err)
	}

	imageURL := input.ImageURL
	if input.Image != nil && uc.fileStorage != nil {
		url, err := uc.uploadImage(ctx, input.Image)
		if err != nil {
			return nil, fmt.Errorf("usecase: uploading listing image: %w", err)
		}
		imageURL = url
	} else if input.Image != nil {
		uc.logger.Warn("image upload submitted but no object store is configured, keeping typed-in URL")
	}

	listing := &domain.Listing{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    imageURL,
		BidCurrent:  input.StartPrice,
		IsActive:    input.IsActive,
		SellerID:    &sellerID,
		CategoryID:  &category.ID,
	}
	if err := uc.catalogStorage.CreateListing(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// uploadImage pushes the file to the object store under a fresh key. The
// limiter bounds how many uploads run at once.
func (uc *listingUseCase) uploadImage(ctx context.Context, image *ImageUpload) (string, error) {
	select {
	case uc.uploadLimiter <- struct{}{}:
		defer func() { <-uc.uploadLimiter }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("listing-images/%s", uuid.New())
	return uc.fileStorage.UploadFile(ctx, key, image.Reader, contentType)
}

func (uc *listingUseCase) GetListingDetail(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*ListingDetail, error) {
	listing, err := uc.catalogStorage.GetListingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ListingDetail{Listing: *listing}

	if listing.CategoryID != nil {
		category, err := uc.catalogStorage.GetCategoryByID(ctx, *listing.CategoryID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("usecase: loading listing category: %w", err)
		}
		detail.Category = category
	}

	comments, err := uc.socialStorage.ListCommentsByListing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: loading comments: %w", err)
	}
	detail.Comments = comments

	topBid, err := uc.bidStorage.TopBid(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: loading top bid: %w", err)
	}
	detail.TopBid = topBid

	if viewerID != nil {
		watched, err := uc.socialStorage.IsWatched(ctx, *viewerID, id)
		if err != nil {
			return nil, fmt.Errorf("usecase: checking watchlist: %w", err)
		}
		detail.Watched = watched
	}

	return detail, nil
}
