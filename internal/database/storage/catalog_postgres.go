package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gobid/auctionhouse/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogStorage implements ports.CatalogStorage with GORM.
type CatalogStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewCatalogStorage(db *gorm.DB, logger *slog.Logger) *CatalogStorage {
	return &CatalogStorage{db: db, logger: logger}
}

// CreateCategory inserts a category. A slug collision maps to
// domain.ErrConflict.
func (s *CatalogStorage) CreateCategory(ctx context.Context, category *domain.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}

	result := s.db.WithContext(ctx).Create(category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("category slug %q: %w", category.Slug, domain.ErrConflict)
		}
		return fmt.Errorf("creating category: %w", result.Error)
	}

	s.logger.Info("category created", "id", category.ID, "slug", category.Slug)
	return nil
}

// ListCategories returns all categories ordered by name.
func (s *CatalogStorage) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	result := s.db.WithContext(ctx).Order("name").Find(&categories)
	if result.Error != nil {
		return nil, fmt.Errorf("listing categories: %w", result.Error)
	}
	return categories, nil
}

// GetCategoryBySlug resolves a category by its URL slug.
func (s *CatalogStorage) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var category domain.Category
	result := s.db.WithContext(ctx).Where("slug = ?", slug).First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %q: %w", slug, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting category by slug: %w", result.Error)
	}
	return &category, nil
}

func (s *CatalogStorage) GetCategoryByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var category domain.Category
	result := s.db.WithContext(ctx).First(&category, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting category by id: %w", result.Error)
	}
	return &category, nil
}

// CreateListing inserts a new listing.
func (s *CatalogStorage) CreateListing(ctx context.Context, listing *domain.Listing) error {
	start := time.Now()

	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	result := s.db.WithContext(ctx).Create(listing)
	if result.Error != nil {
		s.logger.Error("failed to create listing", "title", listing.Title, "error", result.Error)
		return fmt.Errorf("creating listing: %w", result.Error)
	}

	s.logger.Info("listing created",
		"id", listing.ID,
		"title", listing.Title,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetListingByID fetches a single listing.
func (s *CatalogStorage) GetListingByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	var listing domain.Listing
	result := s.db.WithContext(ctx).First(&listing, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting listing by id: %w", result.Error)
	}
	return &listing, nil
}

// ListActiveListings returns active listings, newest first, optionally
// restricted to one category.
func (s *CatalogStorage) ListActiveListings(ctx context.Context, categoryID *uuid.UUID) ([]domain.Listing, error) {
	start := time.Now()

	query := s.db.WithContext(ctx).Where("is_active = ?", true)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var listings []domain.Listing
	result := query.Order("created_at DESC").Find(&listings)
	if result.Error != nil {
		s.logger.Error("failed to list active listings", "error", result.Error)
		return nil, fmt.Errorf("listing active listings: %w", result.Error)
	}

	s.logger.Debug("active listings loaded",
		"count", len(listings),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return listings, nil
}

// ListingsByIDs fetches the given listings, ordered to match ids.
func (s *CatalogStorage) ListingsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Listing, error) {
	if len(ids) == 0 {
		return []domain.Listing{}, nil
	}

	var listings []domain.Listing
	result := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&listings)
	if result.Error != nil {
		return nil, fmt.Errorf("listing listings by ids: %w", result.Error)
	}

	byID := make(map[uuid.UUID]domain.Listing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}
	ordered := make([]domain.Listing, 0, len(ids))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			ordered = append(ordered, l)
		}
	}
	return ordered, nil
}
