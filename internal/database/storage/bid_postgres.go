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
	"gorm.io/gorm/clause"
)

// BidStorage implements ports.BidStorage with GORM. Both mutating operations
// run in a transaction that locks the listing row first, so concurrent bids on
// the same listing serialize and the highest valid bid always wins.
type BidStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewBidStorage(db *gorm.DB, logger *slog.Logger) *BidStorage {
	return &BidStorage{db: db, logger: logger}
}

// PlaceBid accepts a bid when the listing is open and amount exceeds the
// current price. On rejection nothing is written.
func (s *BidStorage) PlaceBid(ctx context.Context, listingID, bidderID uuid.UUID, amount float64) (*domain.Bid, error) {
	start := time.Now()

	var bid domain.Bid
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing domain.Listing
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&listing, "id = ?", listingID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("listing %s: %w", listingID, domain.ErrNotFound)
			}
			return fmt.Errorf("locking listing: %w", err)
		}

		if !listing.IsActive {
			return domain.ErrAuctionClosed
		}
		if amount <= listing.BidCurrent {
			return fmt.Errorf("%w: current price is %.2f", domain.ErrBidTooLow, listing.BidCurrent)
		}

		bid = domain.Bid{
			ID:        uuid.New(),
			ListingID: listingID,
			BidderID:  bidderID,
			Amount:    amount,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&bid).Error; err != nil {
			return fmt.Errorf("inserting bid: %w", err)
		}

		err = tx.Model(&domain.Listing{}).
			Where("id = ?", listingID).
			Updates(map[string]interface{}{"bid_current": amount, "updated_at": time.Now()}).Error
		if err != nil {
			return fmt.Errorf("advancing current price: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bid accepted",
		"listing_id", listingID,
		"bidder_id", bidderID,
		"amount", amount,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &bid, nil
}

// CloseListing transitions a listing to closed and returns the winning bid.
// Only a user who has bid on the listing may close it.
func (s *BidStorage) CloseListing(ctx context.Context, listingID, userID uuid.UUID) (*domain.Bid, error) {
	start := time.Now()

	var winning domain.Bid
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing domain.Listing
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&listing, "id = ?", listingID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("listing %s: %w", listingID, domain.ErrNotFound)
			}
			return fmt.Errorf("locking listing: %w", err)
		}

		if !listing.IsActive {
			return domain.ErrAuctionClosed
		}

		var callerBids int64
		err = tx.Model(&domain.Bid{}).
			Where("listing_id = ? AND bidder_id = ?", listingID, userID).
			Count(&callerBids).Error
		if err != nil {
			return fmt.Errorf("counting caller bids: %w", err)
		}
		if callerBids == 0 {
			return fmt.Errorf("%w: only bidders may close this auction", domain.ErrPermission)
		}

		err = tx.Where("listing_id = ?", listingID).
			Order("seq DESC").
			First(&winning).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no bids on listing", domain.ErrValidation)
			}
			return fmt.Errorf("loading winning bid: %w", err)
		}
		if winning.Amount <= 0 {
			return fmt.Errorf("%w: winning bid amount must be positive", domain.ErrValidation)
		}

		err = tx.Model(&domain.Listing{}).
			Where("id = ?", listingID).
			Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error
		if err != nil {
			return fmt.Errorf("closing listing: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("auction closed",
		"listing_id", listingID,
		"closed_by", userID,
		"winning_amount", winning.Amount,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &winning, nil
}

// TopBid returns the most recently accepted bid for a listing, or nil.
func (s *BidStorage) TopBid(ctx context.Context, listingID uuid.UUID) (*domain.Bid, error) {
	var bid domain.Bid
	err := s.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("seq DESC").
		First(&bid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading top bid: %w", err)
	}
	return &bid, nil
}
