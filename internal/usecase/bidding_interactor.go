package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/gobid/auctionhouse/internal/core/ports"
	"github.com/gobid/auctionhouse/internal/domain"
	"github.com/google/uuid"
)

// biddingUseCase implements BiddingUseCase. The accept/close decisions run
// inside the storage transaction; this layer validates input and reports.
type biddingUseCase struct {
	bidStorage ports.BidStorage
	logger     *slog.Logger
}

// NewBiddingUseCase creates a new BiddingUseCase.
func NewBiddingUseCase(bidStorage ports.BidStorage, logger *slog.Logger) BiddingUseCase {
	return &biddingUseCase{bidStorage: bidStorage, logger: logger}
}

func (uc *biddingUseCase) PlaceBid(ctx context.Context, bidderID, listingID uuid.UUID, amount float64) (*domain.Bid, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("%w: bid amount must be a positive number", domain.ErrValidation)
	}

	bid, err := uc.bidStorage.PlaceBid(ctx, listingID, bidderID, amount)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("bid placed",
		"listing_id", listingID,
		"bidder_id", bidderID,
		"amount", bid.Amount,
	)
	return bid, nil
}

func (uc *biddingUseCase) CloseAuction(ctx context.Context, userID, listingID uuid.UUID) (*domain.Bid, error) {
	winning, err := uc.bidStorage.CloseListing(ctx, listingID, userID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("auction closed",
		"listing_id", listingID,
		"closed_by", userID,
		"winning_bid", winning.ID,
		"winning_amount", winning.Amount,
	)
	return winning, nil
}
