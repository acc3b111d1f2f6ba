package usecase

import (
	"context"

	"github.com/gobid/auctionhouse/internal/domain"
	"github.com/google/uuid"
)

// BiddingUseCase defines the bidding state machine over a listing:
// Open -> Closed, one way, no reopen.
type BiddingUseCase interface {
	// PlaceBid records a bid when the listing is open and amount exceeds the
	// current price. Rejections are explicit: domain.ErrBidTooLow means
	// nothing was written and the price is unchanged; a closed listing is
	// domain.ErrAuctionClosed; a missing one domain.ErrNotFound.
	PlaceBid(ctx context.Context, bidderID, listingID uuid.UUID, amount float64) (*domain.Bid, error)

	// CloseAuction irreversibly closes the listing and returns the winning
	// bid. Callers who never bid on the listing get domain.ErrPermission.
	CloseAuction(ctx context.Context, userID, listingID uuid.UUID) (*domain.Bid, error)
}
