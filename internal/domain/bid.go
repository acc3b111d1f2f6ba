package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bid is an accepted offer on a listing. Rows are immutable; Seq is a
// database-assigned monotonic sequence, so the bid with the greatest Seq for a
// listing defines the current price and, at close, the winner.
type Bid struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ListingID uuid.UUID `json:"listing_id" db:"listing_id"`
	BidderID  uuid.UUID `json:"bidder_id" db:"bidder_id"`
	Amount    float64   `json:"amount" db:"amount"`
	Seq       int64     `json:"seq" gorm:"->" db:"seq"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (Bid) TableName() string {
	return "bids"
}
