package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxCommentLength bounds comment content; there is no other content rule.
const MaxCommentLength = 1000

// Comment is a message left on a listing. Immutable once created.
type Comment struct {
	ID             uuid.UUID `json:"id" db:"id"`
	ListingID      uuid.UUID `json:"listing_id" db:"listing_id"`
	AuthorID       uuid.UUID `json:"author_id" db:"author_id"`
	AuthorUsername string    `json:"author_username" db:"author_username"`
	Content        string    `json:"content" db:"content"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}

// WatchlistEntry marks a (user, listing) pair as watched. Membership is
// idempotent: at most one row per pair.
type WatchlistEntry struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ListingID uuid.UUID `json:"listing_id" db:"listing_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (WatchlistEntry) TableName() string {
	return "watchlist_entries"
}
