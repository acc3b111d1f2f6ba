package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gobid/auctionhouse/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SocialStorage implements ports.SocialStorage with sqlx.
type SocialStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewSocialStorage(db *sqlx.DB, logger *slog.Logger) *SocialStorage {
	return &SocialStorage{db: db, logger: logger}
}

// CreateComment appends a comment to a listing.
func (s *SocialStorage) CreateComment(ctx context.Context, comment *domain.Comment) error {
	start := time.Now()

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.CreatedAt = time.Now()

	_, err := s.db.NamedExecContext(ctx, `
        INSERT INTO comments (id, listing_id, author_id, content, created_at)
        VALUES (:id, :listing_id, :author_id, :content, :created_at)
    `, comment)
	if err != nil {
		s.logger.Error("failed to insert comment", "listing_id", comment.ListingID, "error", err)
		return fmt.Errorf("inserting comment: %w", err)
	}

	s.logger.Info("comment created",
		"comment_id", comment.ID,
		"listing_id", comment.ListingID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ListCommentsByListing returns a listing's comments in insertion order,
// with the author's username joined in for rendering.
func (s *SocialStorage) ListCommentsByListing(ctx context.Context, listingID uuid.UUID) ([]domain.Comment, error) {
	q := `
    SELECT c.id, c.listing_id, c.author_id, u.username AS author_username, c.content, c.created_at
    FROM comments c
    JOIN users u ON u.id = c.author_id
    WHERE c.listing_id = $1
    ORDER BY c.created_at, c.id
    `

	comments := []domain.Comment{}
	if err := s.db.SelectContext(ctx, &comments, q, listingID); err != nil {
		s.logger.Error("failed to list comments", "listing_id", listingID, "error", err)
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}

// AddWatchlistEntry marks a listing as watched. Adding an existing pair is a
// no-op.
func (s *SocialStorage) AddWatchlistEntry(ctx context.Context, userID, listingID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO watchlist_entries (user_id, listing_id, created_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, listing_id) DO NOTHING
    `, userID, listingID, time.Now())
	if err != nil {
		s.logger.Error("failed to add watchlist entry", "user_id", userID, "listing_id", listingID, "error", err)
		return fmt.Errorf("adding watchlist entry: %w", err)
	}
	return nil
}

// RemoveWatchlistEntry unmarks a listing. Removing an absent pair is a no-op.
func (s *SocialStorage) RemoveWatchlistEntry(ctx context.Context, userID, listingID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
        DELETE FROM watchlist_entries WHERE user_id = $1 AND listing_id = $2
    `, userID, listingID)
	if err != nil {
		s.logger.Error("failed to remove watchlist entry", "user_id", userID, "listing_id", listingID, "error", err)
		return fmt.Errorf("removing watchlist entry: %w", err)
	}
	return nil
}

// IsWatched reports watchlist membership for one (user, listing) pair.
func (s *SocialStorage) IsWatched(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	var watched bool
	err := s.db.GetContext(ctx, &watched, `
        SELECT EXISTS (
            SELECT 1 FROM watchlist_entries WHERE user_id = $1 AND listing_id = $2
        )
    `, userID, listingID)
	if err != nil {
		return false, fmt.Errorf("checking watchlist membership: %w", err)
	}
	return watched, nil
}

// WatchedListingIDs returns the ids of a user's watched listings in entry
// creation order.
func (s *SocialStorage) WatchedListingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := s.db.SelectContext(ctx, &ids, `
        SELECT listing_id FROM watchlist_entries
        WHERE user_id = $1
        ORDER BY created_at, listing_id
    `, userID)
	if err != nil {
		s.logger.Error("failed to list watched listings", "user_id", userID, "error", err)
		return nil, fmt.Errorf("listing watched listing ids: %w", err)
	}
	return ids, nil
}
