package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gobid/auctionhouse/internal/domain"
	"github.com/google/uuid"
)

// fakeStore is an in-memory implementation of every storage port, honoring
// the same sentinel-error contracts as the Postgres implementations.
type fakeStore struct {
	users      map[uuid.UUID]domain.User
	categories map[uuid.UUID]domain.Category
	listings   map[uuid.UUID]domain.Listing
	bids       []domain.Bid
	comments   []domain.Comment
	watchlist  []domain.WatchlistEntry
	nextSeq    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      map[uuid.UUID]domain.User{},
		categories: map[uuid.UUID]domain.Category{},
		listings:   map[uuid.UUID]domain.Listing{},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- UserStorage ---

func (f *fakeStore) CreateUser(_ context.Context, user *domain.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return fmt.Errorf("username %q: %w", user.Username, domain.ErrConflict)
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeStore) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
}

func (f *fakeStore) GetUserByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
}

// --- CatalogStorage ---

func (f *fakeStore) CreateCategory(_ context.Context, category *domain.Category) error {
	for _, c := range f.categories {
		if c.Slug == category.Slug {
			return fmt.Errorf("category slug %q: %w", category.Slug, domain.ErrConflict)
		}
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	f.categories[category.ID] = *category
	return nil
}

func (f *fakeStore) ListCategories(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) GetCategoryBySlug(_ context.Context, slug string) (*domain.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			category := c
			return &category, nil
		}
	}
	return nil, fmt.Errorf("category %q: %w", slug, domain.ErrNotFound)
}

func (f *fakeStore) GetCategoryByID(_ context.Context, id uuid.UUID) (*domain.Category, error) {
	if c, ok := f.categories[id]; ok {
		return &c, nil
	}
	return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
}

func (f *fakeStore) CreateListing(_ context.Context, listing *domain.Listing) error {
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt
	f.listings[listing.ID] = *listing
	return nil
}

func (f *fakeStore) GetListingByID(_ context.Context, id uuid.UUID) (*domain.Listing, error) {
	if l, ok := f.listings[id]; ok {
		return &l, nil
	}
	return nil, fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
}

func (f *fakeStore) ListActiveListings(_ context.Context, categoryID *uuid.UUID) ([]domain.Listing, error) {
	out := []domain.Listing{}
	for _, l := range f.listings {
		if !l.IsActive {
			continue
		}
		if categoryID != nil && (l.CategoryID == nil || *l.CategoryID != *categoryID) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeStore) ListingsByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Listing, error) {
	out := []domain.Listing{}
	for _, id := range ids {
		if l, ok := f.listings[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

// --- BidStorage ---

func (f *fakeStore) PlaceBid(_ context.Context, listingID, bidderID uuid.UUID, amount float64) (*domain.Bid, error) {
	listing, ok := f.listings[listingID]
	if !ok {
		return nil, fmt.Errorf("listing %s: %w", listingID, domain.ErrNotFound)
	}
	if !listing.IsActive {
		return nil, domain.ErrAuctionClosed
	}
	if amount <= listing.BidCurrent {
		return nil, fmt.Errorf("%w: current price is %.2f", domain.ErrBidTooLow, listing.BidCurrent)
	}

	f.nextSeq++
	bid := domain.Bid{
		ID:        uuid.New(),
		ListingID: listingID,
		BidderID:  bidderID,
		Amount:    amount,
		Seq:       f.nextSeq,
		CreatedAt: time.Now(),
	}
	f.bids = append(f.bids, bid)

	listing.BidCurrent = amount
	f.listings[listingID] = listing
	return &bid, nil
}

func (f *fakeStore) CloseListing(_ context.Context, listingID, userID uuid.UUID) (*domain.Bid, error) {
	listing, ok := f.listings[listingID]
	if !ok {
		return nil, fmt.Errorf("listing %s: %w", listingID, domain.ErrNotFound)
	}
	if !listing.IsActive {
		return nil, domain.ErrAuctionClosed
	}

	hasBid := false
	for _, b := range f.bids {
		if b.ListingID == listingID && b.BidderID == userID {
			hasBid = true
			break
		}
	}
	if !hasBid {
		return nil, fmt.Errorf("%w: only bidders may close this auction", domain.ErrPermission)
	}

	winning, err := f.TopBid(context.Background(), listingID)
	if err != nil {
		return nil, err
	}
	if winning == nil || winning.Amount <= 0 {
		return nil, fmt.Errorf("%w: winning bid amount must be positive", domain.ErrValidation)
	}

	listing.IsActive = false
	f.listings[listingID] = listing
	return winning, nil
}

func (f *fakeStore) TopBid(_ context.Context, listingID uuid.UUID) (*domain.Bid, error) {
	var top *domain.Bid
	for i := range f.bids {
		b := f.bids[i]
		if b.ListingID != listingID {
			continue
		}
		if top == nil || b.Seq > top.Seq {
			top = &f.bids[i]
		}
	}
	return top, nil
}

// --- SocialStorage ---

func (f *fakeStore) CreateComment(_ context.Context, comment *domain.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.CreatedAt = time.Now()
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeStore) ListCommentsByListing(_ context.Context, listingID uuid.UUID) ([]domain.Comment, error) {
	out := []domain.Comment{}
	for _, c := range f.comments {
		if c.ListingID == listingID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) AddWatchlistEntry(_ context.Context, userID, listingID uuid.UUID) error {
	for _, e := range f.watchlist {
		if e.UserID == userID && e.ListingID == listingID {
			return nil
		}
	}
	f.watchlist = append(f.watchlist, domain.WatchlistEntry{
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now(),
	})
	return nil
}

func (f *fakeStore) RemoveWatchlistEntry(_ context.Context, userID, listingID uuid.UUID) error {
	for i, e := range f.watchlist {
		if e.UserID == userID && e.ListingID == listingID {
			f.watchlist = append(f.watchlist[:i], f.watchlist[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) IsWatched(_ context.Context, userID, listingID uuid.UUID) (bool, error) {
	for _, e := range f.watchlist {
		if e.UserID == userID && e.ListingID == listingID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) WatchedListingIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	for _, e := range f.watchlist {
		if e.UserID == userID {
			ids = append(ids, e.ListingID)
		}
	}
	return ids, nil
}

// --- helpers ---

func (f *fakeStore) addUser(username string) uuid.UUID {
	id := uuid.New()
	f.users[id] = domain.User{ID: id, Username: username}
	return id
}

func (f *fakeStore) addCategory(name, slug string) domain.Category {
	c := domain.Category{ID: uuid.New(), Name: name, Slug: slug}
	f.categories[c.ID] = c
	return c
}

func (f *fakeStore) addListing(title string, price float64, active bool, categoryID *uuid.UUID) domain.Listing {
	l := domain.Listing{
		ID:         uuid.New(),
		Title:      title,
		BidCurrent: price,
		IsActive:   active,
		CategoryID: categoryID,
	}
	f.listings[l.ID] = l
	return l
}
