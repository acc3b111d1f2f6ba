package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gobid/auctionhouse/internal/auth"
	"github.com/gobid/auctionhouse/internal/domain"
	"github.com/gobid/auctionhouse/internal/usecase"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

// fakeAuth implements usecase.AuthUseCase with overridable functions.
type fakeAuth struct {
	registerFn func(ctx context.Context, input usecase.RegisterInput) (*domain.User, string, error)
	loginFn    func(ctx context.Context, username, password string) (*domain.User, string, error)
}

func (f *fakeAuth) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, string, error) {
	return f.registerFn(ctx, input)
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	return f.loginFn(ctx, username, password)
}

// fakeListings implements usecase.ListingUseCase.
type fakeListings struct {
	listings   []domain.Listing
	categories []domain.Category
	detail     *usecase.ListingDetail
	detailErr  error
}

func (f *fakeListings) ListActive(_ context.Context, slug string) ([]domain.Listing, *domain.Category, error) {
	if slug == "" {
		return f.listings, nil, nil
	}
	for i := range f.categories {
		if f.categories[i].Slug == slug {
			return f.listings, &f.categories[i], nil
		}
	}
	return nil, nil, domain.ErrNotFound
}

func (f *fakeListings) Categories(context.Context) ([]domain.Category, error) {
	return f.categories, nil
}

func (f *fakeListings) CreateListing(_ context.Context, sellerID uuid.UUID, input usecase.CreateListingInput) (*domain.Listing, error) {
	if input.Title == "" {
		return nil, domain.ErrValidation
	}
	return &domain.Listing{ID: uuid.New(), Title: input.Title, SellerID: &sellerID}, nil
}

func (f *fakeListings) GetListingDetail(context.Context, uuid.UUID, *uuid.UUID) (*usecase.ListingDetail, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.detail, nil
}

// fakeBidding implements usecase.BiddingUseCase.
type fakeBidding struct {
	placeBidErr error
	closeErr    error
	winning     *domain.Bid
}

func (f *fakeBidding) PlaceBid(_ context.Context, bidderID, listingID uuid.UUID, amount float64) (*domain.Bid, error) {
	if f.placeBidErr != nil {
		return nil, f.placeBidErr
	}
	return &domain.Bid{ID: uuid.New(), ListingID: listingID, BidderID: bidderID, Amount: amount}, nil
}

func (f *fakeBidding) CloseAuction(context.Context, uuid.UUID, uuid.UUID) (*domain.Bid, error) {
	if f.closeErr != nil {
		return nil, f.closeErr
	}
	return f.winning, nil
}

// fakeSocial implements usecase.SocialUseCase.
type fakeSocial struct {
	comments []domain.Comment
	watched  []domain.Listing
}

func (f *fakeSocial) AddComment(_ context.Context, authorID, listingID uuid.UUID, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrValidation
	}
	c := domain.Comment{ID: uuid.New(), ListingID: listingID, AuthorID: authorID, Content: content}
	f.comments = append(f.comments, c)
	return &c, nil
}

func (f *fakeSocial) AddToWatchlist(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (f *fakeSocial) RemoveFromWatchlist(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (f *fakeSocial) Watchlist(context.Context, uuid.UUID) ([]domain.Listing, error) {
	return f.watched, nil
}

type testEnv struct {
	auth     *fakeAuth
	listings *fakeListings
	bidding  *fakeBidding
	social   *fakeSocial
	router   chi.Router
}

// newTestEnv wires a WebHandler onto the same routes the server uses.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	renderer, err := NewRenderer(logger)
	require.NoError(t, err)

	env := &testEnv{
		auth:     &fakeAuth{},
		listings: &fakeListings{},
		bidding:  &fakeBidding{},
		social:   &fakeSocial{},
	}
	h := NewWebHandler(env.auth, env.listings, env.bidding, env.social, renderer, time.Hour, logger)

	r := chi.NewRouter()
	r.Use(WithIdentity(testSecret))

	r.Get("/", h.Index)
	r.Post("/", h.Index)
	r.Get("/listing/{id}", h.ListingDetail)
	r.Get("/category/{slug}", h.CategoryListings)
	r.Get("/login", h.LoginForm)
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)
	r.Post("/register", h.Register)

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth)
		r.Get("/create", h.CreateForm)
		r.Post("/create", h.CreateListing)
		r.Get("/add_watchlist/{listingId}", h.AddWatchlist)
		r.Get("/remove_watchlist/{listingId}", h.RemoveWatchlist)
		r.Get("/watchlist", h.Watchlist)
		r.Post("/add_comment/{listingId}", h.AddComment)
		r.Post("/add_bid/{listingId}", h.AddBid)
		r.Get("/close_auction/{listingId}", h.CloseAuction)
	})

	env.router = r
	return env
}

func sessionCookie(t *testing.T, userID uuid.UUID, username string) *http.Cookie {
	t.Helper()
	token, err := auth.GenerateToken(userID, username, testSecret, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookieName, Value: token}
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func detailFor(listing domain.Listing) *usecase.ListingDetail {
	return &usecase.ListingDetail{Listing: listing}
}

func TestIndexPage(t *testing.T) {
	env := newTestEnv(t)
	env.listings.listings = []domain.Listing{
		{ID: uuid.New(), Title: "Brass lamp", BidCurrent: 10, IsActive: true},
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Brass lamp")
}

func TestIndexCategoryRedirect(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, postForm("/", url.Values{"category": {"toys"}}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/category/toys", rec.Header().Get("Location"))
}

func TestCategoryListings(t *testing.T) {
	env := newTestEnv(t)
	env.listings.categories = []domain.Category{{ID: uuid.New(), Name: "Toys", Slug: "toys"}}

	t.Run("known slug", func(t *testing.T) {
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/category/toys", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Toys")
	})

	t.Run("unknown slug is a 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/category/nope", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListingDetailPage(t *testing.T) {
	env := newTestEnv(t)
	listing := domain.Listing{ID: uuid.New(), Title: "Brass lamp", BidCurrent: 10, IsActive: true}
	env.listings.detail = detailFor(listing)

	t.Run("renders the listing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listing/"+listing.ID.String(), nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Brass lamp")
	})

	t.Run("malformed id is a 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listing/not-a-uuid", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Run("success sets the session cookie and redirects home", func(t *testing.T) {
		env := newTestEnv(t)
		userID := uuid.New()
		env.auth.loginFn = func(_ context.Context, username, password string) (*domain.User, string, error) {
			token, err := auth.GenerateToken(userID, username, testSecret, time.Hour)
			return &domain.User{ID: userID, Username: username}, token, err
		}

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, postForm("/login", url.Values{
			"username": {"alice"},
			"password": {"opensesame"},
		}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, SessionCookieName, cookies[0].Name)
		assert.NotEmpty(t, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("bad credentials re-render the form with a message", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.loginFn = func(context.Context, string, string) (*domain.User, string, error) {
			return nil, "", domain.ErrCredentials
		}

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, postForm("/login", url.Values{
			"username": {"alice"},
			"password": {"wrong"},
		}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid username and/or password.")
		assert.Empty(t, rec.Result().Cookies(), "a failed login must not set a session")
	})
}

func TestLogoutClearsSession(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(sessionCookie(t, uuid.New(), "alice"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestRegister(t *testing.T) {
	t.Run("duplicate username is a 409", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.registerFn = func(context.Context, usecase.RegisterInput) (*domain.User, string, error) {
			return nil, "", domain.ErrConflict
		}

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, postForm("/register", url.Values{
			"username":     {"alice"},
			"password":     {"x"},
			"confirmation": {"x"},
		}))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "Username already taken.")
	})

	t.Run("mismatched passwords are a 422", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.registerFn = func(context.Context, usecase.RegisterInput) (*domain.User, string, error) {
			return nil, "", domain.ErrValidation
		}

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, postForm("/register", url.Values{
			"username":     {"alice"},
			"password":     {"a"},
			"confirmation": {"b"},
		}))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestRequireAuthRedirects(t *testing.T) {
	env := newTestEnv(t)

	protected := []string{"/create", "/watchlist", "/close_auction/" + uuid.NewString()}
	for _, path := range protected {
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}

func TestAddBid(t *testing.T) {
	listing := domain.Listing{ID: uuid.New(), Title: "Brass lamp", BidCurrent: 10, IsActive: true}
	bidder := uuid.New()

	t.Run("accepted bid confirms inline", func(t *testing.T) {
		env := newTestEnv(t)
		env.listings.detail = detailFor(listing)

		req := postForm("/add_bid/"+listing.ID.String(), url.Values{"bid_amount": {"12.00"}})
		req.AddCookie(sessionCookie(t, bidder, "alice"))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Your bid of 12.00 was placed.")
	})

	t.Run("too-low bid is rejected with an explicit message", func(t *testing.T) {
		env := newTestEnv(t)
		env.listings.detail = detailFor(listing)
		env.bidding.placeBidErr = domain.ErrBidTooLow

		req := postForm("/add_bid/"+listing.ID.String(), url.Values{"bid_amount": {"9.00"}})
		req.AddCookie(sessionCookie(t, bidder, "alice"))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "it must exceed the current price")
	})

	t.Run("closed auction is a conflict", func(t *testing.T) {
		env := newTestEnv(t)
		env.listings.detail = detailFor(listing)
		env.bidding.placeBidErr = domain.ErrAuctionClosed

		req := postForm("/add_bid/"+listing.ID.String(), url.Values{"bid_amount": {"20.00"}})
		req.AddCookie(sessionCookie(t, bidder, "alice"))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("non-numeric amount never reaches the use case", func(t *testing.T) {
		env := newTestEnv(t)
		env.listings.detail = detailFor(listing)

		req := postForm("/add_bid/"+listing.ID.String(), url.Values{"bid_amount": {"a lot"}})
		req.AddCookie(sessionCookie(t, bidder, "alice"))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Bid amount must be a number.")
	})
}

func TestCloseAuction(t *testing.T) {
	listing := domain.Listing{ID: uuid.New(), Title: "Brass lamp", BidCurrent: 12, IsActive: false}
	caller := uuid.New()

	t.Run("announces the winning bid", func(t *testing.T) {
		env := newTestEnv(t)
		env.listings.detail = detailFor(listing)
		env.bidding.winning = &domain.Bid{ID: uuid.New(), ListingID: listing.ID, Amount: 12}

		req := httptest.NewRequest(http.MethodGet, "/close_auction/"+listing.ID.String(), nil)
		req.AddCookie(sessionCookie(t, caller, "alice"))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Auction closed. Winning bid: 12.00.")
	})

	t.Run("non-bidders are forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		env.listings.detail = detailFor(listing)
		env.bidding.closeErr = domain.ErrPermission

		req := httptest.NewRequest(http.MethodGet, "/close_auction/"+listing.ID.String(), nil)
		req.AddCookie(sessionCookie(t, caller, "carol"))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestAddComment(t *testing.T) {
	listing := domain.Listing{ID: uuid.New(), Title: "Brass lamp", BidCurrent: 10, IsActive: true}
	author := uuid.New()

	t.Run("valid comment redirects back to the listing", func(t *testing.T) {
		env := newTestEnv(t)
		env.listings.detail = detailFor(listing)

		req := postForm("/add_comment/"+listing.ID.String(), url.Values{"comment_content": {"lovely"}})
		req.AddCookie(sessionCookie(t, author, "alice"))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/listing/"+listing.ID.String(), rec.Header().Get("Location"))
		require.Len(t, env.social.comments, 1)
		assert.Equal(t, "lovely", env.social.comments[0].Content)
	})

	t.Run("empty comment is a 422", func(t *testing.T) {
		env := newTestEnv(t)
		env.listings.detail = detailFor(listing)

		req := postForm("/add_comment/"+listing.ID.String(), url.Values{"comment_content": {"   "}})
		req.AddCookie(sessionCookie(t, author, "alice"))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Empty(t, env.social.comments)
	})
}

func TestWatchlistPage(t *testing.T) {
	env := newTestEnv(t)
	env.social.watched = []domain.Listing{
		{ID: uuid.New(), Title: "Brass lamp", BidCurrent: 10, IsActive: true},
	}

	req := httptest.NewRequest(http.MethodGet, "/watchlist", nil)
	req.AddCookie(sessionCookie(t, uuid.New(), "alice"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Brass lamp")
}
