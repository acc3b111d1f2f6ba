package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gobid/auctionhouse/internal/domain"
	"github.com/gobid/auctionhouse/internal/usecase"
	"github.com/google/uuid"
)

// WebHandler serves the server-rendered marketplace pages.
type WebHandler struct {
	authUseCase    usecase.AuthUseCase
	listingUseCase usecase.ListingUseCase
	biddingUseCase usecase.BiddingUseCase
	socialUseCase  usecase.SocialUseCase
	renderer       *Renderer
	sessionTTL     time.Duration
	logger         *slog.Logger
}

// NewWebHandler creates a new WebHandler.
func NewWebHandler(
	authUseCase usecase.AuthUseCase,
	listingUseCase usecase.ListingUseCase,
	biddingUseCase usecase.BiddingUseCase,
	socialUseCase usecase.SocialUseCase,
	renderer *Renderer,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *WebHandler {
	return &WebHandler{
		authUseCase:    authUseCase,
		listingUseCase: listingUseCase,
		biddingUseCase: biddingUseCase,
		socialUseCase:  socialUseCase,
		renderer:       renderer,
		sessionTTL:     sessionTTL,
		logger:         logger,
	}
}

// Index lists active listings. A POST with a category field redirects to that
// category's page.
func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err == nil {
			if slug := r.PostFormValue("category"); slug != "" {
				http.Redirect(w, r, "/category/"+slug, http.StatusSeeOther)
				return
			}
		}
	}

	h.renderListings(w, r, "")
}

// CategoryListings lists active listings in one category resolved by slug.
func (h *WebHandler) CategoryListings(w http.ResponseWriter, r *http.Request) {
	h.renderListings(w, r, chi.URLParam(r, "slug"))
}

func (h *WebHandler) renderListings(w http.ResponseWriter, r *http.Request, slug string) {
	listings, category, err := h.listingUseCase.ListActive(r.Context(), slug)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	categories, err := h.listingUseCase.Categories(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	identity, _ := IdentityFromContext(r.Context())
	h.renderer.Render(w, http.StatusOK, "index", viewData{
		Identity:   identity,
		Categories: categories,
		Category:   category,
		Listings:   listings,
	})
}

// ListingDetail shows one listing with its comments, top bid and, for an
// authenticated viewer, the watchlist flag.
func (h *WebHandler) ListingDetail(w http.ResponseWriter, r *http.Request) {
	listingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, domain.ErrNotFound)
		return
	}

	identity, _ := IdentityFromContext(r.Context())
	var viewerID *uuid.UUID
	if identity != nil {
		viewerID = &identity.UserID
	}

	detail, err := h.listingUseCase.GetListingDetail(r.Context(), listingID, viewerID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, "listing", viewData{
		Identity: identity,
		Detail:   detail,
	})
}

// renderDetailWithMessage re-renders the listing page with an inline message,
// used when a form action on the page is rejected.
func (h *WebHandler) renderDetailWithMessage(w http.ResponseWriter, r *http.Request, listingID uuid.UUID, status int, message string) {
	identity, _ := IdentityFromContext(r.Context())
	var viewerID *uuid.UUID
	if identity != nil {
		viewerID = &identity.UserID
	}

	detail, err := h.listingUseCase.GetListingDetail(r.Context(), listingID, viewerID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.renderer.Render(w, status, "listing", viewData{
		Identity: identity,
		Message:  message,
		Detail:   detail,
	})
}

// renderError maps an error to the user-facing error page. Validation and
// conflict errors are handled closer to their forms; anything reaching here is
// either a missing resource or a server fault.
func (h *WebHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	identity, _ := IdentityFromContext(r.Context())

	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.renderer.Render(w, http.StatusNotFound, "error", viewData{
			Identity: identity,
			Message:  "Not found.",
		})
	case errors.Is(err, domain.ErrPermission):
		h.renderer.Render(w, http.StatusForbidden, "error", viewData{
			Identity: identity,
			Message:  "You are not allowed to do that.",
		})
	default:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		h.renderer.Render(w, http.StatusInternalServerError, "error", viewData{
			Identity: identity,
			Message:  "Something went wrong. Please try again.",
		})
	}
}

// mustIdentity returns the authenticated identity. Routes using it sit behind
// RequireAuth, so a miss is a programming error and renders as a 500.
func (h *WebHandler) mustIdentity(w http.ResponseWriter, r *http.Request) (*Identity, bool) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		h.logger.Error("authenticated route reached without identity", "path", r.URL.Path)
		h.renderError(w, r, errors.New("missing identity"))
		return nil, false
	}
	return identity, true
}

func parseListingID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "listingId"))
	if err != nil {
		return uuid.Nil, domain.ErrNotFound
	}
	return id, nil
}
