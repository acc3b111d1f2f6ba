package handler

import (
	"errors"
	"net/http"

	"github.com/gobid/auctionhouse/internal/domain"
)

// AddComment appends a comment to a listing.
func (h *WebHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.mustIdentity(w, r)
	if !ok {
		return
	}

	listingID, err := parseListingID(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderDetailWithMessage(w, r, listingID, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	_, err = h.socialUseCase.AddComment(r.Context(), identity.UserID, listingID, r.PostFormValue("comment_content"))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.renderDetailWithMessage(w, r, listingID, http.StatusUnprocessableEntity, userMessage(err))
			return
		}
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/listing/"+listingID.String(), http.StatusSeeOther)
}

// AddWatchlist adds the listing to the caller's watchlist. Idempotent.
func (h *WebHandler) AddWatchlist(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.mustIdentity(w, r)
	if !ok {
		return
	}

	listingID, err := parseListingID(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if err := h.socialUseCase.AddToWatchlist(r.Context(), identity.UserID, listingID); err != nil {
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/listing/"+listingID.String(), http.StatusSeeOther)
}

// RemoveWatchlist removes the listing from the caller's watchlist. Idempotent.
func (h *WebHandler) RemoveWatchlist(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.mustIdentity(w, r)
	if !ok {
		return
	}

	listingID, err := parseListingID(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if err := h.socialUseCase.RemoveFromWatchlist(r.Context(), identity.UserID, listingID); err != nil {
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/listing/"+listingID.String(), http.StatusSeeOther)
}

// Watchlist shows the caller's watched listings.
func (h *WebHandler) Watchlist(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.mustIdentity(w, r)
	if !ok {
		return
	}

	listings, err := h.socialUseCase.Watchlist(r.Context(), identity.UserID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, "watchlist", viewData{
		Identity: identity,
		Listings: listings,
	})
}
