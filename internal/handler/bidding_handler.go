package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gobid/auctionhouse/internal/domain"
)

// AddBid places a bid on a listing. Rejections are surfaced as an inline
// message on the listing page, never a silent redirect.
func (h *WebHandler) AddBid(w http.ResponseWriter, r *http.Request) {
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

	amount, err := strconv.ParseFloat(r.PostFormValue("bid_amount"), 64)
	if err != nil {
		h.renderDetailWithMessage(w, r, listingID, http.StatusUnprocessableEntity, "Bid amount must be a number.")
		return
	}

	bid, err := h.biddingUseCase.PlaceBid(r.Context(), identity.UserID, listingID, amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBidTooLow):
			h.renderDetailWithMessage(w, r, listingID, http.StatusUnprocessableEntity,
				"Your bid was not placed: it must exceed the current price.")
		case errors.Is(err, domain.ErrValidation):
			h.renderDetailWithMessage(w, r, listingID, http.StatusUnprocessableEntity,
				"Your bid was not placed: the amount must be a positive number.")
		case errors.Is(err, domain.ErrAuctionClosed):
			h.renderDetailWithMessage(w, r, listingID, http.StatusConflict,
				"This auction is closed; no further bids are accepted.")
		default:
			h.renderError(w, r, err)
		}
		return
	}

	h.renderDetailWithMessage(w, r, listingID, http.StatusOK,
		fmt.Sprintf("Your bid of %.2f was placed.", bid.Amount))
}

// CloseAuction irreversibly closes a listing and announces the winning bid.
func (h *WebHandler) CloseAuction(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.mustIdentity(w, r)
	if !ok {
		return
	}

	listingID, err := parseListingID(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	winning, err := h.biddingUseCase.CloseAuction(r.Context(), identity.UserID, listingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAuctionClosed):
			h.renderDetailWithMessage(w, r, listingID, http.StatusConflict, "This auction is already closed.")
		case errors.Is(err, domain.ErrValidation):
			h.renderDetailWithMessage(w, r, listingID, http.StatusUnprocessableEntity,
				"The auction cannot be closed without a winning bid.")
		default:
			h.renderError(w, r, err)
		}
		return
	}

	h.renderDetailWithMessage(w, r, listingID, http.StatusOK,
		fmt.Sprintf("Auction closed. Winning bid: %.2f.", winning.Amount))
}
