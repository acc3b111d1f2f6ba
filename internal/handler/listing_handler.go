package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gobid/auctionhouse/internal/domain"
	"github.com/gobid/auctionhouse/internal/usecase"
	"github.com/google/uuid"
)

// maxUploadBytes bounds the in-memory part of a listing image upload.
const maxUploadBytes = 10 << 20

// CreateForm shows the create-listing page.
func (h *WebHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.mustIdentity(w, r)
	if !ok {
		return
	}

	categories, err := h.listingUseCase.Categories(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, "create", viewData{
		Identity:   identity,
		Categories: categories,
	})
}

// CreateListing handles the create-listing form, optionally uploading an
// attached image file to the object store.
func (h *WebHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.mustIdentity(w, r)
	if !ok {
		return
	}

	var image *usecase.ImageUpload
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			h.renderCreateWithMessage(w, r, identity, "Invalid form submission.")
			return
		}
		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			image = &usecase.ImageUpload{
				Reader:      file,
				ContentType: header.Header.Get("Content-Type"),
			}
		}
	} else if err := r.ParseForm(); err != nil {
		h.renderCreateWithMessage(w, r, identity, "Invalid form submission.")
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		h.renderCreateWithMessage(w, r, identity, "Starting price must be a number.")
		return
	}

	categoryID, err := uuid.Parse(r.FormValue("category"))
	if err != nil {
		h.renderCreateWithMessage(w, r, identity, "Please pick a category.")
		return
	}

	input := usecase.CreateListingInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		ImageURL:    r.FormValue("image_url"),
		StartPrice:  price,
		CategoryID:  categoryID,
		IsActive:    r.FormValue("active") == "on",
		Image:       image,
	}

	listing, err := h.listingUseCase.CreateListing(r.Context(), identity.UserID, input)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.renderCreateWithMessage(w, r, identity, userMessage(err))
			return
		}
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/listing/"+listing.ID.String(), http.StatusSeeOther)
}

func (h *WebHandler) renderCreateWithMessage(w http.ResponseWriter, r *http.Request, identity *Identity, message string) {
	categories, err := h.listingUseCase.Categories(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.renderer.Render(w, http.StatusUnprocessableEntity, "create", viewData{
		Identity:   identity,
		Message:    message,
		Categories: categories,
		Form: map[string]string{
			"title":       r.FormValue("title"),
			"description": r.FormValue("description"),
			"image_url":   r.FormValue("image_url"),
			"price":       r.FormValue("price"),
		},
	})
}

// userMessage strips the sentinel prefix from a validation error for display.
func userMessage(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return strings.ToUpper(msg[idx+2:idx+3]) + msg[idx+3:] + "."
	}
	return msg
}
