package handler

import (
	"errors"
	"net/http"

	"github.com/gobid/auctionhouse/internal/domain"
	"github.com/gobid/auctionhouse/internal/usecase"
)

// LoginForm shows the login page.
func (h *WebHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())
	h.renderer.Render(w, http.StatusOK, "login", viewData{Identity: identity})
}

// Login authenticates the submitted credentials and starts a session.
func (h *WebHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, http.StatusBadRequest, "login", viewData{Message: "Invalid form submission."})
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	_, token, err := h.authUseCase.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrCredentials) {
			h.renderer.Render(w, http.StatusUnauthorized, "login", viewData{
				Message: "Invalid username and/or password.",
				Form:    map[string]string{"username": username},
			})
			return
		}
		h.renderError(w, r, err)
		return
	}

	setSessionCookie(w, token, h.sessionTTL)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout ends the session unconditionally.
func (h *WebHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegisterForm shows the registration page.
func (h *WebHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())
	h.renderer.Render(w, http.StatusOK, "register", viewData{Identity: identity})
}

// Register creates an account and starts a session.
func (h *WebHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, http.StatusBadRequest, "register", viewData{Message: "Invalid form submission."})
		return
	}

	input := usecase.RegisterInput{
		Username:     r.PostFormValue("username"),
		Email:        r.PostFormValue("email"),
		Password:     r.PostFormValue("password"),
		Confirmation: r.PostFormValue("confirmation"),
	}

	_, token, err := h.authUseCase.Register(r.Context(), input)
	if err != nil {
		form := map[string]string{"username": input.Username, "email": input.Email}
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.renderer.Render(w, http.StatusUnprocessableEntity, "register", viewData{
				Message: "Passwords must match and username must not be empty.",
				Form:    form,
			})
		case errors.Is(err, domain.ErrConflict):
			h.renderer.Render(w, http.StatusConflict, "register", viewData{
				Message: "Username already taken.",
				Form:    form,
			})
		default:
			h.renderError(w, r, err)
		}
		return
	}

	setSessionCookie(w, token, h.sessionTTL)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
