package usecase

import (
	"context"

	"github.com/gobid/auctionhouse/internal/domain"
)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	Confirmation string
}

// AuthUseCase defines the authentication business logic. Both operations
// return the user together with a signed session token for the cookie.
type AuthUseCase interface {
	// Register creates a new account. Mismatched password confirmation is
	// domain.ErrValidation; a taken username is domain.ErrConflict.
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)

	// Login authenticates by username and password. A missing user and a wrong
	// password are indistinguishable to the caller: both are
	// domain.ErrCredentials.
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
}
