package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gobid/auctionhouse/internal/auth"
	"github.com/gobid/auctionhouse/internal/core/ports"
	"github.com/gobid/auctionhouse/internal/domain"
)

// authUseCase implements AuthUseCase.
type authUseCase struct {
	userStorage   ports.UserStorage
	sessionSecret string
	sessionTTL    time.Duration
	logger        *slog.Logger
}

// NewAuthUseCase creates a new AuthUseCase.
func NewAuthUseCase(userStorage ports.UserStorage, sessionSecret string, sessionTTL time.Duration, logger *slog.Logger) AuthUseCase {
	return &authUseCase{
		userStorage:   userStorage,
		sessionSecret: sessionSecret,
		sessionTTL:    sessionTTL,
		logger:        logger,
	}
}

func (uc *authUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	if input.Username == "" {
		return nil, "", fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if input.Password == "" {
		return nil, "", fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	if input.Password != input.Confirmation {
		return nil, "", fmt.Errorf("%w: passwords must match", domain.ErrValidation)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("usecase: hashing password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := uc.userStorage.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(user.ID, user.Username, uc.sessionSecret, uc.sessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("usecase: generating session token: %w", err)
	}

	uc.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

func (uc *authUseCase) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := uc.userStorage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrCredentials
		}
		return nil, "", err
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("usecase: verifying password: %w", err)
	}
	if !match {
		return nil, "", domain.ErrCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Username, uc.sessionSecret, uc.sessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("usecase: generating session token: %w", err)
	}

	uc.logger.Info("user logged in", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}
