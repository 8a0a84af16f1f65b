package services

import (
	"context"

	"github.com/valutatrade/valutatrade_hub/internal/dto"
	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// UserSvcFacade covers registration, authentication and identity lookup.
type UserSvcFacade interface {
	// Register creates a user and seeds their portfolio with the base wallet.
	// Returns apperrors.ErrDuplicate if the username is taken.
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)

	// Authenticate verifies the credentials and returns the user.
	// Returns apperrors.ErrUnauthorized on any credential mismatch.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)

	// GetUserByID resolves a user from their ID.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}
