package repositories

import (
	"context"

	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by ID. Returns apperrors.ErrNotFound if absent.
	FindUserByID(ctx context.Context, userID string) (*models.User, error)

	// FindUserByUsername retrieves a user by username. Returns apperrors.ErrNotFound if absent.
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser appends a new user to the user document.
	// Returns apperrors.ErrDuplicate if the username is already taken.
	SaveUser(ctx context.Context, user models.User) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
