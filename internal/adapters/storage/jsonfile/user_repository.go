package jsonfile

import (
	"context"
	"fmt"
	"strings"

	"github.com/valutatrade/valutatrade_hub/internal/apperrors"
	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// UserRepository persists all user accounts as a single JSON array (users.json).
type UserRepository struct {
	path string
}

// NewUserRepository creates a repository writing to the given file path.
func NewUserRepository(path string) *UserRepository {
	return &UserRepository{path: path}
}

func (r *UserRepository) loadAll() []models.User {
	var users []models.User
	if !readDocument(r.path, &users) {
		return []models.User{}
	}
	return users
}

// FindUserByID retrieves a user by ID.
func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*models.User, error) {
	for _, u := range r.loadAll() {
		if u.UserID == userID {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
}

// FindUserByUsername retrieves a user by username.
func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.loadAll() {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: user %q", apperrors.ErrNotFound, username)
}

// SaveUser appends a new user. Usernames are unique case-insensitively.
func (r *UserRepository) SaveUser(ctx context.Context, user models.User) error {
	users := r.loadAll()

	for _, u := range users {
		if strings.EqualFold(u.Username, user.Username) {
			return fmt.Errorf("%w: username %q", apperrors.ErrDuplicate, user.Username)
		}
	}

	users = append(users, user)
	if err := writeDocumentAtomic(r.path, users); err != nil {
		return fmt.Errorf("failed to persist users: %w", err)
	}
	return nil
}
