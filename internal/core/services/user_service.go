package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/valutatrade/valutatrade_hub/internal/apperrors"
	"github.com/valutatrade/valutatrade_hub/internal/core/ports/repositories"
	"github.com/valutatrade/valutatrade_hub/internal/dto"
	"github.com/valutatrade/valutatrade_hub/internal/models"
	"github.com/valutatrade/valutatrade_hub/internal/utils"
)

// UserService handles registration, authentication and identity lookup.
type UserService struct {
	userRepo      repositories.UserRepositoryFacade
	portfolioRepo repositories.PortfolioRepositoryFacade
}

// NewUserService creates a new UserService. The portfolio repository is
// needed because registration seeds the new user's base wallet.
func NewUserService(userRepo repositories.UserRepositoryFacade, portfolioRepo repositories.PortfolioRepositoryFacade) *UserService {
	return &UserService{userRepo: userRepo, portfolioRepo: portfolioRepo}
}

// Register creates a user and seeds their portfolio with the base wallet.
// The two writes are not transactional: a portfolio seed failure leaves the
// saved user without a portfolio.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	if req.Username == "" {
		return nil, fmt.Errorf("%w: username must not be empty", apperrors.ErrValidation)
	}
	if len(req.Password) < 4 {
		return nil, fmt.Errorf("%w: password must be at least 4 characters", apperrors.ErrValidation)
	}

	salt, err := utils.GenerateSecureRandomString(8)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := utils.HashPassword(req.Password + salt)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		UserID:           uuid.NewString(),
		Username:         req.Username,
		HashedPassword:   hash,
		Salt:             salt,
		RegistrationDate: time.Now().UTC(),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.portfolioRepo.SavePortfolio(ctx, models.NewPortfolio(user.UserID)); err != nil {
		return nil, fmt.Errorf("failed to seed portfolio for new user: %w", err)
	}

	return &user, nil
}

// Authenticate verifies the credentials and returns the user. Any mismatch,
// unknown username included, reports the same unauthorized error.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(password+user.Salt, user.HashedPassword) {
		return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}
	return user, nil
}

// GetUserByID resolves a user from their ID.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}
