package dto

import (
	"time"

	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// RegisterRequest defines the payload for creating a new user account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=1,max=64"`
	Password string `json:"password" binding:"required,min=4"`
}

// LoginRequest defines the payload for authenticating a user.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token issued on successful login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserResponse is the public projection of a user account.
type UserResponse struct {
	UserID           string    `json:"userID"`
	Username         string    `json:"username"`
	RegistrationDate time.Time `json:"registrationDate"`
}

// ToUserResponse converts a models.User to a UserResponse DTO.
func ToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		UserID:           user.UserID,
		Username:         user.Username,
		RegistrationDate: user.RegistrationDate,
	}
}
