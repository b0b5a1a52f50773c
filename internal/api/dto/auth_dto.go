package dto

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// LoginRequest payload for staff and diner login.
type LoginRequest struct {
	Name     string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// RefreshRequest payload for access token refresh.
type RefreshRequest struct {
	Refresh string `json:"refresh" form:"refresh" validate:"required"`
}

// AuthResponse carries the issued credential pair.
type AuthResponse struct {
	Access           string    `json:"access"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	Refresh          string    `json:"refresh,omitempty"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at,omitempty"`
}

// NewAuthResponse maps a token pair into the response shape.
func NewAuthResponse(pair domain.TokenPair) AuthResponse {
	return AuthResponse{
		Access:           pair.AccessToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		Refresh:          pair.RefreshToken,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}
}

// UserSummary is the identity summary returned by auth and account reads.
// It never includes the password hash.
type UserSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserSummary maps a user into the summary shape.
func NewUserSummary(user *domain.User) UserSummary {
	return UserSummary{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
