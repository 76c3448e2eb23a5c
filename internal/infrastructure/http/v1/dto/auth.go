package dto

import (
	"time"

	"compras/internal/domain/auth"
)

// LoginRequest for user login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts to domain credentials.
func (r *LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{
		Username: r.Username,
		Password: r.Password,
	}
}

// UserResponse represents the authenticated user in API responses.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName,omitempty"`
	Role     string `json:"role"`
	RoleID   string `json:"roleId,omitempty"`
}

// FromUser creates response from domain user.
func FromUser(u *auth.User) *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
		RoleID:   u.RoleID,
	}
}

// LoginResponse includes the session token and user info.
type LoginResponse struct {
	AccessToken string        `json:"accessToken"`
	ExpiresAt   time.Time     `json:"expiresAt"`
	TokenType   string        `json:"tokenType"`
	User        *UserResponse `json:"user"`
}

// FromSession creates response from a domain session.
func FromSession(s *auth.Session) *LoginResponse {
	return &LoginResponse{
		AccessToken: s.AccessToken,
		ExpiresAt:   s.ExpiresAt,
		TokenType:   "Bearer",
		User:        FromUser(s.User),
	}
}
