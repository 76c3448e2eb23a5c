package auth

import (
	"context"
	"time"

	"compras/pkg/logger"
)

// User is the account record the security service returns on a successful
// login. Credentials never touch this module; verification happens remotely.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	RoleID   string `json:"roleId"`
}

// Credentials for a login attempt.
type Credentials struct {
	Username string
	Password string
}

// Session is an issued access token with its expiry and owner.
type Session struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        *User     `json:"user"`
}

// Authenticator is the boundary to the platform security service.
type Authenticator interface {
	// Authenticate verifies credentials remotely. Returns an apperror
	// unauthorized error on bad credentials.
	Authenticate(ctx context.Context, username, password string) (*User, error)
}

// Service performs logins and issues local session tokens.
type Service struct {
	authenticator Authenticator
	jwt           *JWTService
}

// NewService creates a new auth service.
func NewService(authenticator Authenticator, jwt *JWTService) *Service {
	return &Service{
		authenticator: authenticator,
		jwt:           jwt,
	}
}

// Login verifies credentials against the security service and issues a local
// access token carrying the actor's identity.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	user, err := s.authenticator.Authenticate(ctx, creds.Username, creds.Password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(user.ID, user.Username, user.Role, user.RoleID)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user logged in",
		"actor_id", user.ID,
		"username", user.Username)

	return &Session{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}
