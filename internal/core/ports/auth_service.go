package ports

import (
	"context"

	"github.com/skatespot/skatespot-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account. Role is not
// accepted from callers: new accounts always start as RoleUser.
type RegisterInput struct {
	Username          string
	Email             string
	Password          string
	Bio               string
	ProfilePictureURL string
}

// LoginResult is returned after a successful credential check.
type LoginResult struct {
	Token     string
	TokenType string
	ExpiresIn int // seconds until the token expires
	User      *domain.User
}

// AuthService covers the full authentication pipeline: account creation,
// credential verification with token issuance, and bearer-token resolution
// back to a user.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Authenticate verifies identifier (username or email) + password and
	// returns the account on success. Inactive and soft-deleted accounts
	// fail the check even with the right password.
	Authenticate(ctx context.Context, identifier, password string) (*domain.User, error)
	// Login is Authenticate plus token issuance.
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	// Resolve decodes a bearer token and loads the user it names. No
	// account-state filtering happens here.
	Resolve(ctx context.Context, token string) (*domain.User, error)
	// ResolveActive is Resolve plus an active-account check.
	ResolveActive(ctx context.Context, token string) (*domain.User, error)
}
