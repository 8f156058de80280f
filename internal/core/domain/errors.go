package domain

import "errors"

// Failure kinds surfaced by the core. Sub-reasons are attached by wrapping
// with fmt.Errorf("%w: ...") so callers can branch with errors.Is while the
// boundary still renders a specific message.
var (
	// ErrInvalidInput marks structurally invalid caller input (400).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidToken marks a token that cannot be parsed, whose signature
	// does not verify, or whose required claims are malformed (401).
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired marks a token that parsed and verified but whose exp
	// claim is in the past (401).
	ErrTokenExpired = errors.New("token has expired")

	// ErrAuthentication marks a failed credential check: unknown identifier,
	// inactive or deleted account, or wrong password (401).
	ErrAuthentication = errors.New("authentication failed")

	// ErrAuthorization marks an authenticated user lacking the required role
	// or account state (403).
	ErrAuthorization = errors.New("insufficient permissions")
)

// Resource errors (404 / 409).
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("username already exists")
	ErrEmailExists     = errors.New("email already exists")
	ErrParkNotFound    = errors.New("park not found")
	ErrFeatureNotFound = errors.New("feature not found")
	ErrFeatureExists   = errors.New("feature already exists")
)
