package security

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"

	"github.com/skatespot/skatespot-api/internal/core/domain"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 12

// Hasher performs one-way password hashing and verification with bcrypt.
// The salt is generated per call and embedded in the digest, so hashing the
// same input twice yields different digests.
//
// bcrypt is deliberately CPU-expensive; a fixed-size semaphore bounds the
// number of concurrent hash/verify operations so a burst of logins cannot
// starve the scheduler.
type Hasher struct {
	cost int
	sem  chan struct{}
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{
		cost: cost,
		sem:  make(chan struct{}, runtime.GOMAXPROCS(0)),
	}
}

// Hash derives a salted digest from plain. An empty password is a caller bug
// and fails with ErrInvalidInput.
func (h *Hasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("%w: password cannot be empty", domain.ErrInvalidInput)
	}

	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plain hashes to digest. A digest that is not a
// recognizable bcrypt hash fails with ErrAuthentication rather than an
// internal error: callers must treat a corrupt stored hash exactly like a
// wrong password.
func (h *Hasher) Verify(plain, digest string) (bool, error) {
	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: incorrect password", domain.ErrAuthentication)
	}
}
