package security

import (
	"fmt"

	"github.com/skatespot/skatespot-api/internal/core/domain"
)

// Require returns user unchanged when its role is among allowed, and fails
// with ErrAuthorization otherwise. Single-role and any-of checks both go
// through this one function so the policy cannot drift.
func Require(user *domain.User, allowed ...domain.Role) (*domain.User, error) {
	for _, role := range allowed {
		if user.Role == role {
			return user, nil
		}
	}
	return nil, fmt.Errorf("%w: role %q is not permitted", domain.ErrAuthorization, user.Role)
}
