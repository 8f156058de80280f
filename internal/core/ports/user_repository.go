package ports

import (
	"context"
	"time"

	"github.com/skatespot/skatespot-api/internal/core/domain"
)

// ListUsersFilter carries the query parameters for listing users.
type ListUsersFilter struct {
	Role           domain.Role // optional: filter by role
	IncludeDeleted bool        // include soft-deleted accounts (admin views)
	Page           int         // 1-based
	Limit          int         // max rows per page (capped by the service)
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIdentifier resolves a username OR an email in a single lookup.
	// Both are unique, so at most one account matches.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateLastLogin records a successful authentication. Callers treat
	// failures as best-effort.
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	// List returns a page of users matching filter and the total count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}
