package ports

import (
	"context"

	"github.com/skatespot/skatespot-api/internal/core/domain"
)

// UpdateUserInput carries a partial user update; nil fields are left
// untouched. Role, IsActive and IsVerified are only honored on the admin
// paths — the service ignores them for self-service updates.
type UpdateUserInput struct {
	Username          *string
	Email             *string
	Bio               *string
	ProfilePictureURL *string
	Role              *domain.Role
	IsActive          *bool
	IsVerified        *bool
}

// ListUsersInput carries the parameters for the user list endpoint.
type ListUsersInput struct {
	Role           domain.Role
	IncludeDeleted bool
	Page           int
	Limit          int
}

// UserPage is one page of the user list.
type UserPage struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService defines account management use cases.
type UserService interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, input ListUsersInput) (*UserPage, error)
	// Update applies a partial update. admin selects whether the privileged
	// fields (role, active, verified) are honored.
	Update(ctx context.Context, id int64, input UpdateUserInput, admin bool) (*domain.User, error)
	ChangePassword(ctx context.Context, id int64, oldPassword, newPassword string) error
	// Delete soft-deletes the account; Undelete restores it.
	Delete(ctx context.Context, id int64) error
	Undelete(ctx context.Context, id int64) error
	Activate(ctx context.Context, id int64) error
	Deactivate(ctx context.Context, id int64) error
}
