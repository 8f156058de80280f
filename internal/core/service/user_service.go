package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/skatespot/skatespot-api/internal/core/domain"
	"github.com/skatespot/skatespot-api/internal/core/ports"
	"github.com/skatespot/skatespot-api/internal/core/security"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// UserService implements account management.
type UserService struct {
	users  ports.UserRepository
	hasher *security.Hasher
	log    zerolog.Logger
}

func NewUserService(users ports.UserRepository, hasher *security.Hasher, log zerolog.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, log: log}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, input ports.ListUsersInput) (*ports.UserPage, error) {
	page, limit := clampPage(input.Page, input.Limit)

	users, total, err := s.users.List(ctx, ports.ListUsersFilter{
		Role:           input.Role,
		IncludeDeleted: input.IncludeDeleted,
		Page:           page,
		Limit:          limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.UserPage{
		Items:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// Update applies a partial update. Privileged fields (role, active, verified)
// are only honored when admin is true; self-service callers cannot escalate.
func (s *UserService) Update(ctx context.Context, id int64, input ports.UpdateUserInput, admin bool) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != user.Username {
		if _, err := s.users.FindByUsername(ctx, *input.Username); err == nil {
			return nil, domain.ErrUserExists
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Username = *input.Username
	}
	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.users.FindByEmail(ctx, *input.Email); err == nil {
			return nil, domain.ErrEmailExists
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.ProfilePictureURL != nil {
		user.ProfilePictureURL = *input.ProfilePictureURL
	}

	if admin {
		if input.Role != nil {
			if !input.Role.Valid() {
				return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, *input.Role)
			}
			user.Role = *input.Role
		}
		if input.IsActive != nil {
			user.IsActive = *input.IsActive
		}
		if input.IsVerified != nil {
			user.IsVerified = *input.IsVerified
		}
	}

	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}

// ChangePassword verifies the old password before storing a hash of the new one.
func (s *UserService) ChangePassword(ctx context.Context, id int64, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(oldPassword, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: incorrect password", domain.ErrAuthentication)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()
	if _, err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info().Int64("user_id", id).Msg("password changed")
	return nil
}

// Delete soft-deletes the account by stamping deleted_at. The record stays in
// place so undelete can restore it.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user.DeletedAt = &now
	user.UpdatedAt = now
	if _, err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info().Int64("user_id", id).Msg("account soft-deleted")
	return nil
}

func (s *UserService) Undelete(ctx context.Context, id int64) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	user.DeletedAt = nil
	user.UpdatedAt = time.Now().UTC()
	_, err = s.users.Update(ctx, user)
	return err
}

func (s *UserService) Activate(ctx context.Context, id int64) error {
	return s.setActive(ctx, id, true)
}

func (s *UserService) Deactivate(ctx context.Context, id int64) error {
	return s.setActive(ctx, id, false)
}

func (s *UserService) setActive(ctx context.Context, id int64, active bool) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.IsActive == active {
		return nil
	}

	user.IsActive = active
	user.UpdatedAt = time.Now().UTC()
	_, err = s.users.Update(ctx, user)
	return err
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if total <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
