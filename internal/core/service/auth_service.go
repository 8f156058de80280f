package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/skatespot/skatespot-api/internal/api/metrics"
	"github.com/skatespot/skatespot-api/internal/core/domain"
	"github.com/skatespot/skatespot-api/internal/core/ports"
	"github.com/skatespot/skatespot-api/internal/core/security"
)

// AuthService implements registration, credential authentication, token
// issuance, and bearer-token resolution.
type AuthService struct {
	users  ports.UserRepository
	hasher *security.Hasher
	tokens *security.TokenService
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher *security.Hasher, tokens *security.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a new account with role "user". Username and email must
// both be unused.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: username and email are required", domain.ErrInvalidInput)
	}

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:          input.Username,
		Email:             input.Email,
		PasswordHash:      hash,
		Role:              domain.RoleUser,
		IsActive:          true,
		Bio:               input.Bio,
		ProfilePictureURL: input.ProfilePictureURL,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("account registered")
	return created, nil
}

// Authenticate verifies credentials against the stored account, failing fast
// on the first violated check: unknown identifier, inactive account, deleted
// account, then wrong password. Each failure carries its own message but all
// are ErrAuthentication. On success the last-login timestamp is updated
// best-effort.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, fmt.Errorf("%w: invalid username or password", domain.ErrAuthentication)
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if !user.IsActive {
		metrics.LoginsTotal.WithLabelValues("inactive").Inc()
		return nil, fmt.Errorf("%w: account is inactive", domain.ErrAuthentication)
	}
	if user.IsDeleted() {
		metrics.LoginsTotal.WithLabelValues("deleted").Inc()
		return nil, fmt.Errorf("%w: account has been deleted", domain.ErrAuthentication)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, err
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, fmt.Errorf("%w: invalid username or password", domain.ErrAuthentication)
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Best-effort: a failed timestamp write never fails the login.
		s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to update last login")
	} else {
		user.LastLoginAt = &now
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return user, nil
}

// Login authenticates and issues a signed token whose subject is the user id.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.LoginResult, error) {
	user, err := s.Authenticate(ctx, identifier, password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"email":    user.Email,
		"role":     string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("login")
	return &ports.LoginResult{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: int(s.tokens.TTL().Seconds()),
		User:      user,
	}, nil
}

// Resolve decodes a bearer token, normalizes its subject to a user id, and
// loads the account. Account-state checks are deliberately left to
// ResolveActive and the role gate.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Decode(token)
	if err != nil {
		reason := "invalid"
		if errors.Is(err, domain.ErrTokenExpired) {
			reason = "expired"
		}
		metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
		return nil, err
	}

	sub, present := claims["sub"]
	if !present {
		metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: missing subject", domain.ErrInvalidToken)
	}

	id, ok := security.NormalizeSubject(sub)
	if !ok {
		// A subject no repository key can match: same outcome as a lookup
		// for a nonexistent id.
		return nil, domain.ErrUserNotFound
	}

	return s.users.FindByID(ctx, id)
}

// ResolveActive is Resolve plus an active-account check.
func (s *AuthService) ResolveActive(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: inactive user", domain.ErrAuthorization)
	}
	return user, nil
}
