package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/skatespot/skatespot-api/internal/core/domain"
)

// DefaultTokenTTL is applied when no TTL is configured.
const DefaultTokenTTL = 30 * time.Minute

// TokenService issues and validates HS256-signed bearer tokens. The signing
// secret is injected at construction and constant for the life of the
// service; rotating it invalidates every previously issued token.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a TokenService with the given secret and default
// TTL. A non-positive ttl falls back to DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the default time-to-live applied by Issue.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs the given claims with the default TTL.
func (s *TokenService) Issue(claims jwt.MapClaims) (string, error) {
	return s.IssueWithTTL(claims, s.ttl)
}

// IssueWithTTL signs a copy of claims with an exp claim of now+ttl (epoch
// seconds, UTC). The caller's map is not mutated.
func (s *TokenService) IssueWithTTL(claims jwt.MapClaims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}

	withExp := make(jwt.MapClaims, len(claims)+1)
	for k, v := range claims {
		withExp[k] = v
	}
	withExp["exp"] = time.Now().UTC().Add(ttl).Unix()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, withExp)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and returns all claims, including exp.
//
// Expiry is checked here rather than delegated to the library so the
// exp semantics stay pinned: a numeric exp in the past fails with
// ErrTokenExpired, a non-numeric exp fails with ErrInvalidToken, and a
// missing exp is accepted. Tokens signed with any algorithm other than
// HS256 fail with ErrInvalidToken regardless of content.
func (s *TokenService) Decode(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	exp, present := claims["exp"]
	if !present {
		// Degenerate but structurally valid: a token without expiration
		// never expires.
		return claims, nil
	}

	expiresAt, ok := numericClaim(exp)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token expiration", domain.ErrInvalidToken)
	}
	if time.Now().UTC().After(time.Unix(expiresAt, 0).UTC()) {
		return nil, domain.ErrTokenExpired
	}

	return claims, nil
}

// numericClaim coerces the JSON shapes an epoch-seconds claim can decode to.
func numericClaim(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}
