// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"quill/config"
	"quill/internal/domain/service"
)

const defaultAccessTTL = 30 * time.Minute

// Verification failure modes. Callers surface all of them as the same
// authentication failure, but keep them distinct for logging.
var (
	// ErrTokenExpired means the token was well-formed and signed by us, but past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenSignature means the signature did not match, i.e. the token was tampered with or foreign.
	ErrTokenSignature = errors.New("token signature invalid")
	// ErrTokenMalformed means the string was not a parseable token at all.
	ErrTokenMalformed = errors.New("token malformed")
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret    []byte        // Process-wide signing key, configuration-provided.
	accessTTL time.Duration // Time-to-live for issued tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := defaultAccessTTL
	if cfg.Auth != nil && cfg.Auth.AccessTokenTTL > 0 {
		ttl = cfg.Auth.AccessTokenTTL
	}

	return &jwtService{
		secret:    []byte(cfg.SecretKey.Access),
		accessTTL: ttl,
	}, nil
}

// Issue creates a signed credential binding the username with issued-at and expiry timestamps.
func (s *jwtService) Issue(username string) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// Verify checks signature integrity and expiry of a token string.
// It returns the claims only if both checks pass.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, classifyVerifyError(err)
	}
	if !token.Valid {
		return nil, ErrTokenSignature
	}

	return claims, nil
}

// classifyVerifyError maps jwt parse errors onto the service's failure modes
// while keeping the original error in the chain.
func classifyVerifyError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return errors.Join(ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return errors.Join(ErrTokenSignature, err)
	default:
		return errors.Join(ErrTokenMalformed, err)
	}
}
