package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims carried by issued tokens.
// The registered Subject claim holds the username.
type Claims struct {
	jwt.RegisteredClaims
}

// Username returns the subject the token was issued for.
func (c *Claims) Username() string {
	return c.Subject
}

// TokenService defines the interface for issuing and verifying bearer tokens.
// This abstracts the details of token creation from the use cases.
// Tokens are opaque signed strings; no revocation list is kept, so a token
// stays valid until its expiry even after a client-side logout.
type TokenService interface {
	// Issue creates a signed credential binding the username with an
	// issued-at and expiry timestamp.
	Issue(username string) (string, error)

	// Verify checks signature integrity and expiry, returning the claims
	// only if both pass. Expired, tampered and malformed tokens all fail;
	// the returned error distinguishes the cases for observability.
	Verify(tokenString string) (*Claims, error)
}
