package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/config"
)

func newTestConfig(ttl time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	if ttl > 0 {
		cfg.Auth = &config.AuthConfig{AccessTokenTTL: ttl}
	}

	return cfg
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig(0))
	require.NoError(t, err)
	require.NotNil(t, tokenService)

	token, err := tokenService.Issue("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tokenService.Verify(token)
	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, "alice", claims.Username())
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestJWTService_ExpiredToken(t *testing.T) {
	// Issue with a TTL that is already in the past.
	tokenService, err := NewJWTService(newTestConfig(-time.Minute))
	require.NoError(t, err)

	token, err := tokenService.Issue("alice")
	require.NoError(t, err)

	claims, err := tokenService.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTService_TamperedToken(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig(0))
	require.NoError(t, err)

	token, err := tokenService.Issue("alice")
	require.NoError(t, err)

	// Flip one bit in the signature segment.
	tampered := []byte(token)
	tampered[len(tampered)-1] ^= 0x01

	claims, err := tokenService.Verify(string(tampered))
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ForeignSignature(t *testing.T) {
	issuer, err := NewJWTService(newTestConfig(0))
	require.NoError(t, err)

	otherCfg := &config.Config{}
	otherCfg.SecretKey.Access = "a_completely_different_secret_key_for_testing"
	verifier, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := issuer.Issue("alice")
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestJWTService_MalformedToken(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig(0))
	require.NoError(t, err)

	claims, err := tokenService.Verify("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := &config.Config{}

	tokenService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, tokenService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}
