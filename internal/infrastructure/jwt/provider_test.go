package jwtinfra

import (
	"testing"
	"time"

	"github.com/otp-auth-api/internal/config"
	"github.com/otp-auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(expiry time.Duration) *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpiry: expiry}
}

func ptr[T any](v T) *T { return &v }

func TestNewProvider_MissingSecret(t *testing.T) {
	_, err := NewProvider(&config.Config{})
	require.Error(t, err)
}

func TestSignVerify_RoundTripEmbedsRecord(t *testing.T) {
	p, err := NewProvider(testConfig(time.Hour))
	require.NoError(t, err)

	identity := &domain.Identity{
		IdentityID:  "i1",
		PhoneNumber: ptr("9876543210"),
		OTP:         4321,
		Status:      false,
	}
	token, err := p.Sign(identity)
	require.NoError(t, err)

	claims, err := p.Verify(token)
	require.NoError(t, err)
	require.NotNil(t, claims.User)
	assert.Equal(t, "i1", claims.User.IdentityID)
	assert.Equal(t, "9876543210", *claims.User.PhoneNumber)
	// The full record travels in the token, OTP included.
	assert.Equal(t, 4321, claims.User.OTP)
}

func TestVerify_WrongSecret(t *testing.T) {
	signer, err := NewProvider(testConfig(time.Hour))
	require.NoError(t, err)
	verifier, err := NewProvider(&config.Config{JWTSecret: "other-secret", JWTExpiry: time.Hour})
	require.NoError(t, err)

	token, err := signer.Sign(&domain.Identity{IdentityID: "i1"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestVerify_ExpiredToken(t *testing.T) {
	p, err := NewProvider(testConfig(-time.Hour))
	require.NoError(t, err)

	token, err := p.Sign(&domain.Identity{IdentityID: "i1"})
	require.NoError(t, err)

	_, err = p.Verify(token)
	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	p, err := NewProvider(testConfig(time.Hour))
	require.NoError(t, err)

	_, err = p.Verify("not-a-token")
	assert.Error(t, err)
}
