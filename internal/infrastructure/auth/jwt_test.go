package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wholesale/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-at-least-32-characters!!",
		AccessTokenExpiration: expiration,
		Issuer:                "wholesale-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(time.Minute)
	retailerID := uuid.New()

	token, err := svc.GenerateToken("user-1", RoleRetailer, retailerID.String())
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, RoleRetailer, claims.Role)
	assert.False(t, claims.IsAdmin())

	parsed, err := claims.RetailerUUID()
	require.NoError(t, err)
	assert.Equal(t, retailerID, parsed)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, err := svc.GenerateToken("user-1", RoleAdmin, "")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := newTestService(time.Minute)
	verifier := NewJWTService(config.JWTConfig{
		Secret:                "a-completely-different-signing-secret",
		AccessTokenExpiration: time.Minute,
		Issuer:                "wholesale-test",
	})

	token, err := issuer.GenerateToken("user-1", RoleAdmin, "")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_UnknownRole(t *testing.T) {
	svc := newTestService(time.Minute)

	token, err := svc.GenerateToken("user-1", "superuser", "")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestAdminClaimsHaveNoRetailer(t *testing.T) {
	svc := newTestService(time.Minute)

	token, err := svc.GenerateToken("admin-1", RoleAdmin, "")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())

	id, err := claims.RetailerUUID()
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, id)
}
