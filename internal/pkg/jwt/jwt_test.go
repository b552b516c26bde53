package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-ledger/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := NewJWTService(testSecret, "1h")
	employeeID := "E1"

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "alice", &employeeID, false)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	parsed, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), parsed, nil)
	identity, err := IdentityFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "alice", identity.Username)
	assert.False(t, identity.IsAdmin)
	require.NotNil(t, identity.EmployeeID)
	assert.Equal(t, "E1", *identity.EmployeeID)
}

func TestGenerateAccessToken_AdminWithoutEmployee(t *testing.T) {
	svc := NewJWTService(testSecret, "1h")

	token, _, err := svc.GenerateAccessToken("user-2", "admin", nil, true)
	require.NoError(t, err)

	parsed, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	identity, err := IdentityFromContext(jwtauth.NewContext(context.Background(), parsed, nil))
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin)
	assert.Nil(t, identity.EmployeeID)
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService(testSecret, "soon")

	_, _, err := svc.GenerateAccessToken("user-1", "alice", nil, false)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h")
	token, _, err := svc.GenerateAccessToken("user-1", "alice", nil, false)
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	svc.RevokeToken(token)
	assert.True(t, svc.IsTokenRevoked(token))
}

func TestIdentityFromContext_NoToken(t *testing.T) {
	_, err := IdentityFromContext(context.Background())
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
