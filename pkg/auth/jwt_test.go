package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func newTestValidator(t *testing.T) *JWTValidator {
	t.Helper()
	validator, err := NewJWTValidator(JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     testSecret,
		Issuer:        "keepsake-test",
	})
	require.NoError(t, err)
	return validator
}

func newTestGenerator(t *testing.T, expiry time.Duration) *JWTGenerator {
	t.Helper()
	generator, err := NewJWTGenerator(JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     testSecret,
		Issuer:        "keepsake-test",
		ExpiryTime:    expiry,
	})
	require.NoError(t, err)
	return generator
}

func TestJWTValidator_ValidateToken_RoundTrip(t *testing.T) {
	generator := newTestGenerator(t, time.Hour)
	validator := newTestValidator(t)

	token, err := generator.GenerateToken("user-123", "user@example.com", []string{"admin"})
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, []string{"admin"}, claims.Roles)
}

func TestJWTValidator_ValidateToken_Missing(t *testing.T) {
	validator := newTestValidator(t)

	_, err := validator.ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestJWTValidator_ValidateToken_Expired(t *testing.T) {
	generator := newTestGenerator(t, -time.Hour)
	validator := newTestValidator(t)

	token, err := generator.GenerateToken("user-123", "", nil)
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)

	// Refresh needs the identity even when the token has lapsed
	require.NotNil(t, claims)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestJWTValidator_ValidateToken_WrongSecret(t *testing.T) {
	generator, err := NewJWTGenerator(JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     "a-different-secret-entirely",
		Issuer:        "keepsake-test",
		ExpiryTime:    time.Hour,
	})
	require.NoError(t, err)
	validator := newTestValidator(t)

	token, err := generator.GenerateToken("user-123", "", nil)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestJWTValidator_ValidateToken_WrongIssuer(t *testing.T) {
	generator, err := NewJWTGenerator(JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     testSecret,
		Issuer:        "somebody-else",
		ExpiryTime:    time.Hour,
	})
	require.NoError(t, err)
	validator := newTestValidator(t)

	token, err := generator.GenerateToken("user-123", "", nil)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTValidator_Config(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{SigningMethod: "RS256", SecretKey: testSecret})
	assert.Error(t, err)

	_, err = NewJWTValidator(JWTConfig{SigningMethod: "HS256"})
	assert.Error(t, err)
}

func TestUserContext_RoundTrip(t *testing.T) {
	ctx := context.Background()

	_, err := GetUserFromContext(ctx)
	assert.ErrorIs(t, err, ErrMissingToken)

	user := &UserContext{UserID: "user-123", Email: "user@example.com"}
	ctx = SetUserInContext(ctx, user)

	got, err := GetUserFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}
