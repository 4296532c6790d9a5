package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "ops", []string{ScopeDiagnostics}, time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.True(t, claims.HasScope(ScopeDiagnostics))
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "ops", []string{ScopeDiagnostics}, time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken("another-secret-another-secret-xx", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken(testSecret, "ops", []string{ScopeDiagnostics}, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(testSecret, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenRejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Scopes: []string{ScopeDiagnostics}})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateToken(testSecret, signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRequireScope(t *testing.T) {
	token, err := GenerateToken(testSecret, "ops", []string{"other"}, time.Minute)
	require.NoError(t, err)

	_, err = RequireScope(testSecret, token, ScopeDiagnostics)
	assert.ErrorIs(t, err, ErrMissingScope)

	token, err = GenerateToken(testSecret, "ops", []string{ScopeDiagnostics}, time.Minute)
	require.NoError(t, err)

	claims, err := RequireScope(testSecret, token, ScopeDiagnostics)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
}
