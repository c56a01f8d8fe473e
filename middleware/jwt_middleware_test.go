package middleware

import (
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("user123", "admin@example.com", "superadmin", "", "")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := &JwtCustomClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)

	assert.Equal(t, "user123", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "superadmin", claims.Role)
	assert.Empty(t, claims.UniversityID)
	assert.Greater(t, claims.ExpiresAt, claims.IssuedAt)
}

func TestGenerateJWTCarriesEntityReferences(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("user456", "c@example.com", "consultant", "", "64f000000000000000000001")
	require.NoError(t, err)

	claims := &JwtCustomClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	assert.Equal(t, "consultant", claims.Role)
	assert.Equal(t, "64f000000000000000000001", claims.ConsultancyID)
}

func TestGenerateJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("user123", "a@example.com", "university", "64f000000000000000000002", "")
	require.NoError(t, err)

	claims := &JwtCustomClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	assert.Error(t, err)
}
