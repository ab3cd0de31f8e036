package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-session-secret"

func TestGenerateAndParseToken(t *testing.T) {
	userID := uuid.New()

	tokenString, err := GenerateToken(testSecret, userID, "user@example.com", "user")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := ParseToken(testSecret, tokenString)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.NotEmpty(t, claims.ID)

	require.NotNil(t, claims.ExpiresAt)
	wantExpiry := time.Now().Add(TokenTTL)
	assert.WithinDuration(t, wantExpiry, claims.ExpiresAt.Time, time.Minute)
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	_, err := GenerateToken("", uuid.New(), "user@example.com", "user")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tokenString, err := GenerateToken(testSecret, uuid.New(), "user@example.com", "user")
	require.NoError(t, err)

	_, err = ParseToken("some-other-secret", tokenString)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	claims := Claims{
		UserID: uuid.New(),
		Email:  "user@example.com",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseToken(testSecret, signed)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "expired"))
}

func TestParseTokenRejectsWrongAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: uuid.New(),
		Email:  "user@example.com",
		Role:   "admin",
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, signed)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken(testSecret, "not-a-token")
	assert.Error(t, err)
}
