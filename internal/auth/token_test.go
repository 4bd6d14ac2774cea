package auth

import (
	"testing"
	"time"

	"busbooking/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var secret = []byte("unit-test-secret")

func testUser() models.User {
	return models.User{
		ID:    42,
		Name:  "Ann",
		Email: "ann@example.com",
		Phone: "0812345678",
		Role:  models.RoleAdmin,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	raw, err := GenerateToken(secret, testUser())
	require.NoError(t, err)

	claims, err := ParseToken(secret, raw)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "Ann", claims.Name)
	require.Equal(t, "ann@example.com", claims.Email)
	require.Equal(t, "0812345678", claims.Phone)
	require.Equal(t, models.RoleAdmin, claims.Role)
	require.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestParseTokenExpired(t *testing.T) {
	claims := Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = ParseToken(secret, raw)
	require.Error(t, err)
}

func TestParseTokenWrongSecret(t *testing.T) {
	raw, err := GenerateToken(secret, testUser())
	require.NoError(t, err)

	_, err = ParseToken([]byte("a-different-secret"), raw)
	require.Error(t, err)
}

func TestParseTokenTampered(t *testing.T) {
	raw, err := GenerateToken(secret, testUser())
	require.NoError(t, err)

	_, err = ParseToken(secret, raw+"xx")
	require.Error(t, err)
}

func TestParseTokenRejectsUnsignedAlg(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 42})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(secret, raw)
	require.Error(t, err)
}
