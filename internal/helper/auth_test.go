package helper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_TokenRoundTrip(t *testing.T) {
	auth := SetupAuth("secret")

	token, err := auth.GenerateToken(42, "ana@example.com")
	require.NoError(t, err)

	for _, header := range []string{token, "Bearer " + token, "bearer " + token} {
		claims, err := auth.VerifyToken(header)
		require.NoError(t, err)
		assert.Equal(t, 42, claims.UserID)
		assert.Equal(t, "ana@example.com", claims.Email)
		assert.InDelta(t, time.Now().Add(TokenTTL).Unix(), claims.Expiry, 5)
	}
}

func TestAuth_VerifyTokenErrors(t *testing.T) {
	auth := SetupAuth("secret")
	other, err := SetupAuth("other").GenerateToken(1, "a@b.c")
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"email":   "a@b.c",
		"iat":     time.Now().Add(-48 * time.Hour).Unix(),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	expiredStr, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1})
	noExpStr, err := noExp.SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", ErrMissingToken},
		{"bearer only", "Bearer ", ErrMissingToken},
		{"garbage", "Bearer not-a-jwt", ErrInvalidToken},
		{"wrong secret", "Bearer " + other, ErrInvalidToken},
		{"expired", "Bearer " + expiredStr, ErrInvalidToken},
		{"without expiry", noExpStr, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.VerifyToken(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuth_GenerateTokenRequiresInputs(t *testing.T) {
	_, err := SetupAuth("secret").GenerateToken(0, "a@b.c")
	assert.Error(t, err)
	_, err = SetupAuth("secret").GenerateToken(1, "")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	auth := SetupAuth("secret")
	hashed, err := HashPassword("s3cret!")
	require.NoError(t, err)

	assert.NoError(t, auth.VerifyPassword("s3cret!", hashed))
	assert.ErrorIs(t, auth.VerifyPassword("wrong", hashed), ErrInvalidCredentials)
}
