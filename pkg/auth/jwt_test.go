package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("secret", time.Hour)
	token, err := m.GenerateToken("5d8a1e42-0000-4000-8000-000000000001", "sam", "sam@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "5d8a1e42-0000-4000-8000-000000000001", claims.UserID)
	require.Equal(t, "sam", claims.Username)
	require.Equal(t, "sam@example.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateTokenRejects(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("secret", time.Hour)

	otherKey, err := NewJWTManager("other", time.Hour).GenerateToken("user", "sam", "")
	require.NoError(t, err)

	expired, err := NewJWTManager("secret", -time.Minute).GenerateToken("user", "sam", "")
	require.NoError(t, err)

	noUser, err := m.GenerateToken("", "sam", "")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "user"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong key": otherKey,
		"expired":   expired,
		"no user":   noUser,
		"unsigned":  unsigned,
		"garbage":   "not-a-token",
	} {
		_, err := m.ValidateToken(token)
		require.ErrorIs(t, err, ErrInvalidToken, name)
	}
}
