package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_AccessTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Minute)

	token, err := m.GenerateAccessToken("u-1", "a@b.c", "instructor")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "instructor", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret", time.Minute).GenerateAccessToken("u-1", "", "")
	require.NoError(t, err)

	_, err = NewManager("other", time.Minute).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	m := NewManager("secret", time.Minute)
	claims := Claims{
		UserID: "u-1",
		Type:   TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsRefreshTokenAsAccess(t *testing.T) {
	m := NewManager("secret", time.Minute)
	claims := Claims{UserID: "u-1", Type: TokenTypeRefresh}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.ErrorContains(t, err, "invalid token type")
}
