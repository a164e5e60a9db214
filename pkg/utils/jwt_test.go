package utils

import (
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateJWTToken(t *testing.T) {
	tokenString, err := CreateJWTToken("user-1", "Asha", "admin", "test-secret")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "user-1", claims["userID"])
	assert.Equal(t, "Asha", claims["name"])
	assert.Equal(t, "admin", claims["role"])
}

func TestPendingRegistrationTokenRoundTrip(t *testing.T) {
	token, err := CreatePendingRegistrationToken("Asha", "asha@example.com", "google", "test-secret")
	require.NoError(t, err)

	name, email, provider, err := ParsePendingRegistrationToken(token, "test-secret")

	require.NoError(t, err)
	assert.Equal(t, "Asha", name)
	assert.Equal(t, "asha@example.com", email)
	assert.Equal(t, "google", provider)
}

func TestParsePendingRegistrationToken_Failures(t *testing.T) {
	token, err := CreatePendingRegistrationToken("Asha", "asha@example.com", "google", "test-secret")
	require.NoError(t, err)

	_, _, _, err = ParsePendingRegistrationToken(token, "wrong-secret")
	assert.Error(t, err)

	_, _, _, err = ParsePendingRegistrationToken("garbage", "test-secret")
	assert.Error(t, err)

	// A normal session token must not pass as a registration claim.
	session, err := CreateJWTToken("user-1", "Asha", "user", "test-secret")
	require.NoError(t, err)
	_, _, _, err = ParsePendingRegistrationToken(session, "test-secret")
	assert.Error(t, err)
}
