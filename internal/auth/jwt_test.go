package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	tok, err := CreateAccessToken(testSecret, "user-1", "admin", "owner@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := ParseValidate(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "owner@example.com", claims.Email)
}

func TestParseValidate_WrongSecret(t *testing.T) {
	tok, err := CreateAccessToken(testSecret, "user-1", "admin", "", time.Hour)
	require.NoError(t, err)

	_, err = ParseValidate("other-secret", tok)
	assert.Error(t, err)
}

func TestParseValidate_Expired(t *testing.T) {
	tok, err := CreateAccessToken(testSecret, "user-1", "admin", "", -time.Minute)
	require.NoError(t, err)

	_, err = ParseValidate(testSecret, tok)
	assert.Error(t, err)
}

func TestParseValidate_Garbage(t *testing.T) {
	_, err := ParseValidate(testSecret, "not-a-token")
	assert.Error(t, err)
}
