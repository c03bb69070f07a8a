package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := CreateAccessToken("topsecret", "user-1", "Budi", "USER", "budi@example.com", time.Hour)
	require.NoError(t, err)

	c, err := ParseValidate("topsecret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", c.Sub)
	assert.Equal(t, "Budi", c.Name)
	assert.Equal(t, "USER", c.Role)
	assert.Equal(t, "budi@example.com", c.Email)
}

func TestParseValidateRejectsWrongSecret(t *testing.T) {
	token, err := CreateAccessToken("topsecret", "user-1", "Budi", "USER", "budi@example.com", time.Hour)
	require.NoError(t, err)

	_, err = ParseValidate("othersecret", token)
	assert.Error(t, err)
}

func TestParseValidateRejectsExpiredToken(t *testing.T) {
	token, err := CreateAccessToken("topsecret", "user-1", "Budi", "USER", "budi@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ParseValidate("topsecret", token)
	assert.Error(t, err)
}
