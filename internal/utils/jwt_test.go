package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", 7, "GUEST", 15)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	uid, ok := UserIDFromBearer("secret", "Bearer "+tok.Token)
	assert.True(t, ok)
	assert.Equal(t, uint64(7), uid)
}

func TestUserIDFromBearerRejects(t *testing.T) {
	tok, err := NewAccessToken("secret", 7, "GUEST", 15)
	require.NoError(t, err)

	_, ok := UserIDFromBearer("other", "Bearer "+tok.Token)
	assert.False(t, ok, "wrong secret")

	_, ok = UserIDFromBearer("secret", tok.Token)
	assert.False(t, ok, "missing Bearer prefix")

	_, ok = UserIDFromBearer("secret", "")
	assert.False(t, ok, "empty header")
}

func TestRefreshTokenHashing(t *testing.T) {
	a, err := NewRefreshToken(7)
	require.NoError(t, err)
	b, err := NewRefreshToken(7)
	require.NoError(t, err)

	assert.Len(t, a.Raw, 96)
	assert.NotEqual(t, a.Raw, b.Raw)

	assert.Equal(t, HashRefreshRaw(a.Raw), HashRefreshRaw(a.Raw))
	assert.NotEqual(t, HashRefreshRaw(a.Raw), HashRefreshRaw(b.Raw))
	assert.Len(t, HashRefreshRaw(a.Raw), 64)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}
