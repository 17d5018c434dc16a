package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	issued, err := tm.GenerateToken("u1")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := tm.ParseToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID())
	assert.Equal(t, issued.ID, claims.ID)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	issued, err := NewTokenManager("secret", time.Hour).GenerateToken("u1")
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour).ParseToken(issued.Token)
	assert.Error(t, err)
}

func TestTokenExpires(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute)
	issued, err := tm.GenerateToken("u1")
	require.NoError(t, err)

	tm.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = tm.ParseToken(issued.Token)
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	token, err = BearerToken("bearer  xyz ")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	for _, bad := range []string{"", "Bearer", "Basic abc", "Bearer   "} {
		_, err := BearerToken(bad)
		assert.Error(t, err, bad)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1", 0)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "secret1"))
	assert.Error(t, ComparePassword(hash, "secret2"))
}

func TestPasswordLengthBounds(t *testing.T) {
	_, err := HashPassword("short", 0)
	assert.ErrorIs(t, err, ErrPasswordLength)

	long := make([]byte, MaxPasswordLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.ErrorIs(t, ValidatePassword(string(long)), ErrPasswordLength)
	assert.NoError(t, ValidatePassword(string(long[:MaxPasswordLength])))
}
