package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenService() TokenService {
	return TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "gamehub-test",
		Duration: time.Hour,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	ts := testTokenService()
	u := &User{
		ID:           "user-1",
		Username:     "alice",
		Email:        "alice@example.com",
		TokenVersion: 3,
	}

	token, exp, err := ts.Sign(u)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ts.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, "gamehub-test", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	ts := testTokenService()
	token, _, err := ts.Sign(&User{ID: "user-1"})
	require.NoError(t, err)

	other := testTokenService()
	other.Secret = []byte("different-secret")
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	ts := testTokenService()
	token, _, err := ts.Sign(&User{ID: "user-1"})
	require.NoError(t, err)

	other := testTokenService()
	other.Issuer = "someone-else"
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Parallel()

	ts := testTokenService()
	_, err := ts.Parse("not.a.token")
	assert.Error(t, err)
}
