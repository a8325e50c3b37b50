package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT(ttl time.Duration) *JWTManager {
	return &JWTManager{
		Secret:   []byte("test-secret"),
		Issuer:   "devhub-api",
		Audience: "devhub-clients",
		TTL:      ttl,
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	m := newTestJWT(time.Hour)

	tok, exp, err := m.GenerateToken("user-1", "a@b.c", "User")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.Equal(t, "User", claims.Role)
	assert.Equal(t, "devhub-api", claims.Issuer)
}

func TestParseToken_Expired(t *testing.T) {
	m := newTestJWT(-time.Minute)

	tok, _, err := m.GenerateToken("user-1", "a@b.c", "User")
	require.NoError(t, err)

	_, err = m.ParseToken(tok)
	assert.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	m := newTestJWT(time.Hour)
	tok, _, err := m.GenerateToken("user-1", "a@b.c", "User")
	require.NoError(t, err)

	other := newTestJWT(time.Hour)
	other.Secret = []byte("different-secret")
	_, err = other.ParseToken(tok)
	assert.Error(t, err)
}

func TestParseToken_WrongIssuerOrAudience(t *testing.T) {
	m := newTestJWT(time.Hour)
	tok, _, err := m.GenerateToken("user-1", "a@b.c", "User")
	require.NoError(t, err)

	wrongIss := newTestJWT(time.Hour)
	wrongIss.Issuer = "someone-else"
	_, err = wrongIss.ParseToken(tok)
	assert.Error(t, err)

	wrongAud := newTestJWT(time.Hour)
	wrongAud.Audience = "other-clients"
	_, err = wrongAud.ParseToken(tok)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	m := newTestJWT(time.Hour)
	_, err := m.ParseToken("not.a.token")
	assert.Error(t, err)
}
