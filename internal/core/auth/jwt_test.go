package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTer(ttl time.Duration) *JWTer {
	return &JWTer{
		Secret: []byte("test-secret"),
		Issuer: "sweetshop-test",
		TTL:    ttl,
	}
}

func TestJWTer_IssueAndParse(t *testing.T) {
	t.Parallel()

	j := newTestJWTer(time.Hour)
	tok, err := j.Issue("user-1", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UID)
	assert.Equal(t, "admin", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTer_Parse_WrongSecret(t *testing.T) {
	t.Parallel()

	j := newTestJWTer(time.Hour)
	tok, err := j.Issue("user-1", "customer")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other-secret"), Issuer: j.Issuer, TTL: j.TTL}
	_, err = other.Parse(tok)
	require.Error(t, err)
}

func TestJWTer_Parse_Expired(t *testing.T) {
	t.Parallel()

	// 过期超出 60s leeway
	j := newTestJWTer(-2 * time.Minute)
	tok, err := j.Issue("user-1", "customer")
	require.NoError(t, err)

	_, err = j.Parse(tok)
	require.Error(t, err)
}

func TestJWTer_Parse_Garbage(t *testing.T) {
	t.Parallel()

	j := newTestJWTer(time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := j.Parse(tok)
		assert.Error(t, err, "token %q should be rejected", tok)
	}
}

func TestJWTer_Parse_WrongIssuer(t *testing.T) {
	t.Parallel()

	j := newTestJWTer(time.Hour)
	other := &JWTer{Secret: j.Secret, Issuer: "someone-else", TTL: time.Hour}
	tok, err := other.Issue("user-1", "customer")
	require.NoError(t, err)

	_, err = j.Parse(tok)
	require.Error(t, err)
}
