package auth

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(now time.Time) *TokenService {
	s := NewTokenService("test-secret")
	s.now = func() time.Time { return now }
	return s
}

func TestTokenService_RoundTrip(t *testing.T) {
	issuedAt := time.Unix(1_700_000_000, 0)
	svc := newTestTokenService(issuedAt)

	identities := []Identity{
		{UserID: 1, Email: "ana@x.com", Role: "aluno"},
		{UserID: 12, Email: "admin@murim.com", Role: "admin"},
		{UserID: 100, Email: "", Role: ""},
	}
	for _, id := range identities {
		token, err := svc.Issue(id, time.Hour)
		require.NoError(t, err)

		claims, ok := svc.Verify(token)
		require.True(t, ok, "token for %+v should verify", id)
		assert.Equal(t, id, claims.Identity())
		assert.True(t, issuedAt.Equal(claims.IssuedAt.Time))
		assert.True(t, issuedAt.Add(time.Hour).Equal(claims.ExpiresAt.Time))
		assert.Equal(t, strconv.FormatInt(id.UserID, 10), claims.Subject)
	}
}

func TestTokenService_Expiry(t *testing.T) {
	issuedAt := time.Unix(1_700_000_000, 0)
	svc := newTestTokenService(issuedAt)

	token, err := svc.Issue(Identity{UserID: 1, Role: "aluno"}, time.Second)
	require.NoError(t, err)

	_, ok := svc.Verify(token)
	require.True(t, ok)

	svc.now = func() time.Time { return issuedAt.Add(time.Second) }
	_, ok = svc.Verify(token)
	assert.False(t, ok, "token must be invalid once its lifetime has elapsed")

	svc.now = func() time.Time { return issuedAt.Add(time.Minute) }
	_, ok = svc.Verify(token)
	assert.False(t, ok)
}

func TestTokenService_Tamper(t *testing.T) {
	svc := newTestTokenService(time.Unix(1_700_000_000, 0))
	token, err := svc.Issue(Identity{UserID: 3, Email: "a@b.c", Role: "aluno"}, time.Hour)
	require.NoError(t, err)

	for i := range token {
		tampered := []byte(token)
		tampered[i] ^= 0x01
		_, ok := svc.Verify(string(tampered))
		assert.False(t, ok, "byte %d flipped should invalidate the token", i)
	}
}

func TestTokenService_RejectsForeignTokens(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	svc := newTestTokenService(now)

	other := newTestTokenService(now)
	other.secret = []byte("another-secret")
	foreign, err := other.Issue(Identity{UserID: 1, Role: "admin"}, time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": 1,
		"role":    "admin",
		"exp":     now.Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"role":    "admin",
	}).SignedString(svc.secret)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":     "",
		"garbage":   "not-a-token",
		"two parts": "abc.def",
		"wrong key": foreign,
		"alg none":  none,
		"no exp":    noExpiry,
	} {
		_, ok := svc.Verify(token)
		assert.False(t, ok, name)
	}
}

func TestTokenService_IssueWithoutSecret(t *testing.T) {
	svc := NewTokenService("")
	_, err := svc.Issue(Identity{UserID: 1}, time.Hour)
	assert.Error(t, err)
}
