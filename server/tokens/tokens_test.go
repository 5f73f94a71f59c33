package tokens_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/restaurant-panel/server/tokens"
)

func setNow(t *testing.T, now time.Time) *time.Time {
	t.Helper()
	current := now
	tokens.NowTimeFunc = func() time.Time { return current }
	t.Cleanup(func() { tokens.NowTimeFunc = time.Now })
	return &current
}

func TestAccessTokenRoundTrip(t *testing.T) {
	issuer := tokens.NewAccessIssuer("secret", 15*time.Minute)

	raw, expiresIn, err := issuer.Issue("acct-1")
	require.NoError(t, err)
	require.Equal(t, 900, expiresIn)

	subject, err := issuer.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "acct-1", subject)
}

func TestAccessTokenRejected(t *testing.T) {
	now := setNow(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	issuer := tokens.NewAccessIssuer("secret", time.Minute)
	raw, _, err := issuer.Issue("acct-1")
	require.NoError(t, err)

	_, err = tokens.NewAccessIssuer("other", time.Minute).Verify(raw)
	require.Error(t, err)

	*now = now.Add(2 * time.Minute)
	_, err = issuer.Verify(raw)
	require.ErrorIs(t, err, jwtlib.ErrTokenExpired)

	_, err = issuer.Verify("not-a-jwt")
	require.Error(t, err)
}

func TestAccessTokenRejectsNoneAlgorithm(t *testing.T) {
	claims := jwtlib.MapClaims{"iss": "restaurant-panel", "sub": "acct-1", "exp": time.Now().Add(time.Hour).Unix()}
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tokens.NewAccessIssuer("secret", time.Minute).Verify(raw)
	require.Error(t, err)
}

func TestRefreshRotation(t *testing.T) {
	manager := tokens.NewRefreshManager(32, time.Hour)

	first, err := manager.Create("acct-1")
	require.NoError(t, err)
	require.Len(t, first, 64)

	account, second, err := manager.Rotate(first)
	require.NoError(t, err)
	require.Equal(t, "acct-1", account)
	require.NotEqual(t, first, second)

	_, _, err = manager.Rotate(first)
	require.ErrorIs(t, err, tokens.ErrUnknownRefreshToken)

	manager.Revoke(second)
	_, _, err = manager.Rotate(second)
	require.ErrorIs(t, err, tokens.ErrUnknownRefreshToken)
}

func TestRefreshOneLiveTokenPerAccount(t *testing.T) {
	manager := tokens.NewRefreshManager(16, time.Hour)
	first, err := manager.Create("acct-1")
	require.NoError(t, err)
	second, err := manager.Create("acct-1")
	require.NoError(t, err)

	_, _, err = manager.Rotate(first)
	require.ErrorIs(t, err, tokens.ErrUnknownRefreshToken)
	_, _, err = manager.Rotate(second)
	require.NoError(t, err)
}

func TestRefreshExpiry(t *testing.T) {
	now := setNow(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	manager := tokens.NewRefreshManager(16, time.Hour)
	token, err := manager.Create("acct-1")
	require.NoError(t, err)

	*now = now.Add(2 * time.Hour)
	_, _, err = manager.Rotate(token)
	require.ErrorIs(t, err, tokens.ErrRefreshTokenExpired)

	_, _, err = manager.Rotate(token)
	require.ErrorIs(t, err, tokens.ErrUnknownRefreshToken)
}
