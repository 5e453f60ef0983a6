package service

import (
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTokenService(accessTTL, refreshTTL time.Duration) TokenService {
	return NewTokenService([]byte("test-secret"), accessTTL, refreshTTL, zap.NewNop())
}

func TestIssueAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService(time.Minute, time.Hour)
	user := &models.User{ID: 42, Username: "user1", Role: models.RoleUser}

	tok, err := ts.IssueAccessToken(user, true)
	require.NoError(t, err)

	claims, err := ts.Verify(tok)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.True(t, claims.Fresh)
	assert.False(t, claims.IsAdmin)
	assert.Equal(t, models.TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestIssueAccessToken_AdminSnapshot(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService(time.Minute, time.Hour)
	admin := &models.User{ID: 7, Username: "boss", Role: models.RoleAdmin}

	tok, err := ts.IssueAccessToken(admin, true)
	require.NoError(t, err)

	claims, err := ts.Verify(tok)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)

	// Role changes after issuance must not show up in the already-issued
	// token: the claim is a snapshot, not a live view.
	admin.Role = models.RoleUser
	claims, err = ts.Verify(tok)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestIssueAccessToken_FirstAccountIsAdmin(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService(time.Minute, time.Hour)
	first := &models.User{ID: 1, Username: "first", Role: models.RoleUser}

	tok, err := ts.IssueAccessToken(first, true)
	require.NoError(t, err)

	claims, err := ts.Verify(tok)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestIssueAccessToken_UniqueTokenIDs(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService(time.Minute, time.Hour)
	user := &models.User{ID: 5, Username: "user1"}

	seen := make(map[string]struct{})
	for i := 0; i < 10; i++ {
		tok, err := ts.IssueAccessToken(user, true)
		require.NoError(t, err)
		claims, err := ts.Verify(tok)
		require.NoError(t, err)
		_, dup := seen[claims.ID]
		require.False(t, dup, "token id %q issued twice", claims.ID)
		seen[claims.ID] = struct{}{}
	}
}

func TestIssueRefreshToken_NeverFresh(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService(time.Minute, time.Hour)
	admin := &models.User{ID: 3, Username: "boss", Role: models.RoleAdmin}

	tok, err := ts.IssueRefreshToken(admin)
	require.NoError(t, err)

	claims, err := ts.Verify(tok)
	require.NoError(t, err)

	assert.Equal(t, models.TokenTypeRefresh, claims.TokenType)
	assert.False(t, claims.Fresh)
	assert.False(t, claims.IsAdmin, "refresh tokens carry no admin claim")
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService(-time.Second, time.Hour)
	user := &models.User{ID: 2, Username: "user1"}

	tok, err := ts.IssueAccessToken(user, true)
	require.NoError(t, err)

	_, err = ts.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_Garbage(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService(time.Minute, time.Hour)

	_, err := ts.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	other := NewTokenService([]byte("other-secret"), time.Minute, time.Hour, zap.NewNop())
	user := &models.User{ID: 2, Username: "user1"}

	tok, err := other.IssueAccessToken(user, true)
	require.NoError(t, err)

	ts := newTestTokenService(time.Minute, time.Hour)
	_, err = ts.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_RejectsNonHMAC(t *testing.T) {
	t.Parallel()

	// alg=none token with valid-looking claims must not verify.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &models.Claims{
		UserID:    9,
		TokenType: models.TokenTypeAccess,
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	ts := newTestTokenService(time.Minute, time.Hour)
	_, err = ts.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
