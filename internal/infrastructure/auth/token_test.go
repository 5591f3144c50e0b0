package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/gestock/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *TokenService {
	return NewTokenService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "gestock-test",
	})
}

func TestIssueAndVerify(t *testing.T) {
	svc := newTestService()
	tenantID := uuid.New().String()

	token, err := svc.Issue("u@x.com", tenantID)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u@x.com", claims.Subject)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.False(t, claims.GetIssuedAtTime().IsZero())
	assert.True(t, claims.GetExpiresAtTime().After(time.Now()))
}

func TestIssue_WithoutTenantClaim(t *testing.T) {
	svc := newTestService()

	token, err := svc.Issue("signup@x.com", "")
	require.NoError(t, err)

	// The tenant claim must be projected as absent, not as a failure
	tenantID, err := svc.ExtractTenantID(token)
	require.NoError(t, err)
	assert.Empty(t, tenantID)

	subject, err := svc.ExtractSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "signup@x.com", subject)
}

func TestVerify_TamperedToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.Issue("u@x.com", uuid.New().String())
	require.NoError(t, err)

	// Flip a character in the payload segment
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_MalformedToken(t *testing.T) {
	svc := newTestService()

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", token)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewTokenService(config.JWTConfig{
		Secret:                 "another-secret-key-32-characters!!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "gestock-test",
	})

	token, err := other.Issue("u@x.com", "")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_ExpiredToken(t *testing.T) {
	svc := NewTokenService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars!!",
		AccessTokenExpiration:  -time.Minute, // already expired at issue
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "gestock-test",
	})

	token, err := svc.Issue("u@x.com", uuid.New().String())
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_RejectsUnsignedToken(t *testing.T) {
	svc := newTestService()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "u@x.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_RejectsRefreshTokenAsAccess(t *testing.T) {
	svc := newTestService()

	pair, err := svc.IssuePair("u@x.com", uuid.New().String())
	require.NoError(t, err)

	_, err = svc.Verify(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	claims, err := svc.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestIssuePair(t *testing.T) {
	svc := newTestService()
	tenantID := uuid.New().String()

	pair, err := svc.IssuePair("u@x.com", tenantID)
	require.NoError(t, err)

	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))

	claims, err := svc.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tenantID, claims.TenantID)
}
