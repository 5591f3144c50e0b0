package auth

import (
	"errors"
	"time"

	"github.com/gestock/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType represents the type of token
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Common errors. HTTP responses must not distinguish ErrTokenInvalid from
// ErrTokenExpired (oracle leakage); logs must.
var (
	ErrTokenInvalid     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token has expired")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrInvalidClaims    = errors.New("invalid token claims")
)

// Claims represents the token claims. Subject carries the user's email; the
// tenant claim is present only for tenant-bound tokens. Tokens without it
// are valid for tenant-agnostic operations only (e.g. initial signup).
type Claims struct {
	jwt.RegisteredClaims
	TenantID  string    `json:"tenant_id,omitempty"`
	TokenType TokenType `json:"token_type"`
}

// TokenPair represents an access and refresh token pair
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"` // Bearer
}

// TokenService issues and verifies signed bearer tokens. The signing secret
// is injected once at construction and never exposed. There is no revocation
// list: a compromised token remains valid until natural expiry.
type TokenService struct {
	secret            []byte
	accessExpiration  time.Duration
	refreshExpiration time.Duration
	issuer            string
}

// NewTokenService creates a new token service from configuration
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		secret:            []byte(cfg.Secret),
		accessExpiration:  cfg.AccessTokenExpiration,
		refreshExpiration: cfg.RefreshTokenExpiration,
		issuer:            cfg.Issuer,
	}
}

// Issue produces a signed access token for the given subject. When tenantID
// is non-empty it is embedded as the tenant claim.
func (s *TokenService) Issue(subjectEmail, tenantID string) (string, error) {
	return s.sign(s.claims(subjectEmail, tenantID, TokenTypeAccess, s.accessExpiration))
}

// IssuePair produces an access and refresh token pair for the given subject
func (s *TokenService) IssuePair(subjectEmail, tenantID string) (*TokenPair, error) {
	now := time.Now()

	accessToken, err := s.sign(s.claims(subjectEmail, tenantID, TokenTypeAccess, s.accessExpiration))
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.sign(s.claims(subjectEmail, tenantID, TokenTypeRefresh, s.refreshExpiration))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  now.Add(s.accessExpiration),
		RefreshTokenExpiresAt: now.Add(s.refreshExpiration),
		TokenType:             "Bearer",
	}, nil
}

func (s *TokenService) claims(subjectEmail, tenantID string, tokenType TokenType, ttl time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   subjectEmail,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TenantID:  tenantID,
		TokenType: tokenType,
	}
}

func (s *TokenService) sign(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates the token's signature and expiry and returns its claims.
// Fails with ErrTokenExpired for tokens past expiry and ErrTokenInvalid for
// everything else (malformed, unsigned, tampered, wrong algorithm).
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	return s.verify(tokenString, TokenTypeAccess)
}

// VerifyRefresh validates a refresh token and returns its claims
func (s *TokenService) VerifyRefresh(tokenString string) (*Claims, error) {
	return s.verify(tokenString, TokenTypeRefresh)
}

func (s *TokenService) verify(tokenString string, expectedType TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.TokenType != expectedType {
		return nil, ErrInvalidTokenType
	}
	if claims.Subject == "" {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// ExtractSubject returns the subject email of a valid token
func (s *TokenService) ExtractSubject(tokenString string) (string, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractTenantID returns the tenant claim of a valid token, or empty when
// the token carries none
func (s *TokenService) ExtractTenantID(tokenString string) (string, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return "", err
	}
	return claims.TenantID, nil
}

// AccessTokenExpiration returns the configured access token TTL
func (s *TokenService) AccessTokenExpiration() time.Duration {
	return s.accessExpiration
}

// GetIssuedAtTime returns the token's issued-at time as time.Time
func (c *Claims) GetIssuedAtTime() time.Time {
	if c.IssuedAt != nil {
		return c.IssuedAt.Time
	}
	return time.Time{}
}

// GetExpiresAtTime returns the token's expiration time as time.Time
func (c *Claims) GetExpiresAtTime() time.Time {
	if c.ExpiresAt != nil {
		return c.ExpiresAt.Time
	}
	return time.Time{}
}
