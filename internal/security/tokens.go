package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned when a token is malformed, signed with the
	// wrong secret or algorithm, issued for the other audience, or expired.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingSubject is returned when a structurally valid token has no sub claim.
	ErrMissingSubject = errors.New("token has no subject")
)

// Audiences separate the two signing contexts so that an access token can
// never pass refresh verification and vice versa, even with equal secrets.
const (
	AudienceAccess  = "access"
	AudienceRefresh = "refresh"
)

// Claims is the claim set carried by both token kinds.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenConfig holds the immutable settings for both signing contexts.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	Algorithm     string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type signingContext struct {
	secret   []byte
	audience string
	ttl      time.Duration
}

// TokenCodec issues and verifies HMAC-signed access and refresh JWTs.
// It holds no mutable state and is safe for concurrent use.
type TokenCodec struct {
	method  *jwt.SigningMethodHMAC
	access  signingContext
	refresh signingContext
	now     func() time.Time
}

// NewTokenCodec validates cfg and returns a codec. Only HMAC algorithms
// (HS256, HS384, HS512) are accepted.
func NewTokenCodec(cfg TokenConfig) (*TokenCodec, error) {
	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("access and refresh secrets are required")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}

	return &TokenCodec{
		method:  method,
		access:  signingContext{secret: []byte(cfg.AccessSecret), audience: AudienceAccess, ttl: cfg.AccessTTL},
		refresh: signingContext{secret: []byte(cfg.RefreshSecret), audience: AudienceRefresh, ttl: cfg.RefreshTTL},
		now:     time.Now,
	}, nil
}

// WithClock returns a copy of the codec that reads the current time from now.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	clone := *c
	clone.now = now
	return &clone
}

// IssueAccess signs a short-lived access token for subject.
func (c *TokenCodec) IssueAccess(subject string) (string, error) {
	return c.issue(c.access, subject)
}

// IssueRefresh signs a long-lived refresh token for subject.
func (c *TokenCodec) IssueRefresh(subject string) (string, error) {
	return c.issue(c.refresh, subject)
}

// VerifyAccess checks an access token and returns its claims.
func (c *TokenCodec) VerifyAccess(token string) (*Claims, error) {
	return c.verify(c.access, token)
}

// VerifyRefresh checks a refresh token and returns its claims.
func (c *TokenCodec) VerifyRefresh(token string) (*Claims, error) {
	return c.verify(c.refresh, token)
}

func (c *TokenCodec) issue(sc signingContext, subject string) (string, error) {
	if subject == "" {
		return "", ErrMissingSubject
	}

	now := c.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Audience:  jwt.ClaimStrings{sc.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sc.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(sc.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", sc.audience, err)
	}
	return signed, nil
}

func (c *TokenCodec) verify(sc signingContext, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return sc.secret, nil },
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithAudience(sc.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}
