package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/Payphone-Digital/auth-service/config"
	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the payload of an access token
type AccessClaims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer signs access tokens and mints opaque refresh tokens
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenIssuer fails for an empty, short or placeholder secret. Zero TTLs
// take the defaults (15 minutes and 7 days).
func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) (*TokenIssuer, error) {
	if err := config.ValidateSecret(secret); err != nil {
		return nil, err
	}
	if accessTTL <= 0 {
		accessTTL = constants.AccessTokenTTL
	}
	if refreshTTL <= 0 {
		ttl, err := config.ParseTTL(constants.RefreshTokenTTL)
		if err != nil {
			return nil, err
		}
		refreshTTL = ttl
	}
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// WithClock returns a copy of the issuer that reads time from now
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	clone := *t
	clone.now = now
	return &clone
}

// IssueAccessToken creates a signed HS256 token carrying userId and email
func (t *TokenIssuer) IssueAccessToken(userID uint, email string) (string, error) {
	issuedAt := t.now()
	claims := AccessClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(t.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken returns the claims of a well-formed, correctly signed,
// unexpired HS256 token. Every failure is reported as (nil, false).
func (t *TokenIssuer) VerifyAccessToken(tokenString string) (*AccessClaims, bool) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}

// IssueRefreshToken returns 256 random bits, URL-safe base64 without padding
func (t *TokenIssuer) IssueRefreshToken() (string, error) {
	buf := make([]byte, constants.RefreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// RefreshTokenExpiry returns when a refresh token issued at now expires
func (t *TokenIssuer) RefreshTokenExpiry(now time.Time) time.Time {
	return now.Add(t.refreshTTL)
}

// Now is the issuer's clock
func (t *TokenIssuer) Now() time.Time {
	return t.now()
}

func (t *TokenIssuer) AccessTTL() time.Duration {
	return t.accessTTL
}
