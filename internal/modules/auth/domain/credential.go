package domain

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKey is the credential store key the bearer token lives under.
const TokenKey = "token"

// Credential is the bearer token issued by /auth/login. It is opaque to the
// client; Claims only decodes it for display.
type Credential struct {
	Token string
}

func (c Credential) IsZero() bool {
	return strings.TrimSpace(c.Token) == ""
}

type Claims struct {
	Username  string
	ExpiresAt time.Time
}

type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// ParseClaims reads the token payload without verifying the signature. The
// server is the only verifier; a token that is not a JWT yields empty claims.
func ParseClaims(token string) Claims {
	if strings.TrimSpace(token) == "" {
		return Claims{}
	}
	var parsed tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &parsed); err != nil {
		return Claims{}
	}
	claims := Claims{Username: parsed.Username}
	if claims.Username == "" {
		claims.Username = parsed.Subject
	}
	if parsed.ExpiresAt != nil {
		claims.ExpiresAt = parsed.ExpiresAt.Time.UTC()
	}
	return claims
}

// Expired reports whether the claims carry an expiry that is before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
