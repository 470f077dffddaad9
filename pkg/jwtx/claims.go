package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is how long a staff session token stays valid. A desk
// shift is long, and there is no refresh grant, so this is hours not minutes.
const DefaultAccessTokenTTL = 12 * time.Hour

// Scopes carried by staff tokens.
const (
	ScopeClientsRead   = "clients:read"
	ScopeClientsWrite  = "clients:write"
	ScopeProgramsRead  = "programs:read"
	ScopeProgramsWrite = "programs:write"
)

// StaffScopes is what every staff login is granted today.
var StaffScopes = []string{ScopeClientsRead, ScopeClientsWrite, ScopeProgramsRead, ScopeProgramsWrite}

// Claims are the registry access-token claims.
type Claims struct {
	jwt.RegisteredClaims

	Scopes   []string `json:"scopes,omitempty"`
	Username string   `json:"username,omitempty"`
}

// NewAccessClaims builds claims for subject valid from now for ttl.
func NewAccessClaims(subject, username string, scopes []string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Scopes:   scopes,
		Username: username,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer. An empty expectation accepts anything.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected != "" && c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
