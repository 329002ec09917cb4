// Package auth holds the client-side view of authentication: decoding the
// bearer token this core is handed and validating user input shapes. The
// signing secret lives with the collaborator; tokens are never verified here,
// only inspected for their expiry and subject claims.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// BearerClaims is the subset of the token this core reads.
type BearerClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// DecodeClaims parses the token without verifying its signature. The
// collaborator is the authority on validity; locally we only need exp and the
// user id to decide whether a restore attempt is worth a network call.
func DecodeClaims(token string) (*BearerClaims, error) {
	claims := &BearerClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("undecodable token: %w", err)
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	return claims, nil
}

// Expired reports whether the token's exp claim is in the past. A token
// without an exp claim is treated as expired: the collaborator always sets one.
func (c *BearerClaims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return !c.ExpiresAt.Time.After(now)
}
