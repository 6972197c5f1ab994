// Package auth inspects the bearer tokens the operator supplies for each
// tenant. Tokens are opaque to the transfer itself; this is a preflight so a
// run does not grind through the roster phase with credentials that are
// already expired.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT means the token is not a parseable JWT. That is allowed — the
// API may hand out opaque tokens — so callers warn rather than fail.
var ErrNotJWT = errors.New("auth: token is not a JWT")

// TokenExpiry extracts the exp claim from token without verifying its
// signature. Verification belongs to the API server; here only the expiry
// matters. A zero time with nil error means the token carries no exp claim.
func TokenExpiry(token string) (time.Time, error) {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}

// CheckToken validates that a tenant token is usable: a JWT with an exp
// claim in the past is an error, anything else passes. name labels the
// token ("source"/"destination") in the error.
func CheckToken(name, token string) error {
	if token == "" {
		return fmt.Errorf("auth: %s token is empty", name)
	}
	exp, err := TokenExpiry(token)
	if err != nil {
		// Opaque token: nothing to check ahead of time.
		return nil
	}
	if !exp.IsZero() && exp.Before(time.Now()) {
		return fmt.Errorf("auth: %s token expired at %s", name, exp.Format(time.RFC3339))
	}
	return nil
}
