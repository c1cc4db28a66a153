package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotAToken is returned for a value that does not parse as a JWT at
// all, such as an opaque server-issued session handle.
var ErrNotAToken = errors.New("token: not a JWT")

// Info is the unverified claim excerpt exposed to diagnostics.
type Info struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type portalClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Inspect decodes raw without signature verification and returns the claim
// excerpt. Callers must treat the result as informational.
func Inspect(raw string) (Info, error) {
	parser := jwt.NewParser()

	var claims portalClaims
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrNotAToken, err)
	}

	info := Info{
		Subject: claims.Subject,
		Role:    claims.Role,
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
