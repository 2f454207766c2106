package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims is the claim set carried by tokens this package signs. Only
// registered claims are used; the subject is the textual numeric identity.
type JWTClaims struct {
	jwt.RegisteredClaims
}

// Subject returns the sub claim.
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// IssuedAt returns the iat claim, zero when absent.
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.IssuedAt.Time
}

// Expires returns the exp claim, zero when absent.
func (c *JWTClaims) Expires() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Identity parses the subject into the numeric account identity. Subjects
// that are not positive integers yield ErrMalformedSubject.
func (c *JWTClaims) Identity() (Identity, error) {
	sub := c.Subject()

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		rich := ErrMalformedSubject.Clone()
		rich.WithMetadata(map[string]any{"subject": sub})
		return 0, rich
	}

	return Identity(id), nil
}
