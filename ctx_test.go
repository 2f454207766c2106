package auth_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	auth "github.com/zipple/go-auth"
)

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()

	_, ok := auth.IdentityFromContext(ctx)
	assert.False(t, ok)

	ctx = auth.WithIdentityContext(ctx, auth.Identity(42))

	id, ok := auth.IdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, auth.Identity(42), id)
}

func TestClaimsContext(t *testing.T) {
	ctx := context.Background()

	_, ok := auth.ClaimsFromContext(ctx)
	assert.False(t, ok)

	claims := &auth.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "42"},
	}
	ctx = auth.WithClaimsContext(ctx, claims)

	got, ok := auth.ClaimsFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "42", got.Subject())
}
