// Package tokenware gates HTTP requests on a valid bearer token. Requests
// under a configured public prefix always pass, though a valid token still
// attaches the caller identity when one is presented; everything else must
// carry a verifiable access token or is rejected with a generic 401.
package tokenware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	auth "github.com/zipple/go-auth"
)

// DefaultContextKey is the fiber Locals key the identity is stored under.
const DefaultContextKey = "auth_identity"

// Config controls the gate.
type Config struct {
	// Service validates bearer tokens. Required.
	Service auth.TokenService

	// PublicPrefixes lists path prefixes that bypass the gate.
	PublicPrefixes []string

	// ContextKey overrides the Locals key for the resolved identity.
	ContextKey string

	// AuthScheme is the expected Authorization scheme. Defaults to Bearer.
	AuthScheme string

	// Logger receives the rejection detail that is withheld from clients.
	Logger auth.Logger

	// ErrorHandler overrides the default generic 401 response.
	ErrorHandler func(c *fiber.Ctx, err error) error
}

// New builds the gate middleware. Every rejection, whether the header is
// missing, the token is tampered with, or the token is expired, produces
// the same client-facing response; the specific cause only reaches the
// logger.
func New(config Config) fiber.Handler {
	if config.ContextKey == "" {
		config.ContextKey = DefaultContextKey
	}
	if config.AuthScheme == "" {
		config.AuthScheme = auth.BearerTokenType
	}
	if config.Logger == nil {
		config.Logger = auth.DefaultLogger()
	}
	if config.ErrorHandler == nil {
		config.ErrorHandler = defaultErrorHandler
	}

	return func(c *fiber.Ctx) error {
		public := isPublic(c.Path(), config.PublicPrefixes)

		tokenString, err := extractToken(c, config.AuthScheme)
		if err != nil {
			if public {
				return c.Next()
			}
			config.Logger.Debug("auth gate: %v", err)
			return config.ErrorHandler(c, err)
		}

		claims, err := config.Service.Validate(tokenString)
		if err != nil {
			if public {
				return c.Next()
			}
			config.Logger.Debug("auth gate: token rejected: %v", err)
			return config.ErrorHandler(c, err)
		}

		identity, err := claims.Identity()
		if err != nil {
			if public {
				return c.Next()
			}
			config.Logger.Debug("auth gate: %v", err)
			return config.ErrorHandler(c, err)
		}

		c.Locals(config.ContextKey, identity)

		ctx := auth.WithIdentityContext(c.UserContext(), identity)
		ctx = auth.WithClaimsContext(ctx, claims)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

func isPublic(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func extractToken(c *fiber.Ctx, scheme string) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", fmt.Errorf("missing authorization header")
	}

	prefix := scheme + " "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", fmt.Errorf("invalid authorization scheme")
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", fmt.Errorf("empty bearer token")
	}

	return token, nil
}

func defaultErrorHandler(c *fiber.Ctx, _ error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":     auth.ErrUnauthenticated.Message,
		"text_code": auth.ErrUnauthenticated.TextCode,
	})
}
