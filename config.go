package auth

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvConfig is the environment-driven Config implementation. It also carries
// provider credentials so an application can wire adapters from one load.
type EnvConfig struct {
	SigningKey          string   `env:"AUTH_SIGNING_KEY"`
	Issuer              string   `env:"AUTH_TOKEN_ISSUER" envDefault:"zipple"`
	Audience            []string `env:"AUTH_TOKEN_AUDIENCE" envSeparator:","`
	PublicRoutePrefixes []string `env:"AUTH_PUBLIC_ROUTE_PREFIXES" envSeparator:"," envDefault:"/api/auth"`

	KakaoClientID string `env:"KAKAO_CLIENT_ID"`
	KakaoAuthURL  string `env:"KAKAO_AUTH_URL" envDefault:"https://kauth.kakao.com"`
	KakaoAPIURL   string `env:"KAKAO_API_URL" envDefault:"https://kapi.kakao.com"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`
}

// LoadConfig reads configuration from environment variables, honoring a
// local .env file when present. A missing signing key fails here so broken
// deployments die at startup instead of rejecting every request.
func LoadConfig() (*EnvConfig, error) {
	_ = godotenv.Load()

	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing auth config: %w", err)
	}

	if cfg.SigningKey == "" {
		return nil, fmt.Errorf("AUTH_SIGNING_KEY is required")
	}

	return cfg, nil
}

func (c *EnvConfig) GetSigningKey() string            { return c.SigningKey }
func (c *EnvConfig) GetIssuer() string                { return c.Issuer }
func (c *EnvConfig) GetAudience() []string            { return c.Audience }
func (c *EnvConfig) GetPublicRoutePrefixes() []string { return c.PublicRoutePrefixes }
