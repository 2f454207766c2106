package social

import "context"

// Provider adapts one federation backend. Implementations normalize the
// backend's token and profile payloads; they never mint local credentials.
type Provider interface {
	// Name returns the provider tag used in routes and registry lookups.
	Name() string

	// Exchange trades an authorization code for the provider's access token.
	Exchange(ctx context.Context, params LoginParams) (*Token, error)

	// UserInfo fetches the user's profile using the provider access token.
	UserInfo(ctx context.Context, accessToken string) (*Profile, error)
}

// LoginParams carries the client-supplied inputs to a code exchange.
type LoginParams struct {
	Code        string
	RedirectURI string
}

// Token is a provider token response. It lives only for the duration of a
// login flow; it is never persisted and never returned to clients.
type Token struct {
	AccessToken  string
	TokenType    string
	RefreshToken string
	ExpiresIn    int64
	Raw          map[string]any
}

// Profile is normalized user information from a provider.
type Profile struct {
	Provider       string
	ProviderUserID string
	Email          string
	Nickname       string
	AvatarURL      string
	Raw            map[string]any
}
