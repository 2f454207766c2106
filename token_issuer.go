package auth

import "time"

const (
	// BearerTokenType is the scheme clients present issued tokens under.
	BearerTokenType = "Bearer"

	// AccessTokenLifetime and RefreshTokenLifetime are fixed for every
	// identity. Both tokens of a pair share the same issuance instant.
	AccessTokenLifetime  = time.Hour
	RefreshTokenLifetime = 7 * 24 * time.Hour
)

// TokenIssuer mints access/refresh pairs for local identities and maps
// access tokens back to the identity they were minted for.
//
// Issued tokens cannot be revoked before expiry: validation is purely
// cryptographic and no denylist is consulted. A jti claim is minted on every
// token so a denylist can be added without reissuing anything.
type TokenIssuer interface {
	Issue(identity Identity) (*TokenPair, error)
	IdentityOf(accessToken string) (Identity, error)
}

type TokenIssuerImpl struct {
	service TokenService
	logger  Logger
	now     func() time.Time
}

type TokenIssuerOption func(*TokenIssuerImpl)

func WithIssuerLogger(logger Logger) TokenIssuerOption {
	return func(ti *TokenIssuerImpl) {
		if logger != nil {
			ti.logger = logger
		}
	}
}

// WithIssuerClock overrides the time source. Used in tests.
func WithIssuerClock(now func() time.Time) TokenIssuerOption {
	return func(ti *TokenIssuerImpl) {
		if now != nil {
			ti.now = now
		}
	}
}

func NewTokenIssuer(service TokenService, opts ...TokenIssuerOption) *TokenIssuerImpl {
	issuer := &TokenIssuerImpl{
		service: service,
		logger:  defLogger{},
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(issuer)
	}

	return issuer
}

// Issue mints a fresh pair for the identity. A single now is read so both
// tokens carry identical iat claims.
func (ti *TokenIssuerImpl) Issue(identity Identity) (*TokenPair, error) {
	if identity <= 0 {
		return nil, ErrMalformedSubject
	}

	subject := identity.String()
	now := ti.now()

	access, err := ti.service.Sign(subject, now, now.Add(AccessTokenLifetime))
	if err != nil {
		return nil, err
	}

	refresh, err := ti.service.Sign(subject, now, now.Add(RefreshTokenLifetime))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    BearerTokenType,
	}, nil
}

// IdentityOf validates the access token and parses its subject.
func (ti *TokenIssuerImpl) IdentityOf(accessToken string) (Identity, error) {
	claims, err := ti.service.Validate(accessToken)
	if err != nil {
		return 0, err
	}
	return claims.Identity()
}
