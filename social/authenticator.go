package social

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	auth "github.com/zipple/go-auth"
)

// UserDirectory is the application-owned user store consulted during login.
// FindOrCreateByProviderID must be idempotent on (provider, provider user
// id): repeat logins for the same federated identity resolve to the same
// local account.
type UserDirectory interface {
	FindOrCreateByProviderID(ctx context.Context, profile *Profile) (auth.Identity, error)
	DeleteAccount(ctx context.Context, identity auth.Identity) error
}

// Authenticator orchestrates federated login end to end: provider lookup,
// code exchange, profile fetch, local account resolution, token minting.
type Authenticator struct {
	registry     *Registry
	users        UserDirectory
	issuer       auth.TokenIssuer
	activitySink auth.ActivitySink
	logger       auth.Logger
}

type AuthenticatorOption func(*Authenticator)

// WithActivitySink sets the audit sink for login/logout/withdraw events.
func WithActivitySink(sink auth.ActivitySink) AuthenticatorOption {
	return func(a *Authenticator) {
		a.activitySink = sink
	}
}

func WithLogger(logger auth.Logger) AuthenticatorOption {
	return func(a *Authenticator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func NewAuthenticator(
	registry *Registry,
	users UserDirectory,
	issuer auth.TokenIssuer,
	opts ...AuthenticatorOption,
) *Authenticator {
	a := &Authenticator{
		registry: registry,
		users:    users,
		issuer:   issuer,
		logger:   auth.DefaultLogger(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	return a
}

// Login runs the full federation flow for one authorization code. The flow
// is terminal on first failure with no retries, and the user directory is
// never consulted when a provider step fails. The provider token is
// discarded once the profile is fetched.
func (a *Authenticator) Login(ctx context.Context, providerName string, params LoginParams) (*auth.TokenPair, error) {
	provider, err := a.registry.Get(providerName)
	if err != nil {
		return nil, err
	}

	token, err := provider.Exchange(ctx, params)
	if err != nil {
		return nil, wrapProviderError(ErrTokenExchangeFailed, providerName, "exchange", err)
	}

	profile, err := provider.UserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, wrapProviderError(ErrUserInfoFailed, providerName, "user_info", err)
	}

	identity, err := a.users.FindOrCreateByProviderID(ctx, profile)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to resolve local account")
	}

	pair, err := a.issuer.Issue(identity)
	if err != nil {
		return nil, err
	}

	a.record(ctx, auth.ActivityEvent{
		EventType:  auth.ActivityEventSocialLogin,
		UserID:     identity.String(),
		Actor:      auth.ActorRef{Type: "social", ID: providerName},
		OccurredAt: time.Now(),
		Metadata: map[string]any{
			"provider":         providerName,
			"provider_user_id": profile.ProviderUserID,
		},
	})

	return pair, nil
}

// Logout records the logout for auditing and reports success. Tokens are
// stateless, so already issued pairs stay valid until they expire; there is
// no server-side state to clear.
func (a *Authenticator) Logout(ctx context.Context, identity auth.Identity) error {
	a.record(ctx, auth.ActivityEvent{
		EventType:  auth.ActivityEventLogout,
		UserID:     identity.String(),
		Actor:      auth.ActorRef{Type: "user", ID: identity.String()},
		OccurredAt: time.Now(),
	})

	return nil
}

// Withdraw deletes the caller's account. The caller identity was already
// verified by the request gate.
func (a *Authenticator) Withdraw(ctx context.Context, identity auth.Identity) error {
	if err := a.users.DeleteAccount(ctx, identity); err != nil {
		return err
	}

	a.record(ctx, auth.ActivityEvent{
		EventType:  auth.ActivityEventWithdraw,
		UserID:     identity.String(),
		Actor:      auth.ActorRef{Type: "user", ID: identity.String()},
		OccurredAt: time.Now(),
	})

	return nil
}

func (a *Authenticator) record(ctx context.Context, event auth.ActivityEvent) {
	if a.activitySink == nil {
		return
	}

	if err := a.activitySink.Record(ctx, event); err != nil {
		a.logger.Error("failed to record %s event: %v", event.EventType, err)
	}
}
