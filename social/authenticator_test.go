package social_test

import (
	"context"
	"fmt"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	auth "github.com/zipple/go-auth"
	"github.com/zipple/go-auth/social"
)

type testConfig struct{}

func (testConfig) GetSigningKey() string            { return "test-signing-key" }
func (testConfig) GetIssuer() string                { return "test-issuer" }
func (testConfig) GetAudience() []string            { return []string{"test-audience"} }
func (testConfig) GetPublicRoutePrefixes() []string { return []string{"/api/auth"} }

type fakeProvider struct {
	name        string
	token       *social.Token
	profile     *social.Profile
	exchangeErr error
	userInfoErr error

	exchanged []social.LoginParams
	infoCalls []string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Exchange(_ context.Context, params social.LoginParams) (*social.Token, error) {
	f.exchanged = append(f.exchanged, params)
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.token, nil
}

func (f *fakeProvider) UserInfo(_ context.Context, accessToken string) (*social.Profile, error) {
	f.infoCalls = append(f.infoCalls, accessToken)
	if f.userInfoErr != nil {
		return nil, f.userInfoErr
	}
	return f.profile, nil
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) FindOrCreateByProviderID(ctx context.Context, profile *social.Profile) (auth.Identity, error) {
	args := m.Called(ctx, profile)
	return args.Get(0).(auth.Identity), args.Error(1)
}

func (m *MockUserDirectory) DeleteAccount(ctx context.Context, identity auth.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

type captureSink struct {
	events []auth.ActivityEvent
}

func (s *captureSink) Record(_ context.Context, event auth.ActivityEvent) error {
	s.events = append(s.events, event)
	return nil
}

func kakaoProfile() *social.Profile {
	return &social.Profile{
		Provider:       "kakao",
		ProviderUserID: "9001",
		Email:          "agent@example.com",
		Nickname:       "agent",
	}
}

func newIssuer() auth.TokenIssuer {
	return auth.NewTokenIssuer(auth.NewTokenService(testConfig{}))
}

func TestAuthenticator_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("successful login mints a bearer pair", func(t *testing.T) {
		provider := &fakeProvider{
			name:    "kakao",
			token:   &social.Token{AccessToken: "provider-token"},
			profile: kakaoProfile(),
		}

		users := &MockUserDirectory{}
		users.On("FindOrCreateByProviderID", ctx, provider.profile).Return(auth.Identity(7), nil)

		sink := &captureSink{}
		authenticator := social.NewAuthenticator(
			social.NewRegistry(provider),
			users,
			newIssuer(),
			social.WithActivitySink(sink),
		)

		pair, err := authenticator.Login(ctx, "kakao", social.LoginParams{Code: "good-code"})
		require.NoError(t, err)
		assert.Equal(t, auth.BearerTokenType, pair.TokenType)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)

		require.Len(t, provider.exchanged, 1)
		assert.Equal(t, "good-code", provider.exchanged[0].Code)
		require.Len(t, provider.infoCalls, 1)
		assert.Equal(t, "provider-token", provider.infoCalls[0])

		users.AssertExpectations(t)

		require.Len(t, sink.events, 1)
		assert.Equal(t, auth.ActivityEventSocialLogin, sink.events[0].EventType)
		assert.Equal(t, "7", sink.events[0].UserID)
	})

	t.Run("two logins for the same federated identity", func(t *testing.T) {
		provider := &fakeProvider{
			name:    "kakao",
			token:   &social.Token{AccessToken: "provider-token"},
			profile: kakaoProfile(),
		}

		users := &MockUserDirectory{}
		users.On("FindOrCreateByProviderID", ctx, provider.profile).Return(auth.Identity(7), nil).Twice()

		issuer := newIssuer()
		authenticator := social.NewAuthenticator(social.NewRegistry(provider), users, issuer)

		first, err := authenticator.Login(ctx, "kakao", social.LoginParams{Code: "code-1"})
		require.NoError(t, err)
		second, err := authenticator.Login(ctx, "kakao", social.LoginParams{Code: "code-2"})
		require.NoError(t, err)

		for _, pair := range []*auth.TokenPair{first, second} {
			id, err := issuer.IdentityOf(pair.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, auth.Identity(7), id)
		}

		users.AssertExpectations(t)
	})

	t.Run("unknown provider", func(t *testing.T) {
		users := &MockUserDirectory{}
		authenticator := social.NewAuthenticator(social.NewRegistry(), users, newIssuer())

		pair, err := authenticator.Login(ctx, "kakao", social.LoginParams{Code: "bad"})
		assert.Nil(t, pair)
		assert.ErrorIs(t, err, social.ErrProviderNotFound)

		users.AssertNotCalled(t, "FindOrCreateByProviderID", mock.Anything, mock.Anything)
	})

	t.Run("failed exchange never touches the user directory", func(t *testing.T) {
		provider := &fakeProvider{
			name: "kakao",
			exchangeErr: &social.ProviderError{
				Provider:  "kakao",
				Operation: "exchange",
				Status:    401,
				Code:      "invalid_grant",
			},
		}

		users := &MockUserDirectory{}
		authenticator := social.NewAuthenticator(social.NewRegistry(provider), users, newIssuer())

		pair, err := authenticator.Login(ctx, "kakao", social.LoginParams{Code: "bad"})
		assert.Nil(t, pair)

		var rich *goerrors.Error
		require.True(t, goerrors.As(err, &rich))
		assert.Equal(t, social.TextCodeTokenExchangeFail, rich.TextCode)
		assert.Equal(t, "kakao", rich.Metadata["provider"])

		users.AssertNotCalled(t, "FindOrCreateByProviderID", mock.Anything, mock.Anything)
		assert.Empty(t, provider.infoCalls)
	})

	t.Run("failed profile fetch never touches the user directory", func(t *testing.T) {
		provider := &fakeProvider{
			name:        "kakao",
			token:       &social.Token{AccessToken: "provider-token"},
			userInfoErr: fmt.Errorf("boom"),
		}

		users := &MockUserDirectory{}
		authenticator := social.NewAuthenticator(social.NewRegistry(provider), users, newIssuer())

		pair, err := authenticator.Login(ctx, "kakao", social.LoginParams{Code: "good"})
		assert.Nil(t, pair)

		var rich *goerrors.Error
		require.True(t, goerrors.As(err, &rich))
		assert.Equal(t, social.TextCodeUserInfoFail, rich.TextCode)

		users.AssertNotCalled(t, "FindOrCreateByProviderID", mock.Anything, mock.Anything)
	})

	t.Run("directory failure is terminal", func(t *testing.T) {
		provider := &fakeProvider{
			name:    "kakao",
			token:   &social.Token{AccessToken: "provider-token"},
			profile: kakaoProfile(),
		}

		users := &MockUserDirectory{}
		users.On("FindOrCreateByProviderID", ctx, provider.profile).
			Return(auth.Identity(0), fmt.Errorf("db down"))

		authenticator := social.NewAuthenticator(social.NewRegistry(provider), users, newIssuer())

		pair, err := authenticator.Login(ctx, "kakao", social.LoginParams{Code: "good"})
		assert.Nil(t, pair)
		assert.Error(t, err)
	})
}

func TestAuthenticator_Logout(t *testing.T) {
	ctx := context.Background()

	users := &MockUserDirectory{}
	sink := &captureSink{}
	authenticator := social.NewAuthenticator(
		social.NewRegistry(),
		users,
		newIssuer(),
		social.WithActivitySink(sink),
	)

	err := authenticator.Logout(ctx, auth.Identity(7))
	require.NoError(t, err)

	require.Len(t, sink.events, 1)
	assert.Equal(t, auth.ActivityEventLogout, sink.events[0].EventType)
	assert.Equal(t, "7", sink.events[0].UserID)
}

func TestAuthenticator_Withdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the account", func(t *testing.T) {
		users := &MockUserDirectory{}
		users.On("DeleteAccount", ctx, auth.Identity(7)).Return(nil)

		sink := &captureSink{}
		authenticator := social.NewAuthenticator(
			social.NewRegistry(),
			users,
			newIssuer(),
			social.WithActivitySink(sink),
		)

		err := authenticator.Withdraw(ctx, auth.Identity(7))
		require.NoError(t, err)

		users.AssertExpectations(t)
		require.Len(t, sink.events, 1)
		assert.Equal(t, auth.ActivityEventWithdraw, sink.events[0].EventType)
	})

	t.Run("propagates deletion failures", func(t *testing.T) {
		users := &MockUserDirectory{}
		users.On("DeleteAccount", ctx, auth.Identity(7)).Return(fmt.Errorf("db down"))

		sink := &captureSink{}
		authenticator := social.NewAuthenticator(
			social.NewRegistry(),
			users,
			newIssuer(),
			social.WithActivitySink(sink),
		)

		err := authenticator.Withdraw(ctx, auth.Identity(7))
		assert.Error(t, err)
		assert.Empty(t, sink.events)
	})
}
