package kakao

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/zipple/go-auth/social"
)

const (
	defaultAuthURL = "https://kauth.kakao.com"
	defaultAPIURL  = "https://kapi.kakao.com"

	tokenPath    = "/oauth/token"
	userInfoPath = "/v2/user/me"
)

// propertyKeys narrows the profile payload to the fields we map.
const propertyKeys = `["kakao_account.email", "kakao_account.profile", "kakao_account.gender", "kakao_account.age_range", "kakao_account.birthday"]`

// Config holds Kakao OAuth configuration. Kakao uses a public client id
// with no secret for the authorization code grant.
type Config struct {
	ClientID string

	AuthURL string
	APIURL  string

	HTTPClient *http.Client
}

// Provider implements social.Provider for Kakao.
type Provider struct {
	config     Config
	httpClient *http.Client
}

// New creates a new Kakao provider.
func New(cfg Config) *Provider {
	if cfg.AuthURL == "" {
		cfg.AuthURL = defaultAuthURL
	}
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &Provider{
		config:     cfg,
		httpClient: client,
	}
}

// Name implements social.Provider.
func (p *Provider) Name() string {
	return "kakao"
}

// Exchange implements social.Provider.
func (p *Provider) Exchange(ctx context.Context, params social.LoginParams) (*social.Token, error) {
	data := url.Values{
		"grant_type": {"authorization_code"},
		"client_id":  {p.config.ClientID},
		"code":       {params.Code},
	}
	if params.RedirectURI != "" {
		data.Set("redirect_uri", params.RedirectURI)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.AuthURL+tokenPath, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var tokenResp kakaoTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, providerError("exchange", resp.StatusCode, "invalid_response", "failed to decode token response", err, nil)
	}

	if resp.StatusCode != http.StatusOK || tokenResp.Error != "" {
		return nil, providerError("exchange", resp.StatusCode, tokenResp.Error, tokenResp.ErrorDesc, nil, tokenResp.errorMetadata())
	}
	if tokenResp.AccessToken == "" {
		return nil, providerError("exchange", resp.StatusCode, "missing_access_token", "missing access token", nil, nil)
	}

	return &social.Token{
		AccessToken:  tokenResp.AccessToken,
		TokenType:    tokenResp.TokenType,
		RefreshToken: tokenResp.RefreshToken,
		ExpiresIn:    tokenResp.ExpiresIn,
	}, nil
}

// UserInfo implements social.Provider. Kakao expects a form POST with the
// property_keys filter and a bearer header.
func (p *Provider) UserInfo(ctx context.Context, accessToken string) (*social.Profile, error) {
	data := url.Values{
		"property_keys": {propertyKeys},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.APIURL+userInfoPath, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		code, desc := parseKakaoError(body)
		return nil, providerError("user_info", resp.StatusCode, code, desc, nil, nil)
	}

	var info kakaoUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, providerError("user_info", resp.StatusCode, "invalid_response", "failed to decode userinfo response", err, nil)
	}
	if info.ID == 0 {
		return nil, providerError("user_info", resp.StatusCode, "missing_id", "missing user id", nil, nil)
	}

	return mapProfile(&info), nil
}

type kakaoTokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	Error        string `json:"error"`
	ErrorDesc    string `json:"error_description"`
	ErrorCode    string `json:"error_code"`
}

func (r kakaoTokenResponse) errorMetadata() map[string]any {
	meta := map[string]any{}
	if r.Error != "" {
		meta["error"] = r.Error
	}
	if r.ErrorDesc != "" {
		meta["error_description"] = r.ErrorDesc
	}
	if r.ErrorCode != "" {
		meta["error_code"] = r.ErrorCode
	}
	return meta
}

type kakaoAPIError struct {
	Msg  string `json:"msg"`
	Code int    `json:"code"`
}

func parseKakaoError(body []byte) (string, string) {
	var apiErr kakaoAPIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Msg != "" {
		return strconv.Itoa(apiErr.Code), apiErr.Msg
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = "kakao request failed"
	}
	return "", msg
}

func providerError(operation string, status int, code, description string, err error, raw map[string]any) *social.ProviderError {
	return &social.ProviderError{
		Provider:    "kakao",
		Operation:   operation,
		Status:      status,
		Code:        code,
		Description: description,
		Err:         err,
		Raw:         raw,
	}
}
