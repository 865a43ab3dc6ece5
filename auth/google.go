package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"albumapi/apperr"
	"albumapi/config"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	exchangeTimeout = 10 * time.Second
)

// Identity is the verified identity tuple returned by the provider.
type Identity struct {
	ExternalID string
	Email      string
	Name       string
	AvatarURL  string
}

// Provider exchanges an OAuth authorization code for a verified Google
// identity. Calls carry a bounded timeout; a failure is surfaced to the
// caller as an upstream error and never retried here.
type Provider struct {
	clientID     string
	clientSecret string
	redirectURL  string

	// endpoint overrides for tests
	tokenURL    string
	userInfoURL string

	client *http.Client
}

func NewProvider(cfg *config.Config) *Provider {
	return &Provider{
		clientID:     cfg.GoogleClientID,
		clientSecret: cfg.GoogleClientSecret,
		redirectURL:  cfg.BackendURL + "/auth/google/callback",
		tokenURL:     googleTokenURL,
		userInfoURL:  googleUserInfoURL,
		client:       &http.Client{Timeout: exchangeTimeout},
	}
}

// AuthURL is where the browser is sent to start a login.
func (p *Provider) AuthURL() string {
	q := url.Values{}
	q.Set("client_id", p.clientID)
	q.Set("redirect_uri", p.redirectURL)
	q.Set("response_type", "code")
	q.Set("scope", "profile email")
	return googleAuthURL + "?" + q.Encode()
}

// ExchangeCode turns an authorization code into a verified identity. Trust in
// the returned tuple is delegated to Google - it is not re-validated here.
func (p *Provider) ExchangeCode(ctx context.Context, code string) (*Identity, error) {
	form := url.Values{}
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", p.redirectURL)

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperr.Upstream("identity provider", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if err := p.doJSON(req, &tokenResp); err != nil {
		return nil, err
	}
	if tokenResp.AccessToken == "" {
		return nil, apperr.Upstream("identity provider", errors.New("empty access token"))
	}

	var userInfo struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, apperr.Upstream("identity provider", err)
	}
	req.Header.Set("Authorization", "Bearer "+tokenResp.AccessToken)
	if err := p.doJSON(req, &userInfo); err != nil {
		return nil, err
	}
	if userInfo.ID == "" {
		return nil, apperr.Upstream("identity provider", errors.New("missing user id"))
	}
	return &Identity{
		ExternalID: userInfo.ID,
		Email:      userInfo.Email,
		Name:       userInfo.Name,
		AvatarURL:  userInfo.Picture,
	}, nil
}

func (p *Provider) doJSON(req *http.Request, out interface{}) error {
	resp, err := p.client.Do(req)
	if err != nil {
		return apperr.Upstream("identity provider", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apperr.Upstream("identity provider", errors.New(resp.Status))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Upstream("identity provider", err)
	}
	return nil
}
