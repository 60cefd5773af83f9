// Package bellmedia talks to the Bell Media account APIs: the login exchanges and the profiles.
package bellmedia

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/lib/fails"
	"github.com/quintans/noovo/internal/lib/https"
	"github.com/quintans/noovo/internal/model"
	"github.com/tidwall/gjson"
)

type Option func(*Client)

func WithSites(sites map[string]Site) Option {
	return func(c *Client) {
		c.sites = sites
	}
}

func WithProfileURL(url string) Option {
	return func(c *Client) {
		c.profileURL = url
	}
}

type Client struct {
	doer       https.Doer
	sites      map[string]Site
	profileURL string
}

func New(doer https.Doer, options ...Option) *Client {
	c := &Client{
		doer:       doer,
		sites:      Sites(),
		profileURL: BaseURL + "/api/profile/v1.1",
	}
	for _, o := range options {
		o(c)
	}
	return c
}

func (c *Client) site(site string) (Site, error) {
	s, ok := c.sites[site]
	if !ok {
		return Site{}, fails.NewWithErr(app.ErrAuth, "unknown login site", "site", site)
	}
	return s, nil
}

func (c *Client) Refresh(ctx context.Context, site, refreshToken, profileID string) (app.TokenResponse, error) {
	s, err := c.site(site)
	if err != nil {
		return app.TokenResponse{}, err
	}

	return c.token(ctx, s.Refresh, url.Values{
		"refresh_token": {refreshToken},
		"profile_id":    {profileID},
	})
}

func (c *Client) PasswordLogin(ctx context.Context, site, username, password string) (app.TokenResponse, error) {
	s, err := c.site(site)
	if err != nil {
		return app.TokenResponse{}, err
	}

	resp, err := c.post(ctx, s.Login, url.Values{
		"username":    {username},
		"password":    {password},
		"grant_type":  {"bdu_password"},
		"provider_id": {"urn:bell:ca:idp:prod"},
	})
	if err != nil {
		return app.TokenResponse{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return app.TokenResponse{}, app.StatusError(s.Login.URL, resp.StatusCode)
	}

	// only the access token matters at this stage
	token := resp.Result().Get("access_token")
	if token.Type != gjson.String || token.String() == "" {
		return app.TokenResponse{}, fails.NewWithErr(app.ErrParse, "missing access token", "url", s.Login.URL)
	}
	return app.TokenResponse{AccessToken: token.String()}, nil
}

// GenerateMagicToken returns the one time token exchanged by MagicLogin.
func (c *Client) GenerateMagicToken(ctx context.Context, site, accessToken string) (string, error) {
	s, err := c.site(site)
	if err != nil {
		return "", err
	}

	ep := Endpoint{URL: s.Magic.URL, Header: s.Magic.Header.Clone()}
	ep.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.post(ctx, ep, nil)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", app.StatusError(ep.URL, resp.StatusCode)
	}

	return strings.ReplaceAll(string(resp.Body), "==", ""), nil
}

func (c *Client) MagicLogin(ctx context.Context, site, magicToken string) (app.TokenResponse, error) {
	s, err := c.site(site)
	if err != nil {
		return app.TokenResponse{}, err
	}

	return c.token(ctx, s.MagicLogin, url.Values{
		"magic_link_token": {magicToken},
	})
}

func (c *Client) Profiles(ctx context.Context, accessToken string) ([]model.Profile, error) {
	resp, err := c.doer.Do(ctx, &https.Request{
		Method: http.MethodGet,
		URL:    c.profileURL,
		Header: http.Header{
			"Authorization": {"Bearer " + accessToken},
			"User-Agent":    {appAgent},
		},
	})
	if err != nil {
		return nil, app.TransportError(err, "requesting profiles", "url", c.profileURL)
	}
	if !resp.OK() {
		return nil, app.StatusError(c.profileURL, resp.StatusCode)
	}

	result := resp.Result()
	if !result.IsArray() {
		return nil, fails.NewWithErr(app.ErrParse, "profiles is not a list", "url", c.profileURL)
	}

	var profiles []model.Profile
	for _, p := range result.Array() {
		profiles = append(profiles, model.Profile{
			ID:        p.Get("id").String(),
			Nickname:  p.Get("nickname").String(),
			AvatarURL: p.Get("avatarUrl").String(),
		})
	}
	return profiles, nil
}

// token posts a form and decodes the token response. Anything but a 200 is a failure.
func (c *Client) token(ctx context.Context, ep Endpoint, form url.Values) (app.TokenResponse, error) {
	resp, err := c.post(ctx, ep, form)
	if err != nil {
		return app.TokenResponse{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return app.TokenResponse{}, app.StatusError(ep.URL, resp.StatusCode)
	}

	return ParseToken(resp.Body)
}

func (c *Client) post(ctx context.Context, ep Endpoint, form url.Values) (*https.Response, error) {
	if form == nil {
		form = url.Values{}
	}
	resp, err := c.doer.Do(ctx, &https.Request{
		Method: http.MethodPost,
		URL:    ep.URL,
		Header: ep.Header,
		Form:   form,
	})
	if err != nil {
		return nil, app.TransportError(err, "posting login form", "url", ep.URL)
	}
	return resp, nil
}

// ParseToken decodes a login response. The access token, the refresh token, the TTL
// and the scope are mandatory.
func ParseToken(body []byte) (app.TokenResponse, error) {
	if !gjson.ValidBytes(body) {
		return app.TokenResponse{}, fails.NewWithErr(app.ErrParse, "invalid token response")
	}

	r := gjson.ParseBytes(body)
	access := r.Get("access_token")
	refresh := r.Get("refresh_token")
	expiresIn := r.Get("expires_in")
	scope := r.Get("scope")
	if access.String() == "" || refresh.String() == "" || expiresIn.Type != gjson.Number || !scope.Exists() {
		return app.TokenResponse{}, fails.NewWithErr(app.ErrParse, "incomplete token response",
			"access_token", access.Exists(),
			"refresh_token", refresh.Exists(),
			"expires_in", expiresIn.Exists(),
			"scope", scope.Exists(),
		)
	}

	return app.TokenResponse{
		AccessToken:  access.String(),
		RefreshToken: refresh.String(),
		ProfileID:    r.Get("profile_id").String(),
		ExpiresIn:    int(expiresIn.Int()),
		Scope:        scope.String(),
	}, nil
}
