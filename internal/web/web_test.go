package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/app/services"
	"github.com/quintans/noovo/internal/gateways/repository"
	"github.com/quintans/noovo/internal/lib/fails"
	"github.com/quintans/noovo/internal/model"
	"github.com/quintans/noovo/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlatform struct {
	loginOK    bool
	site       string
	loggedOut  bool
	category   *model.Category
	searched   string
	played     *model.Media
	season     int
	episode    int
	infos      map[string]*model.ResultInfo
	elementErr error
}

func (f *fakePlatform) Login(_ context.Context, username, password, site string) bool {
	f.site = site
	return f.loginOK && username == "john" && password == "secret"
}

func (f *fakePlatform) Logout(context.Context) {
	f.loggedOut = true
}

func (f *fakePlatform) EnsureLogin(context.Context, bool) bool {
	return f.loginOK
}

func (f *fakePlatform) Account(context.Context) (*model.Account, error) {
	if !f.loginOK {
		return nil, fails.NewWithErr(app.ErrAuth, "not logged in")
	}
	return &model.Account{Name: "John"}, nil
}

func (f *fakePlatform) RootCategories(context.Context) ([]model.Element, error) {
	return []model.Element{
		model.CategoryElement(model.Category{Kind: model.CategoryScreen, Title: "Séries", ID: "series"}),
		model.ResultElement(model.SearchResult{Title: "Roast", ID: "r1"}),
	}, nil
}

func (f *fakePlatform) Elements(_ context.Context, c *model.Category) ([]model.Element, error) {
	f.category = c
	return []model.Element{}, f.elementErr
}

func (f *fakePlatform) Search(_ context.Context, text string) ([]model.SearchResult, error) {
	f.searched = text
	return []model.SearchResult{{Title: "Roast", ID: "r1"}}, nil
}

func (f *fakePlatform) ResultInfosByID(_ context.Context, id string) (map[string]*model.ResultInfo, error) {
	if f.infos == nil {
		return nil, fails.NewWithErr(app.ErrParse, "no version", "id", id)
	}
	return f.infos, nil
}

func (f *fakePlatform) PlayInfos(_ context.Context, m *model.Media) (*model.PlayInfos, error) {
	f.played = m
	return model.NewPlayInfos("http://manifest", "", "", nil, nil), nil
}

func (f *fakePlatform) ResultPlayInfos(_ context.Context, _ *model.ResultInfo, season, episode int) (*model.PlayInfos, error) {
	f.season, f.episode = season, episode
	return model.NewPlayInfos("http://manifest", "", "", nil, nil), nil
}

type pinger struct {
	err error
}

func (p pinger) Ping(context.Context) error {
	return p.err
}

func newServer(t *testing.T, p *fakePlatform, store pinger) *httptest.Server {
	srv := httptest.NewServer(web.NewServer(p, store, io.Discard).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string, v any) int {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestHealthcheck(t *testing.T) {
	srv := newServer(t, &fakePlatform{}, pinger{})
	assert.Equal(t, http.StatusOK, get(t, srv.URL+"/healthcheck", nil))

	down := newServer(t, &fakePlatform{}, pinger{err: errors.New("down")})
	assert.Equal(t, http.StatusServiceUnavailable, get(t, down.URL+"/healthcheck", nil))
}

func TestCategoriesHaveHandles(t *testing.T) {
	p := &fakePlatform{}
	srv := newServer(t, p, pinger{})

	var out []struct {
		Category *model.Category     `json:"category"`
		Result   *model.SearchResult `json:"result"`
		Handle   string              `json:"handle"`
	}
	require.Equal(t, http.StatusOK, get(t, srv.URL+"/categories", &out))
	require.Len(t, out, 2)
	assert.Equal(t, "series", out[0].Category.ID)
	assert.Equal(t, srv.URL+"/results/r1", out[1].Handle)

	status := get(t, out[0].Handle, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, &model.Category{Kind: model.CategoryScreen, ID: "series"}, p.category)
}

func TestElements_InvalidCategory(t *testing.T) {
	srv := newServer(t, &fakePlatform{}, pinger{})
	assert.Equal(t, http.StatusNotFound, get(t, srv.URL+"/elements?type=nope&id=1", nil))
}

func TestElements_TransportErrorIsBadGateway(t *testing.T) {
	p := &fakePlatform{elementErr: app.StatusError("grid", 500)}
	srv := newServer(t, p, pinger{})

	var out map[string]string
	assert.Equal(t, http.StatusBadGateway, get(t, srv.URL+"/elements?type=grid&id=g1", &out))
	assert.NotEmpty(t, out["error"])
}

func TestSearch(t *testing.T) {
	p := &fakePlatform{}
	srv := newServer(t, p, pinger{})

	require.Equal(t, http.StatusOK, get(t, srv.URL+"/search?q="+url.QueryEscape("le roast"), nil))
	assert.Equal(t, "le roast", p.searched)
}

func TestPlay(t *testing.T) {
	p := &fakePlatform{}
	srv := newServer(t, p, pinger{})

	m := model.NewMovie()
	m.PlayID = "42"
	m.PlaybackLanguages = []string{"fr"}
	m.SetDestination("noovo_hub")

	var out map[string]any
	require.Equal(t, http.StatusOK, get(t, srv.URL+"/play?handle="+url.QueryEscape(m.ToURL("")), &out))
	assert.Equal(t, "http://manifest", out["manifest_url"])
	assert.Equal(t, "42", p.played.PlayID)
	assert.Equal(t, "noovo_hub", p.played.Destination())
}

func TestResultPlay(t *testing.T) {
	p := &fakePlatform{infos: map[string]*model.ResultInfo{"fr": model.NewSerieInfo()}}
	srv := newServer(t, p, pinger{})

	require.Equal(t, http.StatusOK, get(t, srv.URL+"/results/s1/fr/play?season=2&episode=3", nil))
	assert.Equal(t, 2, p.season)
	assert.Equal(t, 3, p.episode)

	assert.Equal(t, http.StatusNotFound, get(t, srv.URL+"/results/s1/en/play", nil))
}

func TestLogin(t *testing.T) {
	p := &fakePlatform{loginOK: true}
	srv := newServer(t, p, pinger{})

	resp, err := http.PostForm(srv.URL+"/login", url.Values{"username": {"john"}, "password": {"secret"}, "site": {"ctv"}})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ctv", p.site)

	resp2, err := http.Post(srv.URL+"/login", "application/x-www-form-urlencoded", strings.NewReader("username=john&password=bad"))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestLogout(t *testing.T) {
	p := &fakePlatform{}
	srv := newServer(t, p, pinger{})

	resp, err := http.Post(srv.URL+"/logout", "", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.True(t, p.loggedOut)
}

// stubLogin accepts john/secret on any site.
type stubLogin struct {
	sites []string
}

func (s *stubLogin) token() app.TokenResponse {
	return app.TokenResponse{
		AccessToken:  "tok",
		RefreshToken: "refresh",
		ProfileID:    "p1",
		ExpiresIn:    7200,
		Scope:        "subscription:noovo",
	}
}

func (s *stubLogin) Refresh(context.Context, string, string, string) (app.TokenResponse, error) {
	return app.TokenResponse{}, app.ErrTransport
}

func (s *stubLogin) PasswordLogin(_ context.Context, site, username, password string) (app.TokenResponse, error) {
	s.sites = append(s.sites, site)
	if username != "john" || password != "secret" {
		return app.TokenResponse{}, app.ErrAuth
	}
	return s.token(), nil
}

func (s *stubLogin) GenerateMagicToken(context.Context, string, string) (string, error) {
	return "magic", nil
}

func (s *stubLogin) MagicLogin(context.Context, string, string) (app.TokenResponse, error) {
	return s.token(), nil
}

func (s *stubLogin) Profiles(context.Context, string) ([]model.Profile, error) {
	return []model.Profile{{ID: "p1", Nickname: "John"}}, nil
}

func TestLogin_FreshPlatform(t *testing.T) {
	store, err := repository.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	login := &stubLogin{}
	noovo := services.NewNoovo(context.Background(), services.Deps{
		Login:  login,
		Repo:   repository.NewDB(store),
		Tables: app.DefaultTables(),
	}, model.Credentials{Site: "bell"})

	srv := httptest.NewServer(web.NewServer(noovo, store, io.Discard).Handler())
	t.Cleanup(srv.Close)

	assert.Equal(t, http.StatusUnauthorized, get(t, srv.URL+"/account", nil))

	resp, err := http.PostForm(srv.URL+"/login", url.Values{"username": {"john"}, "password": {"bad"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.PostForm(srv.URL+"/login", url.Values{"username": {"john"}, "password": {"secret"}})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var account model.Account
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&account))
	assert.Equal(t, "John", account.Name)
	assert.Equal(t, []string{"bell", "bell"}, login.sites)
}
