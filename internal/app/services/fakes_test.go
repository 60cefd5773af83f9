package services

import (
	"context"
	"sync"

	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/lib/fails"
	"github.com/quintans/noovo/internal/model"
	"github.com/tidwall/gjson"
)

type memRepo struct {
	login *model.Login
	saves int
}

func (r *memRepo) LoadLogin(context.Context) (*model.Login, error) {
	if r.login == nil {
		return nil, nil
	}
	l := *r.login
	return &l, nil
}

func (r *memRepo) SaveLogin(_ context.Context, login *model.Login) error {
	l := *login
	r.login = &l
	r.saves++
	return nil
}

type fakeLogin struct {
	calls []string
	sites []string

	refresh      app.TokenResponse
	refreshErr   error
	password     app.TokenResponse
	passwordErr  error
	magic        string
	magicErr     error
	magicLogin   app.TokenResponse
	magicLoginEr error
	profiles     []model.Profile
	profilesErr  error
}

func (f *fakeLogin) Refresh(context.Context, string, string, string) (app.TokenResponse, error) {
	f.calls = append(f.calls, "refresh")
	return f.refresh, f.refreshErr
}

func (f *fakeLogin) PasswordLogin(_ context.Context, site, _, _ string) (app.TokenResponse, error) {
	f.calls = append(f.calls, "password")
	f.sites = append(f.sites, site)
	return f.password, f.passwordErr
}

func (f *fakeLogin) GenerateMagicToken(context.Context, string, string) (string, error) {
	f.calls = append(f.calls, "magic")
	return f.magic, f.magicErr
}

func (f *fakeLogin) MagicLogin(context.Context, string, string) (app.TokenResponse, error) {
	f.calls = append(f.calls, "magic-login")
	return f.magicLogin, f.magicLoginEr
}

func (f *fakeLogin) Profiles(context.Context, string) ([]model.Profile, error) {
	f.calls = append(f.calls, "profiles")
	return f.profiles, f.profilesErr
}

// fakeCatalog answers every operation from a canned JSON document keyed by "<op>:<id>:<playbackLanguage>".
// A missing key is a transport failure.
type fakeCatalog struct {
	mu        sync.Mutex
	responses map[string]string
	calls     []string
	contexts  []app.QueryContext
}

func (f *fakeCatalog) answer(op, id string, qc app.QueryContext) (gjson.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, op+":"+id)
	f.contexts = append(f.contexts, qc)
	for _, key := range []string{op + ":" + id + ":" + string(qc.PlaybackLanguage), op + ":" + id} {
		if raw, ok := f.responses[key]; ok {
			return gjson.Parse(raw), nil
		}
	}
	return gjson.Result{}, app.StatusError(op, 500)
}

func (f *fakeCatalog) ApplicationScreens(_ context.Context, qc app.QueryContext) (gjson.Result, error) {
	return f.answer("app", "", qc)
}

func (f *fakeCatalog) Screen(_ context.Context, qc app.QueryContext, id string) (gjson.Result, error) {
	return f.answer("screen", id, qc)
}

func (f *fakeCatalog) Grid(_ context.Context, qc app.QueryContext, id string) (gjson.Result, error) {
	return f.answer("grid", id, qc)
}

func (f *fakeCatalog) Rotator(_ context.Context, qc app.QueryContext, id string) (gjson.Result, error) {
	return f.answer("rotator", id, qc)
}

func (f *fakeCatalog) SearchMedia(_ context.Context, qc app.QueryContext, term string) (gjson.Result, error) {
	return f.answer("search", term, qc)
}

func (f *fakeCatalog) AxisMedia(_ context.Context, qc app.QueryContext, id string) (gjson.Result, error) {
	return f.answer("media", id, qc)
}

func (f *fakeCatalog) AxisSeason(_ context.Context, qc app.QueryContext, id string) (gjson.Result, error) {
	return f.answer("season", id, qc)
}

type fakePackaging struct {
	requests []app.PlayRequest
	err      error
}

func (f *fakePackaging) PlayInfos(_ context.Context, req app.PlayRequest) (*model.PlayInfos, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return model.NewPlayInfos("manifest/"+req.ID, "subtitles/"+req.ID, "", nil, nil), nil
}

// fakeSession is a logged in session with fixed entitlements.
type fakeSession struct {
	loggedIn     bool
	entitlements model.Entitlements
	ensureCalls  int
}

func (s *fakeSession) EnsureLogin(context.Context, bool) bool {
	s.ensureCalls++
	return s.loggedIn
}

func (s *fakeSession) Entitlements() model.Entitlements {
	return s.entitlements
}

func (s *fakeSession) AccessToken() string {
	if !s.loggedIn {
		return ""
	}
	return "access"
}

var errBoom = fails.NewWithErr(app.ErrTransport, "boom")
