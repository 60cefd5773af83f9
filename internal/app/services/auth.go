package services

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/quintans/faults"
	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/lib/fails"
	"github.com/quintans/noovo/internal/model"
)

// Auth owns the credentials and the token lifecycle.
// Every transition is persisted and any failure resets the state as a whole.
type Auth struct {
	api    app.LoginAPI
	repo   Repository
	tables app.Tables
	now    func() time.Time

	mu sync.Mutex

	// site is the configured default used when no site is known.
	site  string
	login model.Login
}

func NewAuth(api app.LoginAPI, repo Repository, tables app.Tables, now func() time.Time) *Auth {
	if now == nil {
		now = time.Now
	}
	return &Auth{
		api:    api,
		repo:   repo,
		tables: tables,
		now:    now,
	}
}

// Restore loads the persisted state. Supplied credentials that differ from the persisted
// ones replace them and discard the tokens. A supplied site alone becomes the default site.
func (a *Auth) Restore(ctx context.Context, creds model.Credentials) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if creds.Site != "" {
		a.site = creds.Site
	}

	persisted, err := a.repo.LoadLogin(ctx)
	if err != nil {
		slog.Warn("Failed to load login state", "error", err)
	}
	if persisted != nil {
		a.login = *persisted
	}
	if a.login.Site == "" {
		a.login.Site = a.site
	}

	if !creds.Complete() || creds == a.login.Credentials {
		return
	}

	slog.Debug("Credentials changed, discarding tokens", "username", creds.Username, "site", creds.Site)
	a.login = model.Login{Credentials: creds}
	a.persist(ctx)
}

// Login replaces the credentials and forces a new token.
// An empty site keeps the current one, falling back to the default site.
func (a *Auth) Login(ctx context.Context, username, password, site string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.login = model.Login{
		Credentials: model.Credentials{
			Username: username,
			Password: password,
			Site:     cmp.Or(site, a.login.Site, a.site),
		},
	}
	return a.ensureLogin(ctx, true)
}

func (a *Auth) Logout(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	slog.Debug("Logging out")
	a.login = model.Login{}
	a.persist(ctx)
}

// EnsureLogin makes sure a usable token is held, refreshing it when needed.
// A valid token is returned as is, without any network call, unless forceRefresh is set.
func (a *Auth) EnsureLogin(ctx context.Context, forceRefresh bool) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.ensureLogin(ctx, forceRefresh)
}

func (a *Auth) ensureLogin(ctx context.Context, forceRefresh bool) bool {
	if !a.login.Credentials.Complete() {
		err := fails.NewWithErr(app.ErrAuth, "missing credentials", "site", a.login.Site)
		slog.Info("Cannot ensure login", "error", err)
		a.login = model.Login{Credentials: model.Credentials{Site: a.login.Site}}
		a.persist(ctx)
		return false
	}

	if !forceRefresh && a.login.Token.Valid(a.now()) {
		return true
	}

	tr, err := a.obtain(ctx)
	if err != nil {
		slog.Info("Login failed", "username", a.login.Username, "site", a.login.Site, "error", err)
		a.reset(ctx)
		return false
	}

	token, err := a.parse(ctx, tr)
	if err != nil {
		slog.Info("Refresh/login response invalid", "error", err)
		a.reset(ctx)
		return false
	}

	a.login.Token = token
	a.persist(ctx)
	slog.Debug("New token acquired", "expiry", token.Expiry.Format(time.DateTime), "in", humanize.Time(token.Expiry))

	return true
}

// obtain tries the refresh token once then the full password login chain once.
func (a *Auth) obtain(ctx context.Context) (app.TokenResponse, error) {
	site := a.login.Site

	if a.login.Token.RefreshToken != "" && a.login.Token.ProfileID != "" {
		slog.Debug("Refreshing token")
		tr, err := a.api.Refresh(ctx, site, a.login.Token.RefreshToken, a.login.Token.ProfileID)
		if err == nil {
			return tr, nil
		}
		if errors.Is(err, app.ErrParse) {
			return app.TokenResponse{}, err
		}
		slog.Debug("Refreshing token failed", "error", err)
	}

	slog.Debug("Trying username/password login")
	base, err := a.api.PasswordLogin(ctx, site, a.login.Username, a.login.Password)
	if err != nil {
		return app.TokenResponse{}, faults.Errorf("password login: %w", err)
	}

	magic, err := a.api.GenerateMagicToken(ctx, site, base.AccessToken)
	if err != nil {
		return app.TokenResponse{}, faults.Errorf("generating magic token: %w", err)
	}

	tr, err := a.api.MagicLogin(ctx, site, magic)
	if err != nil {
		return app.TokenResponse{}, faults.Errorf("magic token login: %w", err)
	}

	return tr, nil
}

func (a *Auth) parse(ctx context.Context, tr app.TokenResponse) (model.TokenState, error) {
	if tr.AccessToken == "" || tr.RefreshToken == "" {
		return model.TokenState{}, fails.NewWithErr(app.ErrParse, "missing tokens")
	}

	profileID := tr.ProfileID
	if profileID == "" {
		profiles, err := a.api.Profiles(ctx, tr.AccessToken)
		if err != nil {
			return model.TokenState{}, faults.Errorf("fetching profile id: %w", err)
		}
		if len(profiles) == 0 || profiles[0].ID == "" {
			return model.TokenState{}, fails.NewWithErr(app.ErrParse, "no profile")
		}
		profileID = profiles[0].ID
	}

	return model.TokenState{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ProfileID:    profileID,
		Expiry:       a.now().Add(time.Duration(tr.ExpiresIn) * time.Second),
		Entitlements: a.tables.Entitlements(model.ParseScopes(tr.Scope)),
	}, nil
}

// reset drops the credentials together with every token.
func (a *Auth) reset(ctx context.Context) {
	a.login = model.Login{}
	a.persist(ctx)
}

func (a *Auth) persist(ctx context.Context) {
	login := a.login
	if err := a.repo.SaveLogin(ctx, &login); err != nil {
		slog.Error("Failed to persist login state", "error", err)
	}
}

func (a *Auth) Entitlements() model.Entitlements {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.login.Token.Entitlements.Clone()
}

func (a *Auth) AccessToken() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.login.Token.AccessToken
}

func (a *Auth) ProfileID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.login.Token.ProfileID
}

func (a *Auth) Expiry() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.login.Token.Expiry
}

func (a *Auth) Credentials() model.Credentials {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.login.Credentials
}
