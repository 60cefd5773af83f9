package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/lib/safe"
	"github.com/quintans/noovo/internal/model"
)

type Deps struct {
	Login     app.LoginAPI
	Catalog   app.CatalogAPI
	Packaging app.PackagingAPI
	Repo      Repository
	Tables    app.Tables
	Language  model.Language
	Now       func() time.Time
}

// Noovo is the platform: authentication, browsing, resolution and playback.
type Noovo struct {
	login    app.LoginAPI
	auth     *Auth
	catalog  *Catalog
	resolver *Resolver
	playback *Playback
	account  *safe.Safe[*model.Account]
}

// NewNoovo restores the persisted state, adopting creds when they differ from it,
// and fetches the account when a login is possible.
func NewNoovo(ctx context.Context, deps Deps, creds model.Credentials) *Noovo {
	auth := NewAuth(deps.Login, deps.Repo, deps.Tables, deps.Now)
	n := &Noovo{
		login:    deps.Login,
		auth:     auth,
		catalog:  NewCatalog(deps.Catalog, auth, deps.Language),
		resolver: NewResolver(deps.Catalog, auth, deps.Language),
		playback: NewPlayback(deps.Packaging, auth),
		account:  safe.New[*model.Account](nil),
	}

	auth.Restore(ctx, creds)
	if auth.EnsureLogin(ctx, false) {
		n.refreshAccount(ctx)
	}
	return n
}

func (n *Noovo) Auth() *Auth {
	return n.auth
}

// Login logs in with new credentials. An empty site keeps the current or configured one.
func (n *Noovo) Login(ctx context.Context, username, password, site string) bool {
	if !n.auth.Login(ctx, username, password, site) {
		n.account.Set(nil)
		return false
	}
	return n.refreshAccount(ctx)
}

func (n *Noovo) Logout(ctx context.Context) {
	n.auth.Logout(ctx)
	n.account.Set(nil)
}

func (n *Noovo) EnsureLogin(ctx context.Context, forceRefresh bool) bool {
	return n.auth.EnsureLogin(ctx, forceRefresh)
}

// Account returns the cached account, fetching it when missing.
func (n *Noovo) Account(ctx context.Context) (*model.Account, error) {
	if a := n.account.Get(); a != nil {
		return a, nil
	}
	a, err := Account(ctx, n.login, n.auth)
	if err != nil {
		return nil, err
	}
	n.account.Set(a)
	return a, nil
}

func (n *Noovo) refreshAccount(ctx context.Context) bool {
	a, err := Account(ctx, n.login, n.auth)
	if err != nil {
		slog.Warn("Unable to get account infos", "error", err)
		n.account.Set(nil)
		return false
	}
	n.account.Set(a)
	return true
}

func (n *Noovo) RootCategories(ctx context.Context) ([]model.Element, error) {
	return n.catalog.RootCategories(ctx)
}

func (n *Noovo) Elements(ctx context.Context, category *model.Category) ([]model.Element, error) {
	return n.catalog.Elements(ctx, category)
}

func (n *Noovo) Search(ctx context.Context, text string) ([]model.SearchResult, error) {
	return n.resolver.Search(ctx, text)
}

func (n *Noovo) ResultInfos(ctx context.Context, result model.SearchResult) (map[string]*model.ResultInfo, error) {
	return n.resolver.ResultInfos(ctx, result)
}

func (n *Noovo) ResultInfosByID(ctx context.Context, id string) (map[string]*model.ResultInfo, error) {
	return n.resolver.ResultInfosByID(ctx, id)
}

func (n *Noovo) PlayInfos(ctx context.Context, media *model.Media) (*model.PlayInfos, error) {
	return n.playback.PlayInfos(ctx, media)
}

func (n *Noovo) ResultPlayInfos(ctx context.Context, info *model.ResultInfo, season, episode int) (*model.PlayInfos, error) {
	return n.playback.ResultPlayInfos(ctx, info, season, episode)
}
