package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/quintans/faults"
	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/lib/https"
	"github.com/quintans/noovo/internal/model"
)

const (
	loginKey   = "login.json"
	sessionKey = "session.json"

	// ExpiryLayout is how the token expiry is persisted, in local time.
	ExpiryLayout = "2006/01/02 15:04:05"
)

// DB persists the login state and the session cookies.
// Every save rewrites the whole blob and a blob that cannot be decoded is dropped.
type DB struct {
	store Store
}

func NewDB(store Store) *DB {
	return &DB{store: store}
}

type Login struct {
	Username      string   `json:"username"`
	Password      string   `json:"password"`
	Site          string   `json:"site"`
	ProfileID     string   `json:"profile_id"`
	AccessToken   string   `json:"access_token"`
	RefreshToken  string   `json:"refresh_token"`
	Expiry        string   `json:"expiry"`
	Subscriptions []string `json:"subscriptions"`
	Scopes        []string `json:"scopes"`
	Packages      []string `json:"packages"`
}

// LoadLogin returns nil when nothing usable is persisted.
func (d *DB) LoadLogin(ctx context.Context) (*model.Login, error) {
	var l Login
	found, err := d.read(ctx, loginKey, &l)
	if err != nil || !found {
		return nil, err
	}

	login := &model.Login{
		Credentials: model.Credentials{
			Username: l.Username,
			Password: l.Password,
			Site:     l.Site,
		},
		Token: model.TokenState{
			AccessToken:  l.AccessToken,
			RefreshToken: l.RefreshToken,
			ProfileID:    l.ProfileID,
			Entitlements: model.Entitlements{
				Scopes:        l.Scopes,
				Subscriptions: l.Subscriptions,
				Packages:      l.Packages,
			},
		},
	}

	if l.Expiry != "" {
		expiry, err := time.ParseInLocation(ExpiryLayout, l.Expiry, time.Local)
		if err != nil {
			slog.Warn("Ignoring invalid persisted expiry", "expiry", l.Expiry, "error", err)
		} else {
			login.Token.Expiry = expiry
		}
	}

	// a token without expiry cannot be trusted
	if login.Token.AccessToken != "" && login.Token.Expiry.IsZero() {
		login.Token = model.TokenState{}
	}

	return login, nil
}

func (d *DB) SaveLogin(ctx context.Context, login *model.Login) error {
	l := Login{
		Username:      login.Username,
		Password:      login.Password,
		Site:          login.Site,
		ProfileID:     login.Token.ProfileID,
		AccessToken:   login.Token.AccessToken,
		RefreshToken:  login.Token.RefreshToken,
		Subscriptions: login.Token.Subscriptions,
		Scopes:        login.Token.Scopes,
		Packages:      login.Token.Packages,
	}
	if !login.Token.Expiry.IsZero() {
		l.Expiry = login.Token.Expiry.In(time.Local).Format(ExpiryLayout)
	}

	if err := d.write(ctx, loginKey, l); err != nil {
		return faults.Errorf("saving login: %w", err)
	}
	return nil
}

func (d *DB) LoadCookies(ctx context.Context) ([]https.Cookie, error) {
	var cookies []https.Cookie
	found, err := d.read(ctx, sessionKey, &cookies)
	if err != nil || !found {
		return nil, err
	}
	return cookies, nil
}

func (d *DB) SaveCookies(ctx context.Context, cookies []https.Cookie) error {
	if err := d.write(ctx, sessionKey, cookies); err != nil {
		return faults.Errorf("saving cookies: %w", err)
	}
	return nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.store.Ping(ctx)
}

func (d *DB) write(ctx context.Context, key string, data any) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return faults.Errorf("marshalling data for '%s': %w", key, err)
	}

	if err := d.store.Save(ctx, key, b); err != nil {
		return faults.Errorf("writing '%s': %w", key, err)
	}

	return nil
}

func (d *DB) read(ctx context.Context, key string, data any) (bool, error) {
	b, err := d.store.Load(ctx, key)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			return false, nil
		}
		return false, faults.Errorf("reading '%s': %w", key, err)
	}

	if err := json.Unmarshal(b, data); err != nil {
		slog.Warn("Discarding corrupt blob", "key", key, "error", err)
		d.drop(ctx, key)
		return false, nil
	}

	return true, nil
}

func (d *DB) drop(ctx context.Context, key string) {
	if err := d.store.Delete(ctx, key); err != nil {
		slog.Error("Failed to delete blob", "key", key, "error", err)
	}
}
