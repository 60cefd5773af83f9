package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/gateways/repository"
	"github.com/quintans/noovo/internal/lib/https"
	"github.com/quintans/noovo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*repository.DB, repository.Store) {
	store, err := repository.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	return repository.NewDB(store), store
}

func TestDB_LoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, store := newDB(t)

	expiry := time.Date(2026, 10, 16, 20, 30, 0, 0, time.Local)
	login := &model.Login{
		Credentials: model.Credentials{Username: "me@example.com", Password: "secret", Site: "bell"},
		Token: model.TokenState{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ProfileID:    "p1",
			Expiry:       expiry,
			Entitlements: model.Entitlements{
				Scopes:        []string{"noovo", "ztele"},
				Subscriptions: []string{"NOOVO", "Z"},
				Packages:      []string{"z_hub"},
			},
		},
	}
	require.NoError(t, db.SaveLogin(ctx, login))

	raw, err := store.Load(ctx, "login.json")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"expiry": "2026/10/16 20:30:00"`)

	got, err := db.LoadLogin(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, login.Credentials, got.Credentials)
	assert.True(t, expiry.Equal(got.Token.Expiry))
	assert.Equal(t, login.Token.Entitlements, got.Token.Entitlements)
	assert.Equal(t, "p1", got.Token.ProfileID)
}

func TestDB_LoadLoginMissing(t *testing.T) {
	db, _ := newDB(t)

	got, err := db.LoadLogin(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDB_CorruptLoginIsDropped(t *testing.T) {
	ctx := context.Background()
	db, store := newDB(t)
	require.NoError(t, store.Save(ctx, "login.json", []byte("{not json")))

	got, err := db.LoadLogin(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = store.Load(ctx, "login.json")
	assert.ErrorIs(t, err, app.ErrNotFound)
}

func TestDB_InvalidExpiryDropsToken(t *testing.T) {
	ctx := context.Background()
	db, store := newDB(t)
	require.NoError(t, store.Save(ctx, "login.json", []byte(`{"username":"a","password":"b","site":"bell","access_token":"x","refresh_token":"y","expiry":"tomorrow"}`)))

	got, err := db.LoadLogin(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.Credentials{Username: "a", Password: "b", Site: "bell"}, got.Credentials)
	assert.Equal(t, model.TokenState{}, got.Token)
}

func TestDB_TokenWithoutExpiryIsIgnored(t *testing.T) {
	ctx := context.Background()
	db, store := newDB(t)
	require.NoError(t, store.Save(ctx, "login.json", []byte(`{"username":"a","password":"b","site":"bell","access_token":"x","expiry":""}`)))

	got, err := db.LoadLogin(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.Username)
	assert.Empty(t, got.Token.AccessToken)
}

func TestDB_Cookies(t *testing.T) {
	ctx := context.Background()
	db, store := newDB(t)

	cookies, err := db.LoadCookies(ctx)
	require.NoError(t, err)
	assert.Empty(t, cookies)

	want := []https.Cookie{{
		URL:     "https://account.bellmedia.ca/api",
		Name:    "sid",
		Value:   "42",
		Path:    "/api",
		Domain:  "bellmedia.ca",
		Expires: time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC),
	}}
	require.NoError(t, db.SaveCookies(ctx, want))

	cookies, err = db.LoadCookies(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, cookies)

	require.NoError(t, store.Save(ctx, "session.json", []byte("garbage")))
	cookies, err = db.LoadCookies(ctx)
	require.NoError(t, err)
	assert.Nil(t, cookies)
}
