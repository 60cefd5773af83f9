package app

import (
	"context"

	"github.com/quintans/noovo/internal/model"
	"github.com/tidwall/gjson"
)

// TokenResponse is a successful answer of any of the login exchanges.
type TokenResponse struct {
	AccessToken  string
	RefreshToken string
	ProfileID    string
	ExpiresIn    int
	Scope        string
}

// LoginAPI is the site specific login protocol.
// Non 2xx responses are reported as ErrTransport and malformed ones as ErrParse.
type LoginAPI interface {
	Refresh(ctx context.Context, site, refreshToken, profileID string) (TokenResponse, error)
	PasswordLogin(ctx context.Context, site, username, password string) (TokenResponse, error)
	GenerateMagicToken(ctx context.Context, site, accessToken string) (string, error)
	MagicLogin(ctx context.Context, site, magicToken string) (TokenResponse, error)
	Profiles(ctx context.Context, accessToken string) ([]model.Profile, error)
}

// QueryContext is injected into every catalog query.
type QueryContext struct {
	Subscriptions []string
	// Language is the metadata language.
	Language model.Language
	// PlaybackLanguage selects the audio version.
	PlaybackLanguage model.Language
}

// CatalogAPI runs the remote queries. Each call returns the operation's data root.
type CatalogAPI interface {
	ApplicationScreens(ctx context.Context, qc QueryContext) (gjson.Result, error)
	Screen(ctx context.Context, qc QueryContext, id string) (gjson.Result, error)
	Grid(ctx context.Context, qc QueryContext, id string) (gjson.Result, error)
	Rotator(ctx context.Context, qc QueryContext, id string) (gjson.Result, error)
	SearchMedia(ctx context.Context, qc QueryContext, term string) (gjson.Result, error)
	AxisMedia(ctx context.Context, qc QueryContext, id string) (gjson.Result, error)
	AxisSeason(ctx context.Context, qc QueryContext, id string) (gjson.Result, error)
}

type PlayRequest struct {
	ID          string
	Destination string
	Language    string
	Token       string
	Filter      string
}

// PackagingAPI resolves a playable id into stream urls.
type PackagingAPI interface {
	PlayInfos(ctx context.Context, req PlayRequest) (*model.PlayInfos, error)
}

type Secrets interface {
	GetCredentials() (model.Credentials, error)
	SetCredentials(creds model.Credentials) error
	DeleteCredentials() error
}
