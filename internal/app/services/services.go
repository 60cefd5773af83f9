package services

import (
	"context"

	"github.com/quintans/noovo/internal/model"
)

// Repository persists the login state.
// LoadLogin returns nil when nothing is persisted.
type Repository interface {
	LoadLogin(ctx context.Context) (*model.Login, error)
	SaveLogin(ctx context.Context, login *model.Login) error
}

// Session is what the catalog needs from the authentication.
type Session interface {
	EnsureLogin(ctx context.Context, forceRefresh bool) bool
	Entitlements() model.Entitlements
	AccessToken() string
}
