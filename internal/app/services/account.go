package services

import (
	"context"

	"github.com/quintans/faults"
	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/lib/fails"
	"github.com/quintans/noovo/internal/model"
)

// Account reads the profile of the logged in user.
func Account(ctx context.Context, api app.LoginAPI, session Session) (*model.Account, error) {
	if !session.EnsureLogin(ctx, false) {
		return nil, fails.NewWithErr(app.ErrAuth, "not logged in")
	}

	profiles, err := api.Profiles(ctx, session.AccessToken())
	if err != nil {
		return nil, faults.Errorf("getting account infos: %w", err)
	}
	if len(profiles) == 0 {
		return nil, fails.NewWithErr(app.ErrParse, "no profile")
	}

	return &model.Account{
		Name:         profiles[0].Nickname,
		Picture:      profiles[0].AvatarURL,
		Capabilities: []string{},
	}, nil
}
