package services

import (
	"context"
	"log/slog"

	"github.com/quintans/faults"
	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/lib/fails"
	"github.com/quintans/noovo/internal/model"
)

// ContentFilter is the fixed packaging filter sent with every play request.
const ContentFilter = "0x14"

type Playback struct {
	api     app.PackagingAPI
	session Session
}

func NewPlayback(api app.PackagingAPI, session Session) *Playback {
	return &Playback{
		api:     api,
		session: session,
	}
}

// PlayInfos resolves the stream of an accessible media.
// Inaccessible medias are refused without any network call.
func (p *Playback) PlayInfos(ctx context.Context, media *model.Media) (*model.PlayInfos, error) {
	if media == nil {
		return nil, fails.New("no media provided")
	}
	if !media.HasAccess {
		return nil, fails.NewWithErr(app.ErrAccess, "no access to media", "id", media.PlayID)
	}

	if !p.session.EnsureLogin(ctx, false) {
		return nil, fails.NewWithErr(app.ErrAuth, "not logged in", "id", media.PlayID)
	}

	slog.Debug("Getting play infos", "id", media.PlayID, "destination", media.Destination(), "language", media.Language())
	infos, err := p.api.PlayInfos(ctx, app.PlayRequest{
		ID:          media.PlayID,
		Destination: media.Destination(),
		Language:    media.Language(),
		Token:       p.session.AccessToken(),
		Filter:      ContentFilter,
	})
	if err != nil {
		return nil, faults.Errorf("getting play infos of %s: %w", media.PlayID, err)
	}
	return infos, nil
}

// ResultPlayInfos resolves the movie of info, or its season/episode for a serie.
func (p *Playback) ResultPlayInfos(ctx context.Context, info *model.ResultInfo, season, episode int) (*model.PlayInfos, error) {
	if info == nil {
		return nil, fails.New("no result info provided")
	}

	var (
		media *model.Media
		ok    bool
	)
	switch info.Kind {
	case model.ResultMovie:
		media, ok = info.Movie()
	case model.ResultSerie:
		media, ok = info.Episode(season, episode)
	default:
		return nil, fails.New("unknown result type", "type", info.Kind)
	}
	if !ok {
		return nil, fails.NewWithErr(app.ErrNotFound, "media not found", "title", info.Title, "episode", model.FormatEpisodeNumber(season, episode))
	}

	return p.PlayInfos(ctx, media)
}
