package services

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/quintans/faults"
	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/lib/fails"
	"github.com/quintans/noovo/internal/lib/fuzzy"
	"github.com/quintans/noovo/internal/model"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

const (
	MinSearchLength  = 3
	MaxSearchResults = 50

	broadcastLayout = "2006-01-02T15:04:05Z"
	mediaSeries     = "SERIES"
	mediaMovie      = "MOVIE"
)

// Resolver searches titles and resolves them into their detailed versions.
type Resolver struct {
	api      app.CatalogAPI
	session  Session
	language model.Language
}

func NewResolver(api app.CatalogAPI, session Session, language model.Language) *Resolver {
	return &Resolver{
		api:      api,
		session:  session,
		language: language,
	}
}

// Search returns the results matching text, most relevant first.
// Text shorter than MinSearchLength yields no results without querying.
func (r *Resolver) Search(ctx context.Context, text string) ([]model.SearchResult, error) {
	term := strings.TrimSpace(text)
	if term == "" {
		slog.Info("No title provided")
		return []model.SearchResult{}, nil
	}
	if len([]rune(term)) < MinSearchLength {
		slog.Info("Title too short", "min", MinSearchLength, "title", term)
		return []model.SearchResult{}, nil
	}

	data, err := r.api.SearchMedia(ctx, queryContext(r.session, r.language, model.French), term)
	if err != nil {
		return nil, faults.Errorf("searching '%s': %w", term, err)
	}

	items := data.Get("page.items")
	if !items.IsArray() {
		return nil, fails.NewWithErr(app.ErrParse, "no items in search response", "term", term)
	}

	type scored struct {
		score  int
		result model.SearchResult
	}
	ent := r.session.Entitlements()
	var suggestions []scored
	for _, item := range items.Array() {
		res, err := ParseSearchResult(item, ent)
		if err != nil {
			slog.Debug("Skipping search item", "error", err)
			continue
		}
		suggestions = append(suggestions, scored{
			score:  fuzzy.PartialRatio(res.Title, term),
			result: res,
		})
	}
	slog.Debug("Found matches", "count", len(suggestions), "term", term)

	// best score first, ties by sort title descending
	slices.SortStableFunc(suggestions, func(a, b scored) int {
		return cmp.Or(cmp.Compare(b.score, a.score), model.CompareSearchResults(b.result, a.result))
	})

	results := make([]model.SearchResult, 0, min(len(suggestions), MaxSearchResults))
	for _, s := range suggestions[:min(len(suggestions), MaxSearchResults)] {
		results = append(results, s.result)
	}
	return results, nil
}

// ResultInfos resolves a search result into its versions, keyed by version.
func (r *Resolver) ResultInfos(ctx context.Context, result model.SearchResult) (map[string]*model.ResultInfo, error) {
	return r.ResultInfosByID(ctx, result.ID)
}

// ResultInfosByID fetches the french and english versions of a title.
// Only versions holding at least one media are returned.
func (r *Resolver) ResultInfosByID(ctx context.Context, id string) (map[string]*model.ResultInfo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fails.New("no content id provided")
	}
	slog.Debug("Getting infos", "id", id)

	versions := []string{model.VersionFR, model.VersionEN}
	responses := make([]gjson.Result, len(versions))
	errs := make([]error, len(versions))

	g, gCtx := errgroup.WithContext(ctx)
	for i, version := range versions {
		g.Go(func() error {
			qc := queryContext(r.session, r.language, model.LanguageOf(version))
			responses[i], errs[i] = r.api.AxisMedia(gCtx, qc, id)
			return nil
		})
	}
	_ = g.Wait()

	if errs[0] != nil && errs[1] != nil {
		return nil, fails.NewWithErr(errs[0], "no version available", "id", id, "en", errs[1].Error())
	}

	ent := r.session.Entitlements()
	infos := map[string]*model.ResultInfo{}
	parsed := 0
	for i, version := range versions {
		if errs[i] != nil {
			slog.Debug("Skipping version", "version", version, "error", errs[i])
			continue
		}

		info, err := r.parseResult(ctx, responses[i], version, ent)
		if err != nil {
			slog.Error("Failed to parse version", "version", version, "id", id, "error", err)
			continue
		}
		parsed++

		if info == nil || len(info.Medias) == 0 {
			continue
		}
		info.Version = version
		infos[version] = info
	}

	if parsed == 0 {
		return nil, fails.NewWithErr(app.ErrParse, "failed to parse all versions", "id", id)
	}

	slog.Debug("Found versions", "id", id, "count", len(infos))
	return infos, nil
}

func (r *Resolver) parseResult(ctx context.Context, data gjson.Result, version string, ent model.Entitlements) (*model.ResultInfo, error) {
	switch kind := data.Get("mediaType").String(); kind {
	case mediaSeries:
		return r.parseSerie(ctx, data, version, ent)
	case mediaMovie:
		return ParseMovie(data, version, ent)
	default:
		return nil, fails.NewWithErr(app.ErrParse, "unknown media type", "type", kind)
	}
}

// ParseMovie builds a movie version. It returns nil when the movie is not
// playable in that version.
func ParseMovie(data gjson.Result, version string, ent model.Entitlements) (*model.ResultInfo, error) {
	content := data.Get("mainContents.page.items.0")
	if !content.Exists() {
		return nil, fails.NewWithErr(app.ErrParse, "movie without main content")
	}

	media := model.NewMovie()
	media.PlaybackLanguages, media.AdditionalInfos[model.DestinationKey] = playbackLanguages(content, version)
	if len(media.PlaybackLanguages) == 0 {
		slog.Debug("Playback language does not fit request language", "version", version)
		return nil, nil
	}
	media.HasAccess = hasAccess(content.Get("authConstraints"), version, ent)

	info := model.NewMovieInfo()
	info.Title = data.Get("title").String()
	info.Summary = data.Get("summary").String()
	info.Description = data.Get("description").String()
	info.Image, _ = firstImage(data.Get("images"), posterFormat)

	media.Title = info.Title
	media.Summary = info.Summary
	media.Description = info.Description
	media.Image = info.Image
	media.PlayID = content.Get("axisId").String()
	media.Duration = model.ParseDuration(content.Get("duration").String())

	if date, err := time.Parse(broadcastLayout, content.Get("broadcastDate").String()); err == nil {
		info.Year = date.Year()
	}

	info.Medias[model.DefaultMediaKey] = media
	return info, nil
}

func (r *Resolver) parseSerie(ctx context.Context, data gjson.Result, version string, ent model.Entitlements) (*model.ResultInfo, error) {
	info := model.NewSerieInfo()
	info.Title = data.Get("title").String()
	info.Summary = data.Get("summary").String()
	info.Description = data.Get("description").String()
	info.Image, _ = firstImage(data.Get("images"), posterFormat)

	qc := queryContext(r.session, r.language, model.LanguageOf(version))
	for _, season := range data.Get("seasons").Array() {
		number, err := strconv.Atoi(strings.TrimSpace(season.Get("seasonNumber").String()))
		if err != nil {
			slog.Error("Unable to parse season number", "season", season.Get("seasonNumber").Raw)
			continue
		}

		slog.Debug("Getting season", "season", number, "version", version)
		seasonData, err := r.api.AxisSeason(ctx, qc, season.Get("id").String())
		if err != nil {
			slog.Error("Skipping season", "season", number, "version", version, "error", err)
			continue
		}

		episodes := seasonData.Get("episodes")
		if !episodes.IsArray() {
			slog.Error("Error while parsing season", "season", number, "version", version)
			continue
		}

		for _, episode := range episodes.Array() {
			media, err := ParseEpisode(episode, number, version, ent)
			if err != nil {
				slog.Warn("Unable to parse episode", "season", number, "version", version, "error", err)
				continue
			}
			if media == nil {
				continue
			}
			info.Medias[media.EpisodeTag] = media
		}
	}

	return info, nil
}

// ParseEpisode builds an episode of a season. It returns nil when the episode
// is not playable in that version.
func ParseEpisode(episode gjson.Result, season int, version string, ent model.Entitlements) (*model.Media, error) {
	number, err := strconv.Atoi(strings.TrimSpace(episode.Get("episodeNumber").String()))
	if err != nil {
		return nil, fails.NewWithErr(app.ErrParse, "invalid episode number", "episode", episode.Get("episodeNumber").Raw)
	}

	media := model.NewEpisode(season, number)
	langs, dest := playbackLanguages(episode, version)
	if len(langs) == 0 {
		slog.Debug("Playback language does not fit request language", "episode", media.EpisodeTag, "version", version)
		return nil, nil
	}
	media.PlaybackLanguages = langs
	media.SetDestination(dest)

	constraints := episode.Get("authConstraints")
	media.HasAccess = len(constraints.Array()) == 0 || hasAccess(constraints, version, ent)

	media.Title = episode.Get("title").String()
	media.Image, _ = firstImage(episode.Get("images"), thumbnailFormat)
	media.Summary = episode.Get("summary").String()
	media.Description = episode.Get("description").String()
	media.PlayID = episode.Get("axisId").String()
	media.Duration = model.ParseDuration(episode.Get("duration").String())

	return media, nil
}

// playbackLanguages returns the lowercased languages matching version and the
// destination of the last match.
func playbackLanguages(content gjson.Result, version string) ([]string, string) {
	var langs []string
	var dest string
	for _, l := range content.Get("axisPlaybackLanguages").Array() {
		lang := l.Get("language").String()
		if strings.EqualFold(lang, version) {
			langs = append(langs, strings.ToLower(lang))
			dest = l.Get("destinationCode").String()
		}
	}
	return langs, dest
}

// hasAccess reports whether a constraint of this version names a held package.
func hasAccess(constraints gjson.Result, version string, ent model.Entitlements) bool {
	for _, c := range constraints.Array() {
		if strings.EqualFold(c.Get("language").String(), version) && ent.HasPackage(c.Get("packageName").String()) {
			return true
		}
	}
	return false
}
