package model

import (
	"slices"
)

type ResultKind string

const (
	ResultMovie ResultKind = "movie"
	ResultSerie ResultKind = "serie"
)

// DefaultMediaKey is the media key of a movie.
const DefaultMediaKey = "default"

// ResultInfo is the detailed record of a title for one version (language).
// Movies hold a single media under DefaultMediaKey, series one media per episode tag.
type ResultInfo struct {
	Kind        ResultKind        `json:"type"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Summary     string            `json:"summary"`
	Image       string            `json:"image,omitempty"`
	Year        int               `json:"year,omitempty"`
	Version     string            `json:"version"`
	Medias      map[string]*Media `json:"medias"`
}

func NewMovieInfo() *ResultInfo {
	return &ResultInfo{
		Kind:   ResultMovie,
		Medias: map[string]*Media{},
	}
}

func NewSerieInfo() *ResultInfo {
	return &ResultInfo{
		Kind:   ResultSerie,
		Medias: map[string]*Media{},
	}
}

func (r *ResultInfo) Movie() (*Media, bool) {
	m, ok := r.Medias[DefaultMediaKey]
	return m, ok
}

func (r *ResultInfo) Episode(season, episode int) (*Media, bool) {
	m, ok := r.Medias[FormatEpisodeNumber(season, episode)]
	return m, ok
}

// Keys returns the media keys in order.
func (r *ResultInfo) Keys() []string {
	keys := make([]string, 0, len(r.Medias))
	for k := range r.Medias {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
