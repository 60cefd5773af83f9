package model

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type MediaKind string

const (
	MediaMovie   MediaKind = "movie"
	MediaEpisode MediaKind = "episode"
)

// DestinationKey is the additional info holding the delivery destination code.
const DestinationKey = "destination"

// Media is a playable unit. Season, Episode and EpisodeTag are only set for episodes.
type Media struct {
	Kind              MediaKind         `json:"type"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Summary           string            `json:"summary"`
	Image             string            `json:"image,omitempty"`
	HasAccess         bool              `json:"has_access"`
	Duration          int               `json:"duration"`
	PlaybackLanguages []string          `json:"playback_languages"`
	PlayID            string            `json:"play_id"`
	AdditionalInfos   map[string]string `json:"additional_infos"`

	Season     int    `json:"season,omitempty"`
	Episode    int    `json:"episode,omitempty"`
	EpisodeTag string `json:"episode_tag,omitempty"`
}

func NewMovie() *Media {
	return &Media{
		Kind:            MediaMovie,
		AdditionalInfos: map[string]string{},
	}
}

func NewEpisode(season, episode int) *Media {
	return &Media{
		Kind:            MediaEpisode,
		AdditionalInfos: map[string]string{},
		Season:          season,
		Episode:         episode,
		EpisodeTag:      FormatEpisodeNumber(season, episode),
	}
}

func (m *Media) Destination() string {
	return m.AdditionalInfos[DestinationKey]
}

func (m *Media) SetDestination(dest string) {
	if m.AdditionalInfos == nil {
		m.AdditionalInfos = map[string]string{}
	}
	m.AdditionalInfos[DestinationKey] = dest
}

// Language returns the first playback language, or an empty string.
func (m *Media) Language() string {
	if len(m.PlaybackLanguages) == 0 {
		return ""
	}
	return m.PlaybackLanguages[0]
}

// ToURL encodes the play id, destination and first playback language as a resumable handle.
func (m *Media) ToURL(base string) string {
	v := url.Values{}
	v.Set("obj_type", ObjMedia)
	v.Set("id", m.PlayID)
	v.Set("dest", m.Destination())
	v.Set("lang", m.Language())
	return base + "?" + v.Encode()
}

// MediaFromURL decodes a media handle. The decoded media is considered accessible,
// the packaging API being the final judge.
func MediaFromURL(raw string) (*Media, error) {
	args, err := parseHandle(raw, ObjMedia)
	if err != nil {
		return nil, err
	}

	m := &Media{
		HasAccess:       true,
		PlayID:          args.Get("id"),
		AdditionalInfos: map[string]string{},
	}
	if lang := args.Get("lang"); lang != "" {
		m.PlaybackLanguages = []string{lang}
	}
	if args.Has("dest") {
		m.SetDestination(args.Get("dest"))
	}
	return m, nil
}

// FormatEpisodeNumber formats a season/episode pair as S01E02.
func FormatEpisodeNumber(season, episode int) string {
	return fmt.Sprintf("S%02dE%02d", season, episode)
}

// ParseDuration converts a compound duration like "1h30m15s" into seconds.
// Each marker consumes the text before it, in h, m, s order. Missing parts count as zero
// and any malformed part yields zero for the whole duration.
func ParseDuration(s string) int {
	total := 0
	for _, unit := range []struct {
		marker  string
		seconds int
	}{
		{"h", 3600},
		{"m", 60},
		{"s", 1},
	} {
		idx := strings.Index(s, unit.marker)
		if idx < 0 {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(s[:idx]))
		if err != nil {
			return 0
		}
		total += n * unit.seconds
		s = s[idx+1:]
	}
	return total
}
