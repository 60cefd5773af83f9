package model

import (
	"encoding/json"
	"maps"
	"net/http"
)

// DefaultLicenseURL is the widevine license endpoint used when none is provided.
const DefaultLicenseURL = "https://license.9c9media.ca/widevine"

// PlayInfos describes a resolved stream. It is immutable once constructed.
type PlayInfos struct {
	manifestURL     string
	subtitlesURL    string
	licenseURL      string
	manifestHeaders http.Header
	licenseHeaders  http.Header
}

func NewPlayInfos(manifestURL, subtitlesURL, licenseURL string, manifestHeaders, licenseHeaders http.Header) *PlayInfos {
	if licenseURL == "" {
		licenseURL = DefaultLicenseURL
	}
	return &PlayInfos{
		manifestURL:     manifestURL,
		subtitlesURL:    subtitlesURL,
		licenseURL:      licenseURL,
		manifestHeaders: manifestHeaders.Clone(),
		licenseHeaders:  licenseHeaders.Clone(),
	}
}

func (p *PlayInfos) ManifestURL() string {
	return p.manifestURL
}

func (p *PlayInfos) SubtitlesURL() string {
	return p.subtitlesURL
}

func (p *PlayInfos) LicenseURL() string {
	return p.licenseURL
}

func (p *PlayInfos) ManifestHeaders() http.Header {
	return p.manifestHeaders.Clone()
}

func (p *PlayInfos) LicenseHeaders() http.Header {
	return p.licenseHeaders.Clone()
}

func (p *PlayInfos) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ManifestURL     string            `json:"manifest_url"`
		SubtitlesURL    string            `json:"subtitles_url"`
		LicenseURL      string            `json:"license_url"`
		ManifestHeaders map[string]string `json:"manifest_headers"`
		LicenseHeaders  map[string]string `json:"license_headers"`
	}{
		ManifestURL:     p.manifestURL,
		SubtitlesURL:    p.subtitlesURL,
		LicenseURL:      p.licenseURL,
		ManifestHeaders: flatten(p.manifestHeaders),
		LicenseHeaders:  flatten(p.licenseHeaders),
	})
}

func flatten(h http.Header) map[string]string {
	m := make(map[string]string, len(h))
	for k := range maps.Keys(h) {
		m[k] = h.Get(k)
	}
	return m
}

type Account struct {
	Name         string   `json:"name"`
	Picture      string   `json:"picture"`
	Capabilities []string `json:"capabilities"`
}

type Profile struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
}
