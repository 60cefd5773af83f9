// Package capi resolves playable content through the 9c9media content API.
package capi

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"text/template"

	"github.com/quintans/faults"
	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/lib/fails"
	"github.com/quintans/noovo/internal/lib/https"
	"github.com/quintans/noovo/internal/model"
)

const (
	BaseURL  = "https://capi.9c9media.com"
	Platform = "android"

	include = "[Images,Authentication,AdTarget,Season,ContentPackages,Media,Owner,Omniture,Tags,ChannelAffiliate]"
)

var (
	contentTmpl = template.Must(template.New("content").Parse(
		`{{.Base}}/destinations/{{.Destination}}/platforms/{{.Platform}}/contents/{{.ID}}?$lang={{.Language}}&$include={{.Include}}`))
	packageTmpl = template.Must(template.New("package").Parse(
		`{{.Base}}/destinations/{{.Destination}}/platforms/{{.Platform}}/bond/contents/{{.ID}}/contentPackages/{{.Package}}`))
)

// Headers the player must send with the manifest and license requests.
func Headers() http.Header {
	return http.Header{
		"Accept-Encoding": {"identity"},
		"Connection":      {"Keep-Alive"},
		"User-Agent":      {"okhttp/4.9.0"},
	}
}

type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.base = url
	}
}

func WithLicenseURL(url string) Option {
	return func(c *Client) {
		c.licenseURL = url
	}
}

type Client struct {
	doer       https.Doer
	base       string
	licenseURL string
}

func New(doer https.Doer, options ...Option) *Client {
	c := &Client{
		doer:       doer,
		base:       BaseURL,
		licenseURL: model.DefaultLicenseURL,
	}
	for _, o := range options {
		o(c)
	}
	return c
}

type urlData struct {
	Base        string
	Destination string
	Platform    string
	ID          string
	Language    string
	Include     string
	Package     string
}

func (c *Client) PlayInfos(ctx context.Context, req app.PlayRequest) (*model.PlayInfos, error) {
	data := urlData{
		Base:        c.base,
		Destination: req.Destination,
		Platform:    Platform,
		ID:          req.ID,
		Language:    req.Language,
		Include:     include,
	}
	contentURL, err := render(contentTmpl, data)
	if err != nil {
		return nil, err
	}

	resp, err := c.doer.Do(ctx, &https.Request{
		Method: http.MethodGet,
		URL:    contentURL,
		Header: Headers(),
	})
	if err != nil {
		return nil, app.TransportError(err, "looking up content", "id", req.ID, "destination", req.Destination)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, app.StatusError(contentURL, resp.StatusCode)
	}

	pkg := resp.Result().Get("ContentPackages.0.Id")
	if !pkg.Exists() {
		return nil, fails.NewWithErr(app.ErrParse, "no content package", "id", req.ID, "destination", req.Destination)
	}
	data.Package = pkg.String()

	packageURL, err := render(packageTmpl, data)
	if err != nil {
		return nil, err
	}

	var manifestSuffix, licenseSuffix []string
	if req.Token != "" {
		manifestSuffix = append(manifestSuffix, "jwt="+req.Token)
		licenseSuffix = append(licenseSuffix, "jwt="+req.Token)
	}
	if req.Filter != "" {
		manifestSuffix = append(manifestSuffix, "filter="+req.Filter)
	}

	return model.NewPlayInfos(
		withSuffix(packageURL+"/manifest.mpd", manifestSuffix),
		withSuffix(packageURL+"/manifest.vtt", manifestSuffix),
		withSuffix(c.licenseURL, licenseSuffix),
		Headers(),
		Headers(),
	), nil
}

func withSuffix(url string, suffix []string) string {
	if len(suffix) == 0 {
		return url
	}
	return url + "?" + strings.Join(suffix, "&")
}

func render(tmpl *template.Template, data urlData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", faults.Errorf("failed to execute template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
