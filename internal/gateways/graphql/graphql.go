// Package graphql runs the catalog queries of the Noovo GraphQL API.
package graphql

import (
	"context"
	"log/slog"
	"maps"
	"net/http"

	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/lib/fails"
	"github.com/quintans/noovo/internal/lib/https"
	"github.com/quintans/noovo/internal/lib/values"
	"github.com/quintans/noovo/internal/model"
	"github.com/tidwall/gjson"
)

const (
	URL     = "https://api-entpay.noovo.ca/graace/graphql/"
	AppName = "contentid/app-mobile-noovo"
)

var (
	mediaImageFormats = []string{"THUMBNAIL", "THUMBNAIL_WIDE", "POSTER"}
	gridImageFormats  = []string{"POSTER"}
)

type Option func(*Client)

func WithURL(url string) Option {
	return func(c *Client) {
		c.url = url
	}
}

type Client struct {
	doer https.Doer
	url  string
}

func New(doer https.Doer, options ...Option) *Client {
	c := &Client{
		doer: doer,
		url:  URL,
	}
	for _, o := range options {
		o(c)
	}
	return c
}

type payload struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
	Query         string         `json:"query"`
}

func (c *Client) ApplicationScreens(ctx context.Context, qc app.QueryContext) (gjson.Result, error) {
	return c.query(ctx, "applicationScreens", "app", applicationScreensQuery, qc, map[string]any{
		"appName": AppName,
	})
}

func (c *Client) Screen(ctx context.Context, qc app.QueryContext, id string) (gjson.Result, error) {
	return c.query(ctx, "screen", "screen", screenQuery, qc, map[string]any{
		"id": id,
	})
}

func (c *Client) Grid(ctx context.Context, qc app.QueryContext, id string) (gjson.Result, error) {
	return c.query(ctx, "grid", "grid", gridQuery, qc, map[string]any{
		"id":   id,
		"page": 0,
		"filterSelection": []map[string]any{
			{"filter": "LANGUAGE", "selectedIds": []string{}},
		},
		"imageFormat": gridImageFormats,
	})
}

func (c *Client) Rotator(ctx context.Context, qc app.QueryContext, id string) (gjson.Result, error) {
	return c.query(ctx, "posterRotator", "rotator", posterRotatorQuery, qc, map[string]any{
		"id": id,
	})
}

func (c *Client) SearchMedia(ctx context.Context, qc app.QueryContext, term string) (gjson.Result, error) {
	return c.query(ctx, "searchMedia", "searchMedia", searchMediaQuery, qc, map[string]any{
		"searchTerm": term,
		"pageNumber": 0,
	})
}

func (c *Client) AxisMedia(ctx context.Context, qc app.QueryContext, id string) (gjson.Result, error) {
	return c.query(ctx, "AxisMedia", "axisMedia", axisMediaQuery, qc, map[string]any{
		"id":          id,
		"imageFormat": mediaImageFormats,
	})
}

func (c *Client) AxisSeason(ctx context.Context, qc app.QueryContext, id string) (gjson.Result, error) {
	return c.query(ctx, "axisSeason", "axisSeason", axisSeasonQuery, qc, map[string]any{
		"id":          id,
		"imageFormat": mediaImageFormats,
	})
}

// query sends an operation with the session context injected and returns data.<root>.
func (c *Client) query(ctx context.Context, op, root, query string, qc app.QueryContext, vars map[string]any) (gjson.Result, error) {
	subscriptions := qc.Subscriptions
	if subscriptions == nil {
		subscriptions = []string{}
	}
	variables := map[string]any{
		"subscriptions":       subscriptions,
		"maturity":            "ADULT",
		"language":            languageOrDefault(qc.Language),
		"authenticationState": "AUTH",
		"playbackLanguage":    languageOrDefault(qc.PlaybackLanguage),
	}
	maps.Copy(variables, vars)

	resp, err := c.doer.Do(ctx, &https.Request{
		Method: http.MethodPost,
		URL:    c.url,
		Header: http.Header{
			"Accept":                  {"application/json"},
			"Content-Type":            {"application/json; charset=utf-8"},
			"Graphql-Client-Platform": {"entpay_android"},
			"User-Agent":              {"okhttp/4.9.0"},
		},
		JSON: payload{
			OperationName: op,
			Variables:     variables,
			Query:         query,
		},
	})
	if err != nil {
		return gjson.Result{}, app.TransportError(err, "querying", "operation", op)
	}
	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, fails.NewWithErr(app.StatusError(c.url, resp.StatusCode), "querying", "operation", op)
	}

	result := resp.Result()
	data := result.Get("data." + root)
	if !data.Exists() || data.Type == gjson.Null {
		if errs := result.Get("errors.#.message"); errs.Exists() {
			slog.Warn("Query returned errors", "operation", op, "errors", errs.String())
		}
		return gjson.Result{}, fails.NewWithErr(app.ErrParse, "missing data root", "operation", op, "root", root)
	}

	return data, nil
}

func languageOrDefault(l model.Language) string {
	return string(values.Coalesce(l, model.French))
}
