package services

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/quintans/faults"
	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/lib/fails"
	xslices "github.com/quintans/noovo/internal/lib/slices"
	"github.com/quintans/noovo/internal/model"
	"github.com/tidwall/gjson"
)

const (
	homeContainer   = "HOME"
	iconsStyle      = "BRAND_ICONS"
	typeGrid        = "Grid"
	typeRotator     = "Rotator"
	posterFormat    = "POSTER"
	thumbnailFormat = "THUMBNAIL"
)

var rootContainers = []string{"TV_SERIES", "MOVIES"}

// Catalog walks the browse tree.
type Catalog struct {
	api      app.CatalogAPI
	session  Session
	language model.Language
}

func NewCatalog(api app.CatalogAPI, session Session, language model.Language) *Catalog {
	return &Catalog{
		api:      api,
		session:  session,
		language: language,
	}
}

// queryContext is the browse context: playback and metadata both follow the metadata language.
func (c *Catalog) queryContext() app.QueryContext {
	return queryContext(c.session, c.language, c.language)
}

func queryContext(session Session, language, playback model.Language) app.QueryContext {
	return app.QueryContext{
		Subscriptions:    session.Entitlements().Subscriptions,
		Language:         language,
		PlaybackLanguage: playback,
	}
}

// RootCategories lists the root screens followed by the elements of the home screen.
func (c *Catalog) RootCategories(ctx context.Context) ([]model.Element, error) {
	slog.Debug("Listing root categories")

	data, err := c.api.ApplicationScreens(ctx, c.queryContext())
	if errors.Is(err, app.ErrParse) {
		slog.Warn("Malformed root categories, listing none", "error", err)
		return []model.Element{}, nil
	}
	if err != nil {
		return nil, faults.Errorf("listing root categories: %w", err)
	}

	var homeID string
	elements := xslices.Collect(data.Get("navigationLinks").Array(), "Unable to parse one of the screens", func(link gjson.Result) (*model.Element, error) {
		container := link.Get("internalContent.containerType").String()
		if container == homeContainer {
			homeID = link.Get("internalContent.id").String()
			return nil, nil
		}
		if !slices.Contains(rootContainers, container) {
			return nil, nil
		}
		cat, err := parseScreenLink(link)
		if err != nil {
			return nil, err
		}
		e := model.CategoryElement(cat)
		return &e, nil
	})
	result := compact(elements)

	if homeID != "" {
		home, err := c.ScreenElements(ctx, homeID)
		if err != nil {
			slog.Warn("Unable to list home screen", "id", homeID, "error", err)
		}
		result = append(result, home...)
	}

	return result, nil
}

// Elements lists the content of a category according to its kind.
func (c *Catalog) Elements(ctx context.Context, category *model.Category) ([]model.Element, error) {
	if category == nil {
		return nil, fails.New("no category provided")
	}

	switch category.Kind {
	case model.CategoryScreen:
		return c.ScreenElements(ctx, category.ID)
	case model.CategoryGrid:
		return c.GridElements(ctx, category.ID)
	case model.CategoryRotator:
		return c.RotatorElements(ctx, category.ID)
	}

	return nil, fails.New("unknown category type", "type", category.Kind, "id", category.ID)
}

// ScreenElements lists the sub screens and collections of a screen.
// A screen with no links and a single collection is replaced by the collection listing.
func (c *Catalog) ScreenElements(ctx context.Context, id string) ([]model.Element, error) {
	if id == "" {
		return nil, fails.New("no screen id provided")
	}
	slog.Debug("Listing elements of screen", "id", id)

	data, err := c.api.Screen(ctx, c.queryContext(), id)
	if err != nil {
		return nil, faults.Errorf("listing screen %s: %w", id, err)
	}

	links := xslices.Collect(data.Get("secondaryNavigation.links").Array(), "Unable to parse one of the screens", func(link gjson.Result) (model.Element, error) {
		cat, err := parseScreenLink(link)
		if err != nil {
			return model.Element{}, err
		}
		return model.CategoryElement(cat), nil
	})

	collections := data.Get("collections").Array()
	if len(links) == 0 && len(collections) == 1 {
		only := collections[0]
		switch only.Get("__typename").String() {
		case typeGrid:
			return c.GridElements(ctx, only.Get("id").String())
		case typeRotator:
			return c.RotatorElements(ctx, only.Get("id").String())
		}
		return nil, fails.NewWithErr(app.ErrParse, "unsupported single collection", "screen", id, "type", only.Get("__typename").String())
	}

	elements := links
	for _, col := range collections {
		if !col.Get("config.displayTitle").Bool() || col.Get("config.style").String() == iconsStyle {
			continue
		}
		var kind model.CategoryKind
		switch col.Get("__typename").String() {
		case typeGrid:
			kind = model.CategoryGrid
		case typeRotator:
			kind = model.CategoryRotator
		default:
			continue
		}
		colID := col.Get("id").String()
		if colID == "" {
			slog.Warn("Unable to parse one of the collections", "screen", id)
			continue
		}
		elements = append(elements, model.CategoryElement(model.Category{
			Kind:  kind,
			Title: col.Get("title").String(),
			ID:    colID,
		}))
	}

	return elements, nil
}

func (c *Catalog) GridElements(ctx context.Context, id string) ([]model.Element, error) {
	if id == "" {
		return nil, fails.New("no grid id provided")
	}
	slog.Debug("Listing elements of grid", "id", id)

	data, err := c.api.Grid(ctx, c.queryContext(), id)
	if err != nil {
		return nil, faults.Errorf("listing grid %s: %w", id, err)
	}
	return c.items(data.Get("collection.page.items"))
}

func (c *Catalog) RotatorElements(ctx context.Context, id string) ([]model.Element, error) {
	if id == "" {
		return nil, fails.New("no rotator id provided")
	}
	slog.Debug("Listing elements of rotator", "id", id)

	data, err := c.api.Rotator(ctx, c.queryContext(), id)
	if err != nil {
		return nil, faults.Errorf("listing rotator %s: %w", id, err)
	}
	return c.items(data.Get("collection.page.items"))
}

func (c *Catalog) items(items gjson.Result) ([]model.Element, error) {
	if !items.IsArray() {
		return nil, fails.NewWithErr(app.ErrParse, "no items in collection")
	}
	ent := c.session.Entitlements()
	return xslices.Collect(items.Array(), "Unable to parse one of the items", func(item gjson.Result) (model.Element, error) {
		r, err := ParseSearchResult(item, ent)
		if err != nil {
			return model.Element{}, err
		}
		return model.ResultElement(r), nil
	}), nil
}

// ParseSearchResult builds a listing entry. The entry is accessible when any of
// its resource codes is one of the granted scopes.
func ParseSearchResult(item gjson.Result, ent model.Entitlements) (model.SearchResult, error) {
	id := item.Get("id").String()
	title := item.Get("title")
	if id == "" || !title.Exists() {
		return model.SearchResult{}, fails.NewWithErr(app.ErrParse, "invalid item", "item", item.Raw)
	}

	requirements := []string{}
	for _, code := range item.Get("resourceCodes").Array() {
		requirements = append(requirements, code.String())
	}

	r := model.SearchResult{
		Title:        title.String(),
		SearchTitle:  title.String(),
		Requirements: requirements,
		HasAccess:    slices.ContainsFunc(requirements, ent.HasScope),
		PlatformTag:  app.PlatformTag,
		ID:           id,
	}
	if img, ok := firstImage(item.Get("images"), posterFormat); ok {
		r.Image = img
	} else if img, ok := firstImage(item.Get("images"), ""); ok {
		r.Image = img
	}
	return r, nil
}

func parseScreenLink(link gjson.Result) (model.Category, error) {
	id := link.Get("internalContent.id").String()
	if id == "" {
		return model.Category{}, fails.NewWithErr(app.ErrParse, "screen link without id", "link", link.Raw)
	}
	return model.Category{
		Kind:  model.CategoryScreen,
		Title: link.Get("linkLabel").String(),
		ID:    id,
	}, nil
}

// firstImage returns the url of the first image with the given format.
// An empty format matches any image.
func firstImage(images gjson.Result, format string) (string, bool) {
	for _, img := range images.Array() {
		if format == "" || img.Get("format").String() == format {
			if u := img.Get("url").String(); u != "" {
				return u, true
			}
		}
	}
	return "", false
}

func compact(elements []*model.Element) []model.Element {
	out := make([]model.Element, 0, len(elements))
	for _, e := range elements {
		if e != nil {
			out = append(out, *e)
		}
	}
	return out
}
