package model

import (
	"errors"
	"net/url"
	"strings"

	"github.com/quintans/faults"
)

var ErrInvalidHandle = errors.New("invalid handle")

const (
	ObjCategory = "category"
	ObjResult   = "result"
	ObjMedia    = "media"
)

type CategoryKind string

const (
	CategoryScreen  CategoryKind = "screen"
	CategoryRotator CategoryKind = "rotator"
	CategoryGrid    CategoryKind = "grid"
)

func (k CategoryKind) Valid() bool {
	switch k {
	case CategoryScreen, CategoryRotator, CategoryGrid:
		return true
	}
	return false
}

// Category is a node of the browse tree. It is never mutated after creation.
type Category struct {
	Kind  CategoryKind `json:"type"`
	Title string       `json:"title"`
	ID    string       `json:"id"`
	Image string       `json:"image,omitempty"`
}

// ToURL encodes the category as a resumable handle. Only the kind and the id are encoded.
func (c Category) ToURL(base string) string {
	v := url.Values{}
	v.Set("obj_type", ObjCategory)
	v.Set("cat_type", string(c.Kind))
	v.Set("id", c.ID)
	return base + "?" + v.Encode()
}

func CategoryFromURL(raw string) (Category, error) {
	args, err := parseHandle(raw, ObjCategory)
	if err != nil {
		return Category{}, err
	}

	kind := args.Get("cat_type")
	if kind == "" {
		kind = args.Get("type")
	}

	return Category{
		Kind: CategoryKind(kind),
		ID:   args.Get("id"),
	}, nil
}

// parseHandle accepts a full URL, a "?query" suffix or a bare query string.
func parseHandle(raw, objType string) (url.Values, error) {
	query := raw
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		query = raw[i+1:]
	}

	args, err := url.ParseQuery(query)
	if err != nil {
		return nil, faults.Errorf("%w: %s: %v", ErrInvalidHandle, raw, err)
	}

	if t := args.Get("obj_type"); t != "" && t != objType {
		return nil, faults.Errorf("%w: expected %s, got %s", ErrInvalidHandle, objType, t)
	}

	return args, nil
}
