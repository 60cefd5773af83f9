package model

import (
	"net/url"
	"strings"
)

type SearchResult struct {
	Title        string   `json:"title"`
	SearchTitle  string   `json:"search_title"`
	Description  string   `json:"description,omitempty"`
	Image        string   `json:"image,omitempty"`
	Requirements []string `json:"requirements"`
	HasAccess    bool     `json:"has_access"`
	PlatformTag  string   `json:"platform_tag"`
	ID           string   `json:"id"`
	Version      string   `json:"version,omitempty"`
}

// SortTitle is the title used for ordering. It falls back to Title when SearchTitle is empty.
func (r SearchResult) SortTitle() string {
	if r.SearchTitle != "" {
		return r.SearchTitle
	}
	return r.Title
}

// CompareSearchResults orders results by their sort title.
func CompareSearchResults(a, b SearchResult) int {
	return strings.Compare(a.SortTitle(), b.SortTitle())
}

func (r SearchResult) ToURL(base string) string {
	v := url.Values{}
	v.Set("obj_type", ObjResult)
	v.Set("id", r.ID)
	return base + "?" + v.Encode()
}

func SearchResultFromURL(raw string) (SearchResult, error) {
	args, err := parseHandle(raw, ObjResult)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{ID: args.Get("id")}, nil
}

// Element is one entry of a category listing: either a sub category or a title.
type Element struct {
	Category *Category     `json:"category,omitempty"`
	Result   *SearchResult `json:"result,omitempty"`
}

func CategoryElement(c Category) Element {
	return Element{Category: &c}
}

func ResultElement(r SearchResult) Element {
	return Element{Result: &r}
}

func (e Element) IsCategory() bool {
	return e.Category != nil
}
