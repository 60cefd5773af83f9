package model

import (
	"slices"
	"strings"
	"time"
)

// ExpiryGrace is how long before their deadline tokens are considered expired.
const ExpiryGrace = time.Hour

type Credentials struct {
	Username string
	Password string
	Site     string
}

// Complete reports whether a login can be attempted with these credentials.
func (c Credentials) Complete() bool {
	return c.Username != "" && c.Password != "" && c.Site != ""
}

// Entitlements are derived from the login scope and always recomputed together.
type Entitlements struct {
	Scopes        []string
	Subscriptions []string
	Packages      []string
}

func (e Entitlements) HasScope(scope string) bool {
	return slices.Contains(e.Scopes, scope)
}

func (e Entitlements) HasPackage(pkg string) bool {
	return slices.Contains(e.Packages, pkg)
}

func (e Entitlements) Clone() Entitlements {
	return Entitlements{
		Scopes:        slices.Clone(e.Scopes),
		Subscriptions: slices.Clone(e.Subscriptions),
		Packages:      slices.Clone(e.Packages),
	}
}

type TokenState struct {
	AccessToken  string
	RefreshToken string
	ProfileID    string
	Expiry       time.Time
	Entitlements
}

// Valid reports whether the token can be used without refreshing it.
func (t TokenState) Valid(now time.Time) bool {
	if t.AccessToken == "" || t.RefreshToken == "" || t.Expiry.IsZero() {
		return false
	}
	return !now.After(t.Expiry.Add(-ExpiryGrace))
}

// Login is the persisted authentication state.
type Login struct {
	Credentials
	Token TokenState
}

// ParseScopes extracts the subscription scopes from a space separated scope string.
// Every "subscription:" token contributes its comma separated values.
func ParseScopes(scope string) []string {
	var scopes []string
	for _, token := range strings.Fields(scope) {
		values, ok := strings.CutPrefix(token, "subscription:")
		if !ok {
			continue
		}
		for _, v := range strings.Split(values, ",") {
			if v != "" && !slices.Contains(scopes, v) {
				scopes = append(scopes, v)
			}
		}
	}
	return scopes
}

type Language string

const (
	French  Language = "FRENCH"
	English Language = "ENGLISH"
)

const (
	VersionFR = "fr"
	VersionEN = "en"
)

// ParseLanguage maps "en"/"english" to English. Anything else is French.
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "english":
		return English
	}
	return French
}

func (l Language) Version() string {
	if l == English {
		return VersionEN
	}
	return VersionFR
}

func LanguageOf(version string) Language {
	return ParseLanguage(version)
}
