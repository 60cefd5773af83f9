package bellmedia

import (
	"encoding/base64"
	"net/http"
)

const (
	BaseURL = "https://account.bellmedia.ca"

	browserAgent = "Mozilla/5.0 (Linux; Android 8.0.0; LG-US998 Build/OPR1.170623.026; wv) AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/64.0.3282.137 Mobile Safari/537.36"
	appAgent     = "okhttp/4.9.0"
)

type Endpoint struct {
	URL    string
	Header http.Header
}

// Site is the set of login endpoints of an identity provider.
type Site struct {
	Login      Endpoint
	Magic      Endpoint
	MagicLogin Endpoint
	Refresh    Endpoint
}

// Sites returns the supported login sites keyed by identifier.
func Sites() map[string]Site {
	return map[string]Site{
		"bell": BellSite(BaseURL),
	}
}

func basic(clientID string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(clientID))
}

// BellSite builds the Bell endpoints on top of base.
func BellSite(base string) Site {
	referer := base + "/bdu/?loginUrl=" + base + "/api/login/v2.1?grant_type=bdu_password&provider_id=urn:bell:ca:idp:prod"
	browser := func(authorization string) http.Header {
		h := http.Header{
			"Accept":           {"application/json, text/plain, */*"},
			"Accept-Language":  {"fr-CA,en-US;q=0.9"},
			"Content-Type":     {"application/x-www-form-urlencoded;charset=UTF-8"},
			"Origin":           {base},
			"Referer":          {referer},
			"User-Agent":       {browserAgent},
			"X-Requested-With": {"com.vmediagroup.noovo"},
		}
		if authorization != "" {
			h.Set("Authorization", authorization)
		}
		return h
	}
	app := http.Header{
		"Authorization": {basic("noovo-android:default")},
		"Content-Type":  {"application/x-www-form-urlencoded"},
		"User-Agent":    {appAgent},
	}

	return Site{
		Login: Endpoint{
			URL:    base + "/api/login/v2.1",
			Header: browser(basic("usermgt:default")),
		},
		Magic: Endpoint{
			URL:    base + "/api/magic-link/v2.1/generate",
			Header: browser(""),
		},
		MagicLogin: Endpoint{
			URL:    base + "/api/login/v2.1?grant_type=magic_link_token",
			Header: app.Clone(),
		},
		Refresh: Endpoint{
			URL:    base + "/api/login/v2.1?grant_type=refresh_token",
			Header: app.Clone(),
		},
	}
}
