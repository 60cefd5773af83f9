package capi_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/gateways/capi"
	"github.com/quintans/noovo/internal/lib/https"
	"github.com/quintans/noovo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) (*capi.Client, string) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	session, err := https.NewSession()
	require.NoError(t, err)
	return capi.New(session, capi.WithBaseURL(srv.URL)), srv.URL
}

func TestPlayInfos(t *testing.T) {
	client, base := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/destinations/noovo_hub/platforms/android/contents/1234", r.URL.Path)
		assert.Equal(t, "fr", r.URL.Query().Get("$lang"))
		assert.Contains(t, r.URL.Query().Get("$include"), "ContentPackages")
		assert.Equal(t, "identity", r.Header.Get("Accept-Encoding"))
		assert.Equal(t, "okhttp/4.9.0", r.Header.Get("User-Agent"))
		io.WriteString(w, `{"ContentPackages":[{"Id":98765},{"Id":1}]}`)
	})

	infos, err := client.PlayInfos(context.Background(), app.PlayRequest{
		ID:          "1234",
		Destination: "noovo_hub",
		Language:    "fr",
		Token:       "tok",
		Filter:      "0x14",
	})
	require.NoError(t, err)

	pkg := base + "/destinations/noovo_hub/platforms/android/bond/contents/1234/contentPackages/98765"
	assert.Equal(t, pkg+"/manifest.mpd?jwt=tok&filter=0x14", infos.ManifestURL())
	assert.Equal(t, pkg+"/manifest.vtt?jwt=tok&filter=0x14", infos.SubtitlesURL())
	assert.Equal(t, model.DefaultLicenseURL+"?jwt=tok", infos.LicenseURL())
	assert.Equal(t, "okhttp/4.9.0", infos.ManifestHeaders().Get("User-Agent"))
	assert.Equal(t, "identity", infos.LicenseHeaders().Get("Accept-Encoding"))
}

func TestPlayInfos_NoToken(t *testing.T) {
	client, base := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"ContentPackages":[{"Id":"5"}]}`)
	})

	infos, err := client.PlayInfos(context.Background(), app.PlayRequest{ID: "1", Destination: "d", Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, base+"/destinations/d/platforms/android/bond/contents/1/contentPackages/5/manifest.mpd", infos.ManifestURL())
	assert.Equal(t, model.DefaultLicenseURL, infos.LicenseURL())
}

func TestPlayInfos_BadStatus(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	infos, err := client.PlayInfos(context.Background(), app.PlayRequest{ID: "1", Destination: "d"})
	require.ErrorIs(t, err, app.ErrTransport)
	assert.Nil(t, infos)
}

func TestPlayInfos_NoPackage(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"ContentPackages":[]}`)
	})

	_, err := client.PlayInfos(context.Background(), app.PlayRequest{ID: "1", Destination: "d"})
	require.ErrorIs(t, err, app.ErrParse)
}
