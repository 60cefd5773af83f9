package services

import (
	"context"
	"errors"
	"testing"

	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func episode(season, number int, access bool) *model.Media {
	m := model.NewEpisode(season, number)
	m.HasAccess = access
	m.PlayID = model.FormatEpisodeNumber(season, number)
	m.PlaybackLanguages = []string{"fr"}
	m.SetDestination("dest_fr")
	return m
}

func TestPlayInfos_NoAccessMakesNoCall(t *testing.T) {
	api := &fakePackaging{}
	session := &fakeSession{loggedIn: true}
	p := NewPlayback(api, session)

	infos, err := p.PlayInfos(context.Background(), episode(1, 1, false))
	require.ErrorIs(t, err, app.ErrAccess)
	assert.Nil(t, infos)
	assert.Empty(t, api.requests)
	assert.Zero(t, session.ensureCalls)
}

func TestPlayInfos(t *testing.T) {
	api := &fakePackaging{}
	p := NewPlayback(api, &fakeSession{loggedIn: true})

	infos, err := p.PlayInfos(context.Background(), episode(1, 2, true))
	require.NoError(t, err)
	assert.Equal(t, "manifest/S01E02", infos.ManifestURL())

	require.Len(t, api.requests, 1)
	assert.Equal(t, app.PlayRequest{
		ID:          "S01E02",
		Destination: "dest_fr",
		Language:    "fr",
		Token:       "access",
		Filter:      "0x14",
	}, api.requests[0])
}

func TestPlayInfos_NotLoggedIn(t *testing.T) {
	api := &fakePackaging{}
	p := NewPlayback(api, &fakeSession{})

	_, err := p.PlayInfos(context.Background(), episode(1, 2, true))
	require.ErrorIs(t, err, app.ErrAuth)
	assert.Empty(t, api.requests)
}

func TestPlayInfos_PackagingFailure(t *testing.T) {
	api := &fakePackaging{err: errBoom}
	p := NewPlayback(api, &fakeSession{loggedIn: true})

	_, err := p.PlayInfos(context.Background(), episode(1, 2, true))
	require.Error(t, err)
	assert.True(t, errors.Is(err, app.ErrTransport))
}

func TestResultPlayInfos(t *testing.T) {
	api := &fakePackaging{}
	p := NewPlayback(api, &fakeSession{loggedIn: true})

	serie := model.NewSerieInfo()
	e := episode(4, 1, true)
	serie.Medias[e.EpisodeTag] = e

	_, err := p.ResultPlayInfos(context.Background(), serie, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, "S04E01", api.requests[0].ID)

	_, err = p.ResultPlayInfos(context.Background(), serie, 4, 2)
	require.ErrorIs(t, err, app.ErrNotFound)

	movie := model.NewMovieInfo()
	m := model.NewMovie()
	m.HasAccess = true
	m.PlayID = "42"
	movie.Medias[model.DefaultMediaKey] = m

	_, err = p.ResultPlayInfos(context.Background(), movie, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "42", api.requests[1].ID)
}
