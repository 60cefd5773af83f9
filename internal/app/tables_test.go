package app_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/quintans/faults"
	"github.com/quintans/noovo/internal/app"
	"github.com/stretchr/testify/assert"
)

func TestTables_Entitlements(t *testing.T) {
	e := app.DefaultTables().Entitlements([]string{"noovo", "ztele", "unknown"})

	assert.Equal(t, []string{"noovo", "ztele", "unknown"}, e.Scopes)
	assert.Equal(t, []string{"NOOVO", "Z"}, e.Subscriptions)
	assert.Equal(t, []string{"z_hub"}, e.Packages)
}

func TestTables_EntitlementsEmpty(t *testing.T) {
	e := app.DefaultTables().Entitlements(nil)

	assert.Empty(t, e.Scopes)
	assert.NotNil(t, e.Subscriptions)
	assert.NotNil(t, e.Packages)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, app.HTTPStatus(faults.Errorf("playing: %w", app.ErrAccess)))
	assert.Equal(t, http.StatusBadGateway, app.HTTPStatus(app.StatusError("https://x", 500)))
	assert.Equal(t, http.StatusNotFound, app.HTTPStatus(app.ErrNotFound))
	assert.Equal(t, http.StatusUnauthorized, app.HTTPStatus(app.ErrAuth))
	assert.Equal(t, http.StatusInternalServerError, app.HTTPStatus(errors.New("boom")))
}
