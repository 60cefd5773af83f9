package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/quintans/noovo/internal/lib/fails"
)

var (
	// ErrTransport is a network failure or a non 2xx response.
	ErrTransport = errors.New("transport error")
	// ErrParse is a response with an unexpected shape.
	ErrParse = errors.New("parse error")
	// ErrAuth means no usable token could be obtained.
	ErrAuth = errors.New("auth error")
	// ErrAccess means the session is not entitled to the requested content.
	ErrAccess = errors.New("access denied")
	// ErrNotFound is a lookup that matched nothing.
	ErrNotFound = errors.New("not found")
)

// StatusError reports a non 2xx response.
func StatusError(url string, status int) error {
	return fails.NewWithErr(ErrTransport, "bad response status", "url", url, "status", status)
}

// TransportError reports a request that could not be completed.
func TransportError(err error, msg string, args ...any) error {
	return fails.NewWithErr(fmt.Errorf("%w: %w", ErrTransport, err), msg, args...)
}

// HTTPStatus maps an error of the taxonomy to the status served by the HTTP surface.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAccess):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTransport), errors.Is(err, ErrParse):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
