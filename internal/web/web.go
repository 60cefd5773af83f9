// Package web serves the platform over HTTP.
package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/etherlabsio/healthcheck"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/lib/fails"
	"github.com/quintans/noovo/internal/lib/slices"
	"github.com/quintans/noovo/internal/model"
)

type Platform interface {
	Login(ctx context.Context, username, password, site string) bool
	Logout(ctx context.Context)
	EnsureLogin(ctx context.Context, forceRefresh bool) bool
	Account(ctx context.Context) (*model.Account, error)
	RootCategories(ctx context.Context) ([]model.Element, error)
	Elements(ctx context.Context, category *model.Category) ([]model.Element, error)
	Search(ctx context.Context, text string) ([]model.SearchResult, error)
	ResultInfosByID(ctx context.Context, id string) (map[string]*model.ResultInfo, error)
	PlayInfos(ctx context.Context, media *model.Media) (*model.PlayInfos, error)
	ResultPlayInfos(ctx context.Context, info *model.ResultInfo, season, episode int) (*model.PlayInfos, error)
}

// Pinger checks a backing service.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	platform Platform
	store    Pinger
	logOut   io.Writer
}

func NewServer(platform Platform, store Pinger, logOut io.Writer) *Server {
	return &Server{
		platform: platform,
		store:    store,
		logOut:   logOut,
	}
}

// Handler returns the routes wrapped with request logging.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck.Handler(
		healthcheck.WithTimeout(5*time.Second),
		healthcheck.WithChecker("storage", healthcheck.CheckerFunc(func(ctx context.Context) error {
			return s.store.Ping(ctx)
		})),
	))

	router.HandleFunc("/login", s.login).Methods(http.MethodPost)
	router.HandleFunc("/logout", s.logout).Methods(http.MethodPost)
	router.HandleFunc("/account", s.account).Methods(http.MethodGet)
	router.HandleFunc("/categories", s.categories).Methods(http.MethodGet)
	router.HandleFunc("/elements", s.elements).Methods(http.MethodGet)
	router.HandleFunc("/search", s.search).Methods(http.MethodGet)
	router.HandleFunc("/results/{id}", s.results).Methods(http.MethodGet)
	router.HandleFunc("/results/{id}/{version}/play", s.resultPlay).Methods(http.MethodGet)
	router.HandleFunc("/play", s.play).Methods(http.MethodGet)

	return handlers.LoggingHandler(s.logOut, handlers.ProxyHeaders(router))
}

// login takes username, password and an optional site.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if !s.platform.Login(r.Context(), r.FormValue("username"), r.FormValue("password"), r.FormValue("site")) {
		writeError(w, fails.NewWithErr(app.ErrAuth, "login failed"))
		return
	}
	s.account(w, r)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.platform.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) account(w http.ResponseWriter, r *http.Request) {
	a, err := s.platform.Account(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	elements, err := s.platform.RootCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toElements(baseURL(r), elements))
}

// elements accepts a category handle or its type and id.
func (s *Server) elements(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.RawQuery
	if h := r.URL.Query().Get("handle"); h != "" {
		raw = h
	}
	category, err := model.CategoryFromURL(raw)
	if err != nil {
		writeError(w, fails.NewWithErr(app.ErrNotFound, err.Error()))
		return
	}
	if !category.Kind.Valid() || category.ID == "" {
		writeError(w, fails.NewWithErr(app.ErrNotFound, "invalid category", "type", category.Kind, "id", category.ID))
		return
	}

	elements, err := s.platform.Elements(r.Context(), &category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toElements(baseURL(r), elements))
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	results, err := s.platform.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	base := baseURL(r)
	writeJSON(w, http.StatusOK, slices.Map(results, func(res model.SearchResult) element {
		return resultElement(base, res)
	}))
}

func (s *Server) results(w http.ResponseWriter, r *http.Request) {
	infos, err := s.platform.ResultInfosByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) resultPlay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	infos, err := s.platform.ResultInfosByID(r.Context(), vars["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	info, ok := infos[vars["version"]]
	if !ok {
		writeError(w, fails.NewWithErr(app.ErrNotFound, "version not found", "id", vars["id"], "version", vars["version"]))
		return
	}

	season, _ := strconv.Atoi(r.URL.Query().Get("season"))
	episode, _ := strconv.Atoi(r.URL.Query().Get("episode"))
	play, err := s.platform.ResultPlayInfos(r.Context(), info, season, episode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, play)
}

func (s *Server) play(w http.ResponseWriter, r *http.Request) {
	media, err := model.MediaFromURL(r.URL.Query().Get("handle"))
	if err != nil || media.PlayID == "" {
		writeError(w, fails.NewWithErr(app.ErrNotFound, "invalid media handle"))
		return
	}

	play, err := s.platform.PlayInfos(r.Context(), media)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, play)
}

type element struct {
	Category *model.Category     `json:"category,omitempty"`
	Result   *model.SearchResult `json:"result,omitempty"`
	Handle   string              `json:"handle"`
}

func toElements(base string, elements []model.Element) []element {
	out := make([]element, 0, len(elements))
	for _, e := range elements {
		if e.IsCategory() {
			out = append(out, element{
				Category: e.Category,
				Handle:   e.Category.ToURL(base + "/elements"),
			})
			continue
		}
		out = append(out, resultElement(base, *e.Result))
	}
	return out
}

func resultElement(base string, r model.SearchResult) element {
	return element{
		Result: &r,
		Handle: base + "/results/" + r.ID,
	}
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := app.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", append([]any{"error", err}, fails.Attrs(err)...)...)
	} else {
		slog.Info("Request rejected", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
