package https

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/quintans/faults"
	"github.com/quintans/noovo/internal/lib/fails"
	"github.com/quintans/noovo/internal/lib/retry"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// Request is a single call. At most one of Form and JSON is used as the body.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Form   url.Values
	JSON   any
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) Result() gjson.Result {
	return gjson.ParseBytes(r.Body)
}

// Doer executes requests. Non 2xx responses are not errors.
type Doer interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Cookie is the persisted form of a cookie. URL is the origin and path it was set for.
type Cookie struct {
	URL     string    `json:"url"`
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Domain  string    `json:"domain,omitempty"`
	Expires time.Time `json:"expires,omitzero"`
}

func (c Cookie) expired(now time.Time) bool {
	return !c.Expires.IsZero() && !c.Expires.After(now)
}

// trackingJar sees every Set-Cookie, redirects included, so they can be persisted with their attributes.
type trackingJar struct {
	*cookiejar.Jar
	record func(u *url.URL, cookies []*http.Cookie)
}

func (j trackingJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.Jar.SetCookies(u, cookies)
	j.record(u, cookies)
}

type cookieKey struct {
	domain string
	path   string
	name   string
}

type CookieStore interface {
	LoadCookies(ctx context.Context) ([]Cookie, error)
	SaveCookies(ctx context.Context, cookies []Cookie) error
}

type Option func(*Session)

func WithTimeout(timeout time.Duration) Option {
	return func(s *Session) {
		s.client.Timeout = timeout
	}
}

// WithRateLimit paces requests. Zero or less means unlimited.
func WithRateLimit(perSecond float64) Option {
	return func(s *Session) {
		if perSecond <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithRetries retries network failures and 429 responses.
func WithRetries(retries int) Option {
	return func(s *Session) {
		s.retries = retries
	}
}

func WithCookieStore(store CookieStore) Option {
	return func(s *Session) {
		s.store = store
	}
}

// Session is an HTTP client that carries cookies across calls and, given a CookieStore,
// across process restarts.
type Session struct {
	client  *http.Client
	jar     *cookiejar.Jar
	limiter *rate.Limiter
	retries int
	store   CookieStore

	mu      sync.Mutex
	cookies map[cookieKey]Cookie
}

func NewSession(options ...Option) (*Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, faults.Errorf("creating cookie jar: %w", err)
	}

	s := &Session{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		jar:     jar,
		limiter: rate.NewLimiter(rate.Inf, 0),
		cookies: map[cookieKey]Cookie{},
	}
	s.client.Jar = trackingJar{Jar: jar, record: s.record}
	for _, o := range options {
		o(s)
	}

	return s, nil
}

// Restore loads the persisted cookies into the jar. A missing store is a no-op.
func (s *Session) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	cookies, err := s.store.LoadCookies(ctx)
	if err != nil {
		return faults.Errorf("loading cookies: %w", err)
	}

	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range cookies {
		if c.expired(now) {
			continue
		}
		u, err := url.Parse(c.URL)
		if err != nil || u.Host == "" {
			slog.Warn("Skipping cookie with invalid url", "url", c.URL, "name", c.Name)
			continue
		}
		s.jar.SetCookies(u, []*http.Cookie{{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: c.Expires,
		}})
		s.cookies[keyOf(u, c)] = c
	}

	return nil
}

// Cookies returns every live cookie received so far, ordered by url and name.
func (s *Session) Cookies() []Cookie {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	cookies := make([]Cookie, 0, len(s.cookies))
	for k, c := range s.cookies {
		if c.expired(now) {
			delete(s.cookies, k)
			continue
		}
		cookies = append(cookies, c)
	}
	slices.SortFunc(cookies, func(a, b Cookie) int {
		return cmp.Or(strings.Compare(a.URL, b.URL), strings.Compare(a.Name, b.Name))
	})
	return cookies
}

// record tracks the cookies set by a response, with their attributes.
func (s *Session) record(u *url.URL, set []*http.Cookie) {
	if len(set) == 0 {
		return
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, hc := range set {
		c := Cookie{
			Name:    hc.Name,
			Value:   hc.Value,
			Path:    hc.Path,
			Domain:  hc.Domain,
			Expires: hc.Expires,
		}
		if c.Path == "" || !strings.HasPrefix(c.Path, "/") {
			c.Path = defaultPath(u.Path)
		}
		if hc.MaxAge > 0 {
			c.Expires = now.Add(time.Duration(hc.MaxAge) * time.Second)
		}
		c.URL = u.Scheme + "://" + u.Host + c.Path

		k := keyOf(u, c)
		if hc.MaxAge < 0 || c.expired(now) {
			delete(s.cookies, k)
			continue
		}
		s.cookies[k] = c
	}
}

func keyOf(u *url.URL, c Cookie) cookieKey {
	domain := strings.TrimPrefix(strings.ToLower(c.Domain), ".")
	if domain == "" {
		domain = u.Hostname()
	}
	return cookieKey{domain: domain, path: c.Path, name: c.Name}
}

// defaultPath is the directory of the request path, as cookies without a Path attribute get.
func defaultPath(p string) string {
	i := strings.LastIndex(p, "/")
	if i <= 0 {
		return "/"
	}
	return p[:i]
}

func (s *Session) Do(ctx context.Context, r *Request) (*Response, error) {
	resp, err := retry.Do2(func() (*Response, error) {
		return s.do(ctx, r)
	},
		retry.WithContext(ctx),
		retry.WithRetries(s.retries),
		retry.WithDelayFunc(DelayFunc),
	)
	if err != nil {
		return nil, err
	}

	s.persist(ctx)

	return resp, nil
}

func (s *Session) do(ctx context.Context, r *Request) (*Response, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, retry.NewPermanentError(faults.Errorf("waiting for rate limiter: %w", err))
	}

	req, err := r.build(ctx)
	if err != nil {
		return nil, retry.NewPermanentError(err)
	}

	slog.Debug("Requesting", "method", req.Method, "url", req.URL.Redacted())
	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, retry.NewPermanentError(faults.Errorf("requesting %s: %w", r.URL, err))
		}
		return nil, faults.Errorf("requesting %s: %w", r.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fails.New("too many requests", "url", r.URL, "retry-after", resp.Header.Get("Retry-After"))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, faults.Errorf("reading response body of %s: %w", r.URL, err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func (r *Request) build(ctx context.Context) (*http.Request, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	h := r.Header.Clone()
	if h == nil {
		h = http.Header{}
	}

	var body io.Reader
	switch {
	case r.Form != nil && r.JSON != nil:
		return nil, errors.New("request with both form and JSON bodies")
	case r.Form != nil:
		body = strings.NewReader(r.Form.Encode())
		if h.Get("Content-Type") == "" {
			h.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	case r.JSON != nil:
		b, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, faults.Errorf("marshalling request (%+v): %w", r.JSON, err)
		}
		body = bytes.NewReader(b)
		if h.Get("Content-Type") == "" {
			h.Set("Content-Type", "application/json")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, r.URL, body)
	if err != nil {
		return nil, faults.Errorf("creating request: %w", err)
	}
	req.Header = h

	return req, nil
}

func (s *Session) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveCookies(ctx, s.Cookies()); err != nil {
		slog.Warn("Failed to persist cookies", "error", err)
	}
}
