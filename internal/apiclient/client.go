// Package apiclient is a thin typed HTTP client for the universidad REST API.
//
// Every method maps one-to-one onto a REST endpoint. There is no retry,
// caching or request deduplication: a call returns either the decoded
// payload or an error. Non-2xx responses become *Error carrying the
// server-supplied message when the body could be decoded; network failures
// wrap ErrTransport.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JonMunkholm/universidad/internal/logging"
	"github.com/JonMunkholm/universidad/internal/schema"
	"github.com/go-chi/chi/v5/middleware"
)

// ErrTransport marks failures where no HTTP response was obtained.
var ErrTransport = errors.New("transport error")

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// Error is a non-2xx response from the API.
type Error struct {
	StatusCode int
	Message    string            // server "message" field, may be empty
	Reason     string            // server "error" field, e.g. "Entity Not Found"
	Details    map[string]string // per-field validation messages
	Path       string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// errorBody mirrors the API's error response.
type errorBody struct {
	Status  int             `json:"status"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
	Path    string          `json:"path"`
}

// Client talks to the API rooted at a base URL such as
// http://localhost:8080/api/v1.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string

	Facultades *FacultadService
	Carreras   *CarreraService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the transport timeout for each call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithUserAgent sets the User-Agent header sent on every call.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:   u,
		http:      &http.Client{Timeout: 30 * time.Second},
		userAgent: "universidad-console",
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Facultades = &FacultadService{resource[schema.Facultad, schema.FacultadRequest]{c: c, name: "facultades"}}
	c.Carreras = &CarreraService{resource[schema.Carrera, schema.CarreraRequest]{c: c, name: "carreras"}}
	return c, nil
}

// BaseURL returns the API root the client targets.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// endpoint joins path-escaped segments onto the base URL.
func (c *Client) endpoint(query url.Values, segments ...string) *url.URL {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}

	u := *c.baseURL
	u.RawPath = strings.TrimRight(c.baseURL.EscapedPath(), "/") + "/" + strings.Join(escaped, "/")
	u.Path, _ = url.PathUnescape(u.RawPath)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return &u
}

// do performs one request. body is JSON-encoded when non-nil; a 2xx
// response is decoded into out when out is non-nil and the response has
// content.
func (c *Client) do(ctx context.Context, method string, u *url.URL, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", u.Path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		req.Header.Set(middleware.RequestIDHeader, reqID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	logger := logging.FromContext(ctx)
	if err != nil {
		logger.Debug("api call failed", "method", method, "path", u.Path, "error", err)
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, u.Path, err)
	}
	defer resp.Body.Close()

	logger.Debug("api call",
		"method", method,
		"path", u.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", u.Path, err)
	}
	return nil
}

// decodeError turns a non-2xx response into *Error.
func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return apiErr
	}

	var body errorBody
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Message = body.Message
		apiErr.Reason = body.Error
		apiErr.Path = body.Path
		// details is a field map for validation errors, free-form otherwise
		var details map[string]string
		if json.Unmarshal(body.Details, &details) == nil {
			apiErr.Details = details
		}
	}
	return apiErr
}

// Message extracts the server-supplied message from err, if any.
func Message(err error) (string, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
