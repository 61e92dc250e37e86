// Package apiclient provides the HTTP client base used to build API client
// libraries. A Client is bound to a root URL and issues outbound requests
// against it; received responses are returned whatever their status code, and
// callers classify failures explicitly via RejectResponse.
package apiclient

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultRootURL is used when no root URL is configured.
	DefaultRootURL = "http://localhost"
	// DefaultTimeout bounds each outbound request when none is configured.
	DefaultTimeout = 5 * time.Second
)

// Options configures a Client. The zero value is usable: defaults are applied
// for the root URL, timeout, and logger.
type Options struct {
	// RootURL is the scheme+host every relative path is resolved against.
	// It is not validated at construction; an unsupported scheme only
	// surfaces when a request is dispatched.
	RootURL string
	// Timeout bounds each outbound request, transport included.
	Timeout time.Duration
	// Authorization is an opaque value forwarded verbatim as the
	// Authorization header on every request. Empty means no header.
	Authorization string
	// Headers are merged into every outbound request.
	Headers map[string]string
	// Logger receives the request lifecycle logs. Defaults to a no-op.
	Logger Logger
	// Transport optionally replaces the underlying round tripper, e.g. to
	// share a tuned connection pool. Passed through opaquely.
	Transport http.RoundTripper
}

// Client issues outbound requests against a configured root URL. A Client is
// immutable after construction; WithAuthorization derives children rather
// than mutating. Safe for concurrent use.
type Client struct {
	rootURL       string
	timeout       time.Duration
	authorization string
	headers       map[string]string
	log           Logger
	rest          *resty.Client
	// stream dispatches Forward calls. Its timeout bounds dialing and
	// response headers only; relayed bodies may outlive it.
	stream *http.Client
}

// New builds a Client, applying defaults for unset options.
func New(opts Options) *Client {
	rootURL := strings.TrimSpace(opts.RootURL)
	if rootURL == "" {
		rootURL = DefaultRootURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	rest := resty.New()
	rest.SetTimeout(timeout)
	if opts.Transport != nil {
		rest.SetTransport(opts.Transport)
	}

	headers := make(map[string]string, len(opts.Headers))
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &Client{
		rootURL:       rootURL,
		timeout:       timeout,
		authorization: opts.Authorization,
		headers:       headers,
		log:           ensureLogger(opts.Logger),
		rest:          rest,
		stream:        &http.Client{Transport: streamTransport(opts.Transport, timeout)},
	}
}

// RootURL returns the configured root URL.
func (c *Client) RootURL() string { return c.rootURL }

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Logger returns the logger the client reports its lifecycle events to.
func (c *Client) Logger() Logger { return c.log }

// WithAuthorization derives a child client carrying the given authorization
// while sharing every other setting, including the underlying transport. The
// parent is left untouched.
func (c *Client) WithAuthorization(auth string) *Client {
	child := *c
	child.authorization = auth
	return &child
}

// ResolveURL returns path unchanged when it already parses as an absolute URL
// with a hostname, and rootURL+path otherwise. Concatenation is verbatim: no
// path normalization, no slash deduplication.
func (c *Client) ResolveURL(path string) string {
	if u, err := url.Parse(path); err == nil && u.Host != "" {
		return path
	}
	return c.rootURL + path
}

// NewRequest builds an outbound request for the given method and path. The
// method may be any verb string; path is resolved via ResolveURL.
func (c *Client) NewRequest(method, path string) *PendingRequest {
	return &PendingRequest{
		client:  c,
		method:  method,
		url:     c.ResolveURL(path),
		headers: make(map[string]string),
	}
}

// Get builds a GET request for path.
func (c *Client) Get(path string) *PendingRequest { return c.NewRequest(http.MethodGet, path) }

// Post builds a POST request for path.
func (c *Client) Post(path string) *PendingRequest { return c.NewRequest(http.MethodPost, path) }

// Put builds a PUT request for path.
func (c *Client) Put(path string) *PendingRequest { return c.NewRequest(http.MethodPut, path) }

// Delete builds a DELETE request for path.
func (c *Client) Delete(path string) *PendingRequest { return c.NewRequest(http.MethodDelete, path) }
