package apiclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// streamTransport returns the round tripper backing Forward. The configured
// timeout must bound dialing and response headers without cutting off bodies
// that stream longer, so it maps to ResponseHeaderTimeout rather than a
// whole-exchange deadline. A custom non-Transport round tripper is used
// as-is; its timeout behavior is the caller's.
func streamTransport(rt http.RoundTripper, timeout time.Duration) http.RoundTripper {
	if rt == nil {
		rt = http.DefaultTransport
	}
	base, ok := rt.(*http.Transport)
	if !ok {
		return rt
	}
	t := base.Clone()
	t.ResponseHeaderTimeout = timeout
	return t
}

// validateScheme parses target and ensures it uses a supported scheme. This
// is the only eager validation applied to a client's root URL, and it only
// triggers once a request (proxied ones included) is actually made.
func validateScheme(target string) (*url.URL, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse target url %q: %w", target, err)
	}
	switch u.Scheme {
	case "http", "https":
		return u, nil
	default:
		return nil, fmt.Errorf("scheme %q: %w", u.Scheme, ErrInvalidScheme)
	}
}

// Forward performs a raw exchange through the client's streaming transport,
// leaving both bodies as streams. It is the dispatch path the proxy handler
// uses; the caller owns the returned response body and must close it. A
// "Host" entry in header overrides the request's Host. The client timeout
// bounds dialing and response headers; once headers have arrived, the body
// streams until done or the request context is cancelled.
func (c *Client) Forward(ctx context.Context, method, target string, header http.Header, body io.Reader) (*http.Response, error) {
	if _, err := validateScheme(target); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range header {
		if http.CanonicalHeaderKey(k) == "Host" {
			continue
		}
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if host := header.Get("Host"); host != "" {
		req.Host = host
	}
	if cl := header.Get("Content-Length"); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil {
			req.ContentLength = n
		}
	}

	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}
	return resp, nil
}
