// Package proxy forwards inbound HTTP requests to a client's configured
// upstream, relaying status, headers, and body streams verbatim.
package proxy

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samvad-hq/samvad-api-relay/pkg/apiclient"
)

// hopHeaders are connection-scoped and must not be copied from the inbound
// request. Connection itself is re-added with a forced value afterwards.
var hopHeaders = map[string]struct{}{
	"connection":          {},
	"proxy-connection":    {},
	"keep-alive":          {},
	"proxy-authenticate":  {},
	"proxy-authorization": {},
	"te":                  {},
	"trailer":             {},
	"transfer-encoding":   {},
	"upgrade":             {},
}

// Options tunes how a handler forwards requests.
type Options struct {
	// StripPrefix is removed from the inbound path before resolving the
	// upstream target. Set it when the handler is mounted under a route
	// prefix that the upstream must not see.
	StripPrefix string
}

// Handler returns a middleware bound to client that forwards each inbound
// request to the client's upstream. Each request is handled independently;
// the only shared state is the immutable client configuration.
func Handler(client *apiclient.Client, opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		forward(client, opts, c)
	}
}

func forward(client *apiclient.Client, opts Options, c *gin.Context) {
	r := c.Request
	log := client.Logger()

	path := r.URL.Path
	if opts.StripPrefix != "" {
		path = strings.TrimPrefix(path, opts.StripPrefix)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
	}
	target := client.ResolveURL(path)
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	u, err := url.Parse(target)
	if err != nil {
		log.Errorf("proxy request %s %s failed: %v", r.Method, target, err)
		c.AbortWithStatus(http.StatusBadGateway)
		return
	}

	header := outboundHeaders(r.Header, u.Host)
	log.InfoObj(fmt.Sprintf("proxy request %s %s", r.Method, target), "request", map[string]any{
		"method":  r.Method,
		"url":     target,
		"headers": header,
	})

	start := time.Now()
	resp, err := client.Forward(r.Context(), r.Method, target, header, r.Body)
	if err != nil {
		log.Errorf("proxy request %s %s failed: %v", r.Method, target, err)
		c.AbortWithStatus(http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	log.InfoObj(
		fmt.Sprintf("proxy response %s %s status=%d elapsed_ms=%d",
			r.Method, target, resp.StatusCode, time.Since(start).Milliseconds()),
		"response", map[string]any{
			"status":  resp.StatusCode,
			"headers": resp.Header,
		})

	copyHeader(c.Writer.Header(), resp.Header)
	c.Writer.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		log.Errorf("proxy stream %s %s: %v", r.Method, target, err)
	}
}

// outboundHeaders copies the inbound headers minus hop-by-hop entries, then
// forces Connection, Host, and Origin. Copying through http.Header keys
// normalizes any case-variant inbound duplicates before the forced values
// are applied.
func outboundHeaders(in http.Header, host string) http.Header {
	out := make(http.Header, len(in))
	for k, vs := range in {
		if _, skip := hopHeaders[strings.ToLower(k)]; skip {
			continue
		}
		for _, v := range vs {
			out.Add(k, v)
		}
	}
	out.Set("Connection", "Keep-Alive")
	out.Set("Host", host)
	out.Set("Origin", host)
	return out
}

// copyHeader copies HTTP headers from src to dst.
func copyHeader(dst, src http.Header) {
	for k, vs := range src {
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}
