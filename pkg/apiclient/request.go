package apiclient

import (
	"context"
	"fmt"
	"time"
)

// PendingRequest is an outbound call under construction. It is finalized by
// Do, which performs the exchange and returns the received Response whatever
// its status code; only transport-level failures and unsupported schemes
// produce an error.
type PendingRequest struct {
	client  *Client
	method  string
	url     string
	headers map[string]string
	body    any
}

// URL returns the fully resolved target URL.
func (p *PendingRequest) URL() string { return p.url }

// Method returns the request method.
func (p *PendingRequest) Method() string { return p.method }

// SetHeader sets a header on this request only.
func (p *PendingRequest) SetHeader(key, value string) *PendingRequest {
	p.headers[key] = value
	return p
}

// SetBody attaches an optional outgoing body. Structured values are encoded
// by the transport; byte slices and strings are sent as-is.
func (p *PendingRequest) SetBody(body any) *PendingRequest {
	p.body = body
	return p
}

// Do dispatches the request and waits for the outcome. Three observations are
// logged per call: the dispatch, then exactly one of transport failure or
// received response. Transport failures are advisory in the log and still
// returned to the caller.
func (p *PendingRequest) Do(ctx context.Context) (*Response, error) {
	if _, err := validateScheme(p.url); err != nil {
		return nil, err
	}

	req := p.client.rest.R().SetContext(ctx)
	for k, v := range p.client.headers {
		req.SetHeader(k, v)
	}
	for k, v := range p.headers {
		req.SetHeader(k, v)
	}
	if p.client.authorization != "" {
		req.SetHeader("Authorization", p.client.authorization)
	}
	if p.body != nil {
		req.SetBody(p.body)
	}

	log := p.client.log
	log.InfoObj(fmt.Sprintf("api request %s %s", p.method, p.url), "request", map[string]any{
		"method":  p.method,
		"url":     p.url,
		"headers": req.Header,
	})

	start := time.Now()
	resp, err := req.Execute(p.method, p.url)
	elapsed := time.Since(start)
	if err != nil {
		log.Errorf("api request %s %s failed: %v", p.method, p.url, err)
		return nil, fmt.Errorf("%s %s: %w", p.method, p.url, err)
	}

	log.InfoObj(
		fmt.Sprintf("api response %s %s status=%d elapsed_ms=%d",
			p.method, p.url, resp.StatusCode(), elapsed.Milliseconds()),
		"response", map[string]any{
			"status":  resp.StatusCode(),
			"headers": resp.Header(),
		})

	return &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
		Elapsed:    elapsed,
	}, nil
}
