package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Response is the outcome of a completed exchange. A Response is produced for
// any received status code; callers branch on StatusCode and invoke
// RejectResponse when they decide the status constitutes a failure.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// Elapsed measures from just before dispatch to response arrival.
	Elapsed time.Duration
}

// IsError reports whether the status code falls outside the 2xx range.
func (r *Response) IsError() bool {
	return r.StatusCode < http.StatusOK || r.StatusCode >= http.StatusMultipleChoices
}

// JSON decodes the response body into v.
func (r *Response) JSON(v any) error {
	if len(r.Body) == 0 {
		return errors.New("empty response body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
