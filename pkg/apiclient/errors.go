package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ErrInvalidScheme reports a target URL whose scheme is neither http nor
// https. It surfaces only when a request is dispatched, never at client
// construction, and before any network I/O takes place.
var ErrInvalidScheme = errors.New("invalid protocol")

// ClientError is a structured error derived from an already-received
// non-success response. It is constructed only via RejectResponse.
type ClientError struct {
	// Message is the body's "message" field, else the raw response text.
	Message string
	// Code is the body's "code" field, else the decimal HTTP status code.
	Code string
	// Name is the body's "name" field, else the canonical status phrase
	// with whitespace removed plus an "Error" suffix.
	Name string
	// Response retains the originating response for caller inspection.
	Response *Response
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("%s (code %s): %s", e.Name, e.Code, e.Message)
}

// errorBody is the conventional error payload shape returned by upstream
// services. Code may arrive as a string or a number.
type errorBody struct {
	Message string `json:"message"`
	Code    any    `json:"code"`
	Name    string `json:"name"`
}

// RejectResponse builds a ClientError from a received response. It never
// decides on its own that a status is a failure; callers invoke it once they
// have judged the status themselves. Always returns a non-nil error.
func (c *Client) RejectResponse(resp *Response) error {
	if resp == nil {
		return &ClientError{Message: "no response", Name: "ClientError"}
	}

	var body errorBody
	_ = json.Unmarshal(resp.Body, &body)

	cerr := &ClientError{
		Message:  body.Message,
		Name:     body.Name,
		Response: resp,
	}
	if cerr.Message == "" {
		cerr.Message = strings.TrimSpace(string(resp.Body))
	}
	switch code := body.Code.(type) {
	case string:
		cerr.Code = code
	case float64:
		cerr.Code = strconv.FormatFloat(code, 'f', -1, 64)
	}
	if cerr.Code == "" {
		cerr.Code = strconv.Itoa(resp.StatusCode)
	}
	if cerr.Name == "" {
		cerr.Name = statusErrorName(resp.StatusCode)
	}
	return cerr
}

// statusErrorName maps a status code to its canonical error name, e.g.
// 400 -> "BadRequestError", 404 -> "NotFoundError".
func statusErrorName(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return fmt.Sprintf("HTTP%dError", status)
	}
	return strings.ReplaceAll(text, " ", "") + "Error"
}
