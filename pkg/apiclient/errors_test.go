package apiclient

import (
	"errors"
	"net/http"
	"testing"
)

func TestRejectResponseStatusFallbacks(t *testing.T) {
	c := New(Options{})
	resp := &Response{
		StatusCode: http.StatusNotFound,
		Body:       []byte("Not Found"),
	}

	err := c.RejectResponse(resp)
	var cerr *ClientError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ClientError, got %T", err)
	}
	if cerr.Message != "Not Found" {
		t.Fatalf("unexpected message %q", cerr.Message)
	}
	if cerr.Code != "404" {
		t.Fatalf("unexpected code %q", cerr.Code)
	}
	if cerr.Name != "NotFoundError" {
		t.Fatalf("unexpected name %q", cerr.Name)
	}
	if cerr.Response != resp {
		t.Fatalf("original response not retained")
	}
}

func TestRejectResponseStructuredBody(t *testing.T) {
	c := New(Options{})
	resp := &Response{
		StatusCode: http.StatusInternalServerError,
		Body:       []byte(`{"message":"bad thing","code":"E1","name":"CustomError"}`),
	}

	err := c.RejectResponse(resp)
	var cerr *ClientError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ClientError, got %T", err)
	}
	if cerr.Message != "bad thing" || cerr.Code != "E1" || cerr.Name != "CustomError" {
		t.Fatalf("body fields not used: %+v", cerr)
	}
}

func TestRejectResponseNumericCode(t *testing.T) {
	c := New(Options{})
	resp := &Response{
		StatusCode: http.StatusBadRequest,
		Body:       []byte(`{"code":17}`),
	}

	err := c.RejectResponse(resp)
	var cerr *ClientError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ClientError, got %T", err)
	}
	if cerr.Code != "17" {
		t.Fatalf("unexpected code %q", cerr.Code)
	}
	if cerr.Name != "BadRequestError" {
		t.Fatalf("unexpected name %q", cerr.Name)
	}
}

func TestRejectResponseNilResponse(t *testing.T) {
	c := New(Options{})
	if err := c.RejectResponse(nil); err == nil {
		t.Fatalf("expected non-nil error for nil response")
	}
}

func TestStatusErrorName(t *testing.T) {
	cases := []struct {
		status int
		want   string
	}{
		{http.StatusBadRequest, "BadRequestError"},
		{http.StatusNotFound, "NotFoundError"},
		{http.StatusServiceUnavailable, "ServiceUnavailableError"},
		{999, "HTTP999Error"},
	}
	for _, tc := range cases {
		if got := statusErrorName(tc.status); got != tc.want {
			t.Fatalf("statusErrorName(%d) = %q, want %q", tc.status, got, tc.want)
		}
	}
}
