package apierr

import (
	"errors"
	"net/http"
	"testing"
)

func TestBadRequest(t *testing.T) {
	cause := errors.New("bad uuid")
	err := BadRequest("invalid id %q: %w", "x", cause)
	if err.Status != http.StatusBadRequest || err.Code != "invalid_argument" {
		t.Fatalf("unexpected error: %+v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause")
	}
	if got := err.Error(); got != `invalid id "x": bad uuid` {
		t.Fatalf("message: %q", got)
	}
}

func TestErrorFallbacks(t *testing.T) {
	if got := New(http.StatusTeapot, "", nil).Error(); got != "api error (418)" {
		t.Fatalf("got %q", got)
	}
	if got := New(0, "conflict", nil).Error(); got != "conflict" {
		t.Fatalf("got %q", got)
	}
	var nilErr *Error
	if nilErr.Error() != "" {
		t.Fatalf("nil error must render empty")
	}
}
