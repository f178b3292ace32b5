package logger

import (
	"strings"
	"testing"
)

func TestSanitizeValue(t *testing.T) {
	if got := sanitizeValue("db_password", "hunter2"); got != "[REDACTED]" {
		t.Fatalf("password: want=[REDACTED] got=%v", got)
	}
	if got := sanitizeValue("dsn", "postgres://u:p@h/db"); got != "[REDACTED]" {
		t.Fatalf("dsn: want=[REDACTED] got=%v", got)
	}

	hashed, ok := sanitizeValue("email", "poe@example.com").(string)
	if !ok || !strings.HasPrefix(hashed, "hash:") {
		t.Fatalf("email: expected hash prefix, got=%v", hashed)
	}
	if again := sanitizeValue("email", "poe@example.com"); again != hashed {
		t.Fatalf("email hash not stable: %v vs %v", again, hashed)
	}

	if got := sanitizeValue("title", "Raven"); got != "Raven" {
		t.Fatalf("title should pass through, got=%v", got)
	}

	nested, ok := sanitizeValue("payload", map[string]interface{}{"password": "x", "name": "Poe"}).(map[string]interface{})
	if !ok {
		t.Fatalf("expected map payload")
	}
	if nested["password"] != "[REDACTED]" || nested["name"] != "Poe" {
		t.Fatalf("nested sanitize: %+v", nested)
	}
}

func TestSanitizeKVsKeepsOddTrailingKey(t *testing.T) {
	out := sanitizeKVs([]interface{}{"name", "Poe", "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected kvs: %+v", out)
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"test", "development", "production"} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		l.With("component", "test").Debug("hello", "k", "v")
	}
}
