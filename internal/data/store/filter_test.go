package store

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

func resolveColumns(name string) (string, bool) {
	switch name {
	case "title", "Title":
		return "title", true
	case "id":
		return "id", true
	}
	return "", false
}

func TestFilterExpressions(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	exprs, err := Filter{"Title": "Math", "id": ids}.expressions(resolveColumns)
	if err != nil {
		t.Fatalf("expressions: %v", err)
	}
	if len(exprs) != 2 {
		t.Fatalf("want 2 expressions, got %d", len(exprs))
	}
	// Keys are sorted, so "Title" precedes "id".
	eq, ok := exprs[0].(clause.Eq)
	if !ok || eq.Column.(clause.Column).Name != "title" || eq.Value != "Math" {
		t.Fatalf("unexpected first expression: %#v", exprs[0])
	}
	in, ok := exprs[1].(clause.IN)
	if !ok || len(in.Values) != 2 || in.Values[0] != ids[0] {
		t.Fatalf("unexpected IN expression: %#v", exprs[1])
	}
}

func TestFilterRejectsUnknownField(t *testing.T) {
	if _, err := (Filter{"password": "x"}).expressions(resolveColumns); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestInValues(t *testing.T) {
	if _, ok := inValues(nil); ok {
		t.Fatalf("nil must not be an IN list")
	}
	if _, ok := inValues([]byte("raw")); ok {
		t.Fatalf("[]byte must be compared as a scalar")
	}
	vals, ok := inValues([]string{"a", "b"})
	if !ok || len(vals) != 2 || vals[1] != "b" {
		t.Fatalf("unexpected values %v", vals)
	}
}

func TestFilterString(t *testing.T) {
	got := Filter{"title": "Math", "name": "Ada"}.String()
	if got != "{name=Ada, title=Math}" {
		t.Fatalf("got %q", got)
	}
}
