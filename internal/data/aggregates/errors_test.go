package aggregates

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mattn/go-sqlite3"
	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
	"gorm.io/gorm"
)

func TestMapError_InvalidArgument(t *testing.T) {
	err := MapError("op", InvalidArgumentError("op", "bad input"))
	if !domainagg.IsCode(err, domainagg.CodeInvalidArgument) {
		t.Fatalf("expected invalid_argument code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_NotFound(t *testing.T) {
	err := MapError("op", gorm.ErrRecordNotFound)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_SQLiteUnique(t *testing.T) {
	raw := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}
	err := MapError("op", fmt.Errorf("insert: %w", raw))
	if !domainagg.IsCode(err, domainagg.CodeConstraintViolation) {
		t.Fatalf("expected constraint_violation code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_Canceled(t *testing.T) {
	err := MapError("op", context.Canceled)
	if !domainagg.IsCode(err, domainagg.CodeTransactionAborted) {
		t.Fatalf("expected transaction_aborted code, got %q (%v)", domainagg.CodeOf(err), err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cause to stay reachable")
	}
}

func TestMapError_PassthroughAggregateError(t *testing.T) {
	in := domainagg.NewError(domainagg.CodeTransactionAborted, "op", "retry", errors.New("boom"))
	out := MapError("other", in)
	if out != in {
		t.Fatalf("expected passthrough aggregate error")
	}
}

func TestMapError_Nil(t *testing.T) {
	if err := MapError("op", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
