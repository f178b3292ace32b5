package aggregates

import (
	"context"
	"errors"
	"testing"

	repotestutil "github.com/yungbote/registrar-backend/internal/data/repos/testutil"
	types "github.com/yungbote/registrar-backend/internal/domain"
	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
	"github.com/yungbote/registrar-backend/internal/platform/dbctx"
)

func countCourses(t *testing.T, runner TxRunner) int64 {
	t.Helper()
	var n int64
	err := runner.InTx(context.Background(), func(dbc dbctx.Context) error {
		return dbc.Tx.Model(&types.Course{}).Count(&n).Error
	})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestWithTransactionCommitsAndReturnsValue(t *testing.T) {
	runner := NewGormTxRunner(repotestutil.DB(t))

	got, err := WithTransaction(context.Background(), runner, func(dbc dbctx.Context) (*types.Course, error) {
		c := &types.Course{Title: "Math"}
		return c, dbc.Tx.Create(c).Error
	})
	if err != nil {
		t.Fatalf("WithTransaction: %v", err)
	}
	if got == nil || got.Title != "Math" {
		t.Fatalf("unexpected value %+v", got)
	}
	if n := countCourses(t, runner); n != 1 {
		t.Fatalf("courses=%d", n)
	}
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	runner := NewGormTxRunner(repotestutil.DB(t))
	boom := errors.New("boom")

	got, err := WithTransaction(context.Background(), runner, func(dbc dbctx.Context) (*types.Course, error) {
		c := &types.Course{Title: "Math"}
		if err := dbc.Tx.Create(c).Error; err != nil {
			return nil, err
		}
		return c, boom
	})
	if !errors.Is(err, boom) || got != nil {
		t.Fatalf("expected boom and no value, got %v %+v", err, got)
	}
	if n := countCourses(t, runner); n != 0 {
		t.Fatalf("write must roll back, courses=%d", n)
	}
}

func TestInTxConvertsPanicToInternal(t *testing.T) {
	runner := NewGormTxRunner(repotestutil.DB(t))

	err := runner.InTx(context.Background(), func(dbc dbctx.Context) error {
		if err := dbc.Tx.Create(&types.Course{Title: "Math"}).Error; err != nil {
			return err
		}
		panic("unexpected")
	})
	if !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("expected internal, got %v", err)
	}
	if n := countCourses(t, runner); n != 0 {
		t.Fatalf("panicking work must roll back, courses=%d", n)
	}
}

func TestInTxCanceledContext(t *testing.T) {
	runner := NewGormTxRunner(repotestutil.DB(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := runner.InTx(ctx, func(dbctx.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) || called {
		t.Fatalf("canceled context must not run work, err=%v called=%v", err, called)
	}
	if !domainagg.IsCode(MapError("op", err), domainagg.CodeTransactionAborted) {
		t.Fatalf("cancellation must classify as transaction_aborted")
	}

	ctx, cancel = context.WithCancel(context.Background())
	err = runner.InTx(ctx, func(dbc dbctx.Context) error {
		if err := dbc.Tx.Create(&types.Course{Title: "Art"}).Error; err != nil {
			return err
		}
		cancel()
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("cancel during work must abort commit, got %v", err)
	}
	if n := countCourses(t, runner); n != 0 {
		t.Fatalf("canceled work must roll back, courses=%d", n)
	}
}

func TestInTxNestedUsesSavepoint(t *testing.T) {
	runner := NewGormTxRunner(repotestutil.DB(t))
	boom := errors.New("inner failed")

	err := runner.InTx(context.Background(), func(dbc dbctx.Context) error {
		if err := dbc.Tx.Create(&types.Course{Title: "Outer"}).Error; err != nil {
			return err
		}
		innerErr := runner.InTx(dbc.Ctx, func(inner dbctx.Context) error {
			if err := inner.Tx.Create(&types.Course{Title: "Inner"}).Error; err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(innerErr, boom) {
			t.Errorf("inner error: %v", innerErr)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("outer: %v", err)
	}
	if n := countCourses(t, runner); n != 1 {
		t.Fatalf("only the outer write should commit, courses=%d", n)
	}
}
