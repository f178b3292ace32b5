package aggregates

import (
	"context"
	"fmt"

	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
	"github.com/yungbote/registrar-backend/internal/platform/dbctx"
	"gorm.io/gorm"
)

// TxRunner provides a shared transaction boundary primitive for aggregate writes.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

// NewGormTxRunner returns a transaction runner backed by GORM transactions.
// When ctx already carries a transaction the unit of work joins it under a
// savepoint, so an inner failure rolls back only the inner work.
func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return domainagg.NewError(domainagg.CodeInternal, "aggregate.tx", "transaction runner has nil db", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	base := r.db
	if outer := dbctx.TxFrom(ctx); outer != nil {
		base = outer
	}
	return base.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.WithTx(ctx, tx)
		if err := runGuarded(inner, tx, fn); err != nil {
			return err
		}
		// Commit only what the caller still wants.
		return ctx.Err()
	})
}

func runGuarded(ctx context.Context, tx *gorm.DB, fn func(dbc dbctx.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = domainagg.NewError(domainagg.CodeInternal, "aggregate.tx", fmt.Sprintf("panic in unit of work: %v", p), nil)
		}
	}()
	return fn(dbctx.Context{Ctx: ctx, Tx: tx})
}

// WithTransaction runs fn in one unit of work and returns its value only when
// the work committed. Errors come back classified.
func WithTransaction[T any](ctx context.Context, runner TxRunner, fn func(dbc dbctx.Context) (T, error)) (T, error) {
	var (
		out  T
		zero T
	)
	if runner == nil {
		return zero, domainagg.NewError(domainagg.CodeInternal, "aggregate.tx", "nil transaction runner", nil)
	}
	err := runner.InTx(ctx, func(dbc dbctx.Context) error {
		v, err := fn(dbc)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		return zero, MapError("aggregate.tx", err)
	}
	return out, nil
}
