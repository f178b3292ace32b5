package aggregates

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
	"github.com/yungbote/registrar-backend/internal/observability"
	"github.com/yungbote/registrar-backend/internal/platform/ctxutil"
	"github.com/yungbote/registrar-backend/internal/platform/dbctx"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type BaseDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Runner TxRunner
	Hooks  Hooks
	Tracer trace.Tracer
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	if d.Tracer == nil {
		d.Tracer = observability.Tracer()
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return d
}

func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	start := time.Now()
	deps = deps.withDefaults()
	op = strings.TrimSpace(op)
	if op == "" {
		op = "aggregate.write"
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := deps.Tracer.Start(ctx, op, trace.WithAttributes(attribute.String("aggregate.op", op)))
	defer span.End()
	ctxutil.RecordOperation(ctx, op, "")

	err := deps.Runner.InTx(ctx, fn)
	mapped := MapError(op, err)

	status := "success"
	if mapped != nil {
		code := domainagg.CodeOf(mapped)
		status = aggregateErrorStatus(mapped)
		ctxutil.RecordOperation(ctx, op, status)
		span.RecordError(mapped)
		span.SetStatus(codes.Error, status)
		switch code {
		case domainagg.CodeConstraintViolation:
			deps.Hooks.IncConstraintViolation(op)
		case domainagg.CodeTransactionAborted:
			deps.Hooks.IncAborted(op)
		}
		switch code {
		case domainagg.CodeInternal, domainagg.CodeTransactionAborted:
			deps.Log.Warn("aggregate write rolled back", "op", op, "code", string(code), "error", mapped)
		default:
			deps.Log.Debug("aggregate write rejected", "op", op, "code", string(code), "error", mapped)
		}
	}
	span.SetAttributes(attribute.String("aggregate.status", status))
	deps.Hooks.ObserveOperation(op, status, time.Since(start))
	return mapped
}

// executeRead runs fn outside any new transaction, joining the caller's when ctx carries one.
func executeRead(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	deps = deps.withDefaults()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := deps.Tracer.Start(ctx, op, trace.WithAttributes(attribute.String("aggregate.op", op)))
	defer span.End()
	ctxutil.RecordOperation(ctx, op, "")

	if err := fn(dbctx.Context{Ctx: ctx, Tx: dbctx.TxFrom(ctx)}); err != nil {
		mapped := MapError(op, err)
		ctxutil.RecordOperation(ctx, op, aggregateErrorStatus(mapped))
		span.RecordError(mapped)
		span.SetStatus(codes.Error, aggregateErrorStatus(mapped))
		return mapped
	}
	return nil
}

func aggregateErrorStatus(err error) string {
	if err == nil {
		return "success"
	}
	code := strings.TrimSpace(string(domainagg.CodeOf(err)))
	if code == "" {
		code = strings.TrimSpace(string(domainagg.CodeOf(MapError("aggregate.status", err))))
	}
	if code == "" {
		return "failure"
	}
	return code
}
