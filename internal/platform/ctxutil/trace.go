package ctxutil

import (
	"context"
	"sync"
)

type traceDataKey struct{}

// TraceData travels with one HTTP request. Resource is the API collection the
// route serves; Operation and ErrorCode are filled in by the first aggregate
// operation the request runs.
type TraceData struct {
	TraceID   string
	RequestID string
	Resource  string

	mu        sync.Mutex
	operation string
	errorCode string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if ctx == nil {
		return nil
	}
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// RecordOperation notes the aggregate operation serving the request. Nested
// operations do not overwrite the outermost one.
func RecordOperation(ctx context.Context, op, errorCode string) {
	td := GetTraceData(ctx)
	if td == nil {
		return
	}
	td.mu.Lock()
	defer td.mu.Unlock()
	if td.operation != "" && td.operation != op {
		return
	}
	td.operation = op
	td.errorCode = errorCode
}

// Operation returns the recorded aggregate operation and its error code, if any.
func (td *TraceData) Operation() (op, errorCode string) {
	td.mu.Lock()
	defer td.mu.Unlock()
	return td.operation, td.errorCode
}
