package aggregates

import (
	"strings"
	"time"

	"github.com/yungbote/registrar-backend/internal/observability"
)

// Hooks captures aggregate-level observability events.
type Hooks interface {
	ObserveOperation(name, status string, dur time.Duration)
	IncConstraintViolation(name string)
	IncAborted(name string)
	IncReferenceRace(table string)
	AddReferencesCreated(table string, n int)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration) {}
func (noopHooks) IncConstraintViolation(string)                  {}
func (noopHooks) IncAborted(string)                              {}
func (noopHooks) IncReferenceRace(string)                        {}
func (noopHooks) AddReferencesCreated(string, int)               {}

type observabilityHooks struct {
	metrics *observability.Metrics
}

// NewObservabilityHooks creates aggregate hooks backed by observability metrics.
func NewObservabilityHooks(metrics *observability.Metrics) Hooks {
	if metrics == nil {
		return noopHooks{}
	}
	return &observabilityHooks{metrics: metrics}
}

func (h *observabilityHooks) ObserveOperation(name, status string, dur time.Duration) {
	h.metrics.ObserveAggregateOperation(strings.TrimSpace(name), strings.TrimSpace(status), dur)
}

func (h *observabilityHooks) IncConstraintViolation(name string) {
	h.metrics.IncConstraintViolation(strings.TrimSpace(name))
}

func (h *observabilityHooks) IncAborted(name string) {
	h.metrics.IncTransactionAborted(strings.TrimSpace(name))
}

func (h *observabilityHooks) IncReferenceRace(table string) {
	h.metrics.IncReferenceRace(table)
}

func (h *observabilityHooks) AddReferencesCreated(table string, n int) {
	h.metrics.AddReferencesCreated(table, n)
}
