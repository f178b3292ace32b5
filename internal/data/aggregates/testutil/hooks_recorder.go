package testutil

import (
	"sync"
	"time"

	"github.com/yungbote/registrar-backend/internal/data/aggregates"
)

// HooksRecorder captures aggregate hook signals in tests.
type HooksRecorder struct {
	mu sync.Mutex

	Operations           []OperationEvent
	ConstraintViolations []string
	Aborted              []string
	ReferenceRaces       []string
	ReferencesCreated    map[string]int
}

type OperationEvent struct {
	Name     string
	Status   string
	Duration time.Duration
}

var _ aggregates.Hooks = (*HooksRecorder)(nil)

func (h *HooksRecorder) ObserveOperation(name, status string, dur time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Operations = append(h.Operations, OperationEvent{
		Name:     name,
		Status:   status,
		Duration: dur,
	})
}

func (h *HooksRecorder) IncConstraintViolation(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ConstraintViolations = append(h.ConstraintViolations, name)
}

func (h *HooksRecorder) IncAborted(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Aborted = append(h.Aborted, name)
}

func (h *HooksRecorder) IncReferenceRace(table string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ReferenceRaces = append(h.ReferenceRaces, table)
}

func (h *HooksRecorder) AddReferencesCreated(table string, n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ReferencesCreated == nil {
		h.ReferencesCreated = map[string]int{}
	}
	h.ReferencesCreated[table] += n
}

// Statuses returns the recorded status of every operation named name.
func (h *HooksRecorder) Statuses(name string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, op := range h.Operations {
		if op.Name == name {
			out = append(out, op.Status)
		}
	}
	return out
}
