package testutil

import (
	"testing"
	"time"
)

func TestHooksRecorder_CapturesSignals(t *testing.T) {
	h := &HooksRecorder{}
	h.ObserveOperation("student.create", "success", 10*time.Millisecond)
	h.IncConstraintViolation("student.create")
	h.IncAborted("student.update")
	h.IncReferenceRace("courses")
	h.AddReferencesCreated("courses", 2)
	h.AddReferencesCreated("courses", 1)

	if len(h.Operations) != 1 {
		t.Fatalf("expected 1 op event, got %d", len(h.Operations))
	}
	if got := h.Statuses("student.create"); len(got) != 1 || got[0] != "success" {
		t.Fatalf("unexpected statuses: %+v", got)
	}
	if len(h.ConstraintViolations) != 1 || h.ConstraintViolations[0] != "student.create" {
		t.Fatalf("unexpected constraint violations: %+v", h.ConstraintViolations)
	}
	if len(h.Aborted) != 1 || h.Aborted[0] != "student.update" {
		t.Fatalf("unexpected aborted: %+v", h.Aborted)
	}
	if len(h.ReferenceRaces) != 1 || h.ReferencesCreated["courses"] != 3 {
		t.Fatalf("unexpected reference signals: races=%+v created=%+v", h.ReferenceRaces, h.ReferencesCreated)
	}
}
