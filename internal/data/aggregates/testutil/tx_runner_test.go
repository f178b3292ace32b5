package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/registrar-backend/internal/platform/dbctx"
)

func TestInjectedTxRunner_CommitsOnSuccess(t *testing.T) {
	r := &InjectedTxRunner{}
	called := false
	err := r.InTx(context.Background(), func(_ dbctx.Context) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !called {
		t.Fatalf("expected callback to run")
	}
	if b, c, rb := r.Counts(); b != 1 || c != 1 || rb != 0 {
		t.Fatalf("unexpected counters begin=%d commit=%d rollback=%d", b, c, rb)
	}
}

func TestInjectedTxRunner_RollbackOnBodyError(t *testing.T) {
	r := &InjectedTxRunner{}
	bodyErr := errors.New("boom")
	err := r.InTx(context.Background(), func(_ dbctx.Context) error {
		return bodyErr
	})
	if !errors.Is(err, bodyErr) {
		t.Fatalf("expected body err, got %v", err)
	}
	if b, c, rb := r.Counts(); b != 1 || c != 0 || rb != 1 {
		t.Fatalf("unexpected counters begin=%d commit=%d rollback=%d", b, c, rb)
	}
}

func TestInjectedTxRunner_FailCommitTriggersRollback(t *testing.T) {
	commitErr := errors.New("commit failed")
	r := &InjectedTxRunner{FailCommit: commitErr}
	err := r.InTx(context.Background(), func(_ dbctx.Context) error {
		return nil
	})
	if !errors.Is(err, commitErr) {
		t.Fatalf("expected commit err, got %v", err)
	}
	if b, c, rb := r.Counts(); b != 1 || c != 0 || rb != 1 {
		t.Fatalf("unexpected counters begin=%d commit=%d rollback=%d", b, c, rb)
	}
}

func TestInjectedTxRunner_FailBeforeBodySkipsCallback(t *testing.T) {
	injected := errors.New("begin body failed")
	r := &InjectedTxRunner{FailBeforeBody: injected}
	called := false
	err := r.InTx(context.Background(), func(_ dbctx.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, injected) {
		t.Fatalf("expected injected err, got %v", err)
	}
	if called {
		t.Fatalf("callback must not run")
	}
}
