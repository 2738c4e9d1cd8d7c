package retry

import (
	"context"
	"errors"
	"io/fs"
	"syscall"
	"testing"
	"time"
)

// mockOperation fails with err for the first failures invocations.
type mockOperation struct {
	invocations int
	failures    int
	err         error
}

func (m *mockOperation) execute(ctx context.Context) error {
	m.invocations++
	if m.invocations <= m.failures {
		return m.err
	}
	return nil
}

var busyErr = &fs.PathError{Op: "rename", Path: "nb.ipynb", Err: syscall.EBUSY}

func fastExecutor(maxAttempts int) *Executor {
	return NewExecutor(
		NewFileErrorClassifier(),
		NewExponentialBackoff(maxAttempts, WithInitialDelay(time.Millisecond), WithJitter(0)),
	)
}

func TestExecutor_SuccessOnFirstAttempt(t *testing.T) {
	op := &mockOperation{}

	if err := fastExecutor(3).Execute(context.Background(), op.execute); err != nil {
		t.Errorf("Expected success, got error: %v", err)
	}
	if op.invocations != 1 {
		t.Errorf("Expected 1 invocation, got %d", op.invocations)
	}
}

func TestExecutor_SuccessAfterRetries(t *testing.T) {
	op := &mockOperation{failures: 2, err: busyErr}

	if err := fastExecutor(5).Execute(context.Background(), op.execute); err != nil {
		t.Errorf("Expected success after retries, got error: %v", err)
	}
	if op.invocations != 3 {
		t.Errorf("Expected 3 invocations, got %d", op.invocations)
	}
}

func TestExecutor_FatalErrorNoRetry(t *testing.T) {
	fatal := &fs.PathError{Op: "open", Path: "nb.ipynb", Err: fs.ErrPermission}
	op := &mockOperation{failures: 10, err: fatal}

	err := fastExecutor(5).Execute(context.Background(), op.execute)
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("Expected permission error, got %v", err)
	}
	if op.invocations != 1 {
		t.Errorf("Expected 1 invocation (no retries for fatal error), got %d", op.invocations)
	}
}

func TestExecutor_ExhaustedRetries(t *testing.T) {
	op := &mockOperation{failures: 999, err: busyErr}

	err := fastExecutor(3).Execute(context.Background(), op.execute)
	if !errors.Is(err, syscall.EBUSY) {
		t.Fatalf("Expected busy error after exhausted retries, got %v", err)
	}
	if op.invocations != 4 {
		t.Errorf("Expected 4 invocations (1 initial + 3 retries), got %d", op.invocations)
	}
}

func TestExecutor_ZeroAttemptsMeansNoRetry(t *testing.T) {
	op := &mockOperation{failures: 999, err: busyErr}

	_ = fastExecutor(0).Execute(context.Background(), op.execute)
	if op.invocations != 1 {
		t.Errorf("Expected 1 invocation, got %d", op.invocations)
	}
}

func TestExecutor_ContextCancelledDuringBackoff(t *testing.T) {
	executor := NewExecutor(
		NewFileErrorClassifier(),
		NewExponentialBackoff(5, WithInitialDelay(time.Hour), WithMaxDelay(time.Hour), WithJitter(0)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	executor = executor.WithOnRetry(func(int, error, time.Duration) { cancel() })

	op := &mockOperation{failures: 999, err: busyErr}
	err := executor.Execute(ctx, op.execute)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if op.invocations != 1 {
		t.Errorf("Expected 1 invocation, got %d", op.invocations)
	}
}

func TestExecutor_OnRetryCallback(t *testing.T) {
	var attempts []int
	var delays []time.Duration
	executor := fastExecutor(5).WithOnRetry(func(attempt int, err error, delay time.Duration) {
		attempts = append(attempts, attempt)
		delays = append(delays, delay)
	})

	op := &mockOperation{failures: 3, err: busyErr}
	if err := executor.Execute(context.Background(), op.execute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(attempts) != 3 || attempts[0] != 0 || attempts[2] != 2 {
		t.Errorf("unexpected retry attempts: %v", attempts)
	}
	if delays[0] != time.Millisecond || delays[1] != 2*time.Millisecond {
		t.Errorf("unexpected delays: %v", delays)
	}
}

func TestExecutor_WithOnRetryDoesNotMutate(t *testing.T) {
	base := fastExecutor(1)
	_ = base.WithOnRetry(func(int, error, time.Duration) {})
	if base.onRetry != nil {
		t.Error("WithOnRetry must not modify the receiver")
	}
}

func TestNewExecutor_PanicsOnNil(t *testing.T) {
	assertPanics := func(name string, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		f()
	}
	assertPanics("nil classifier", func() { NewExecutor(nil, NewExponentialBackoff(1)) })
	assertPanics("nil strategy", func() { NewExecutor(NewFileErrorClassifier(), nil) })
}
