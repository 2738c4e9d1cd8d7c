package filesystem

import (
	"context"
	"io/fs"
)

// Retrier runs an operation, repeating it while it fails transiently.
// retry.Executor satisfies this interface.
type Retrier interface {
	Execute(ctx context.Context, operation func(ctx context.Context) error) error
}

// RetryingFileSystem decorates a FileSystemProvider so that reads and
// writes are retried by a Retrier. Open and Stat pass through.
//
// Retries run under the context given to WithContext, so cancelling it
// stops a backoff wait instead of waiting out every attempt.
type RetryingFileSystem struct {
	ctx     context.Context
	inner   FileSystemProvider
	retrier Retrier
}

// NewRetryingFileSystem wraps inner. Panics if either argument is nil.
func NewRetryingFileSystem(inner FileSystemProvider, retrier Retrier) *RetryingFileSystem {
	if inner == nil {
		panic("inner cannot be nil")
	}
	if retrier == nil {
		panic("retrier cannot be nil")
	}
	return &RetryingFileSystem{ctx: context.Background(), inner: inner, retrier: retrier}
}

// WithContext returns a copy of r whose retries stop when ctx is done.
// Panics if ctx is nil.
func (r *RetryingFileSystem) WithContext(ctx context.Context) *RetryingFileSystem {
	if ctx == nil {
		panic("ctx cannot be nil")
	}
	clone := *r
	clone.ctx = ctx
	return &clone
}

// Open passes through to the wrapped provider.
func (r *RetryingFileSystem) Open(path string) (Directory, error) {
	return r.inner.Open(path)
}

// ReadFile reads path, retrying transient failures.
func (r *RetryingFileSystem) ReadFile(path string) ([]byte, error) {
	var data []byte
	err := r.retrier.Execute(r.ctx, func(context.Context) error {
		var readErr error
		data, readErr = r.inner.ReadFile(path)
		return readErr
	})
	return data, err
}

// WriteFile replaces path, retrying transient failures. Every attempt is a
// complete atomic replacement, so a retry never leaves a partial file.
func (r *RetryingFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return r.retrier.Execute(r.ctx, func(context.Context) error {
		return r.inner.WriteFile(path, data, perm)
	})
}

// Stat passes through to the wrapped provider.
func (r *RetryingFileSystem) Stat(path string) (FileInfo, error) {
	return r.inner.Stat(path)
}

var _ FileSystemProvider = (*RetryingFileSystem)(nil)
