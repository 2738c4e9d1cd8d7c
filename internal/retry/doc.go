// Package retry repeats file operations that fail for transient reasons.
//
// Notebooks are often open in an editor or watched by a sync client while
// nbfix rewrites them. Those programs can briefly hold a file busy, which
// surfaces as EBUSY or EAGAIN on Unix and as a sharing violation on Windows.
// Such failures are retried with exponential backoff; anything else is
// returned at once.
//
// # Example Usage
//
//	executor := retry.NewExecutor(
//	    retry.NewFileErrorClassifier(),
//	    retry.NewExponentialBackoff(3, retry.WithInitialDelay(50*time.Millisecond)),
//	)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return os.WriteFile(path, data, 0644)
//	})
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. WithOnRetry returns a copy.
package retry
