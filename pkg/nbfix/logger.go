package nbfix

// Logger provides a pluggable logging interface for nbfix operations.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	Info(format string, args ...interface{})

	// Success logs a message reporting a completed or confirmed state.
	Success(format string, args ...interface{})

	// Done logs the final message of a completed operation.
	Done(format string, args ...interface{})

	// Warn logs a message reporting a detected problem that is not a failure.
	Warn(format string, args ...interface{})

	// Error logs error messages.
	Error(format string, args ...interface{})
}
