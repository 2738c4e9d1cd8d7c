package nbfix

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := fixer.FixNotebook(ctx, path)
//	if errors.Is(err, nbfix.ErrLoadFailed) {
//	    // Notebook missing or unreadable
//	}
var (
	// ErrLoadFailed indicates the notebook could not be read or parsed.
	ErrLoadFailed = errors.New("failed to load notebook")

	// ErrUnsupportedFormat indicates the notebook is not nbformat version 4.
	ErrUnsupportedFormat = errors.New("unsupported notebook format")

	// ErrMalformedWidgets indicates metadata.widgets or its widget-state
	// section is present but is not a JSON object.
	ErrMalformedWidgets = errors.New("malformed widget metadata")

	// ErrWriteFailed indicates the backup or the corrected notebook could not be written.
	ErrWriteFailed = errors.New("write failed")

	// ErrBackupMismatch indicates the backup read back from disk differs from the original.
	ErrBackupMismatch = errors.New("backup does not match original")

	// ErrBackupNotFound indicates restore was asked to use a backup that does not exist.
	ErrBackupNotFound = errors.New("backup not found")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrBatchFailed indicates at least one notebook in a batch failed.
	ErrBatchFailed = errors.New("one or more notebooks failed")

	// ErrFixNeeded indicates check mode found notebooks that need a fix.
	ErrFixNeeded = errors.New("widget metadata needs fixing")

	// ErrRestoreDeclined indicates the user declined to overwrite a notebook with its backup.
	ErrRestoreDeclined = errors.New("restore declined")
)

// usageErrorPatterns are message fragments cobra and pflag produce for
// command-line misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
	"missing required argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrBatchFailed):
		return ExitBatchFailed
	case errors.Is(err, ErrFixNeeded):
		return ExitFixNeeded
	case errors.Is(err, ErrBackupNotFound):
		return ExitBackupNotFound
	case errors.Is(err, ErrRestoreDeclined):
		return ExitRestoreDeclined
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
