package nbfix

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // All notebooks processed without error
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid nbfix.yaml or flag combination
	ExitBatchFailed     = 11 // One or more notebooks failed to process
	ExitFixNeeded       = 12 // check found notebooks whose widget metadata needs a fix
	ExitBackupNotFound  = 13 // restore could not find a backup file
	ExitRestoreDeclined = 14 // User declined the restore confirmation
)

const (
	// WidgetStateKey is the MIME type under metadata.widgets that holds
	// serialized widget state.
	WidgetStateKey = "application/vnd.jupyter.widget-state+json"

	// StateKey is the key renderers expect at the top level of the
	// widget-state section.
	StateKey = "state"

	// DefaultBackupSuffix is appended to a notebook path to form its backup path.
	DefaultBackupSuffix = ".backup"

	// SupportedFormat is the only nbformat major version nbfix reads and writes.
	SupportedFormat = 4

	// ConfigFileName is the optional project configuration file.
	ConfigFileName = "nbfix.yaml"
)

// DefaultNotebooks returns the notebooks processed when neither arguments
// nor nbfix.yaml name any targets. A fresh slice is returned on every call.
func DefaultNotebooks() []string {
	return []string{"Model_Pruning.ipynb", "C4AIScholarsChallenge_2022.ipynb"}
}
