package nbfix

import "context"

// Approver confirms that a notebook may be overwritten by its backup.
//
// Implementations:
//   - AutoApprover: approves without asking (--force or no terminal)
//   - InteractiveApprover: asks on the terminal and waits for y/N
type Approver interface {
	// RequestApproval asks whether path may be replaced by backupPath.
	// Returns (true, nil) to proceed, (false, nil) when declined, or an
	// error if the answer could not be read or ctx was cancelled.
	RequestApproval(ctx context.Context, path, backupPath string) (bool, error)
}
