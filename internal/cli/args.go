package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireNotebookPaths validates that at least one notebook argument is provided.
// Returns a helpful error message with usage and examples if missing.
func RequireNotebookPaths(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <notebook>

Usage: %s

Example:
  %s Model_Pruning.ipynb`, cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}

// OptionalDirectory validates that at most one directory argument is provided.
func OptionalDirectory(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("accepts at most 1 arg(s), received %d", len(args))
	}
	return nil
}
