package cli

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [notebook|directory...]",
	Short: "Report notebooks whose widget state needs a fix",
	Long: `Check inspects notebooks the same way fix does but never writes a file.

Exits with code 12 when at least one notebook needs a fix, which makes it
suitable as a CI gate. Targets are resolved exactly as for fix.

Examples:
  nbfix check
  nbfix check ./notebooks --json`,
	RunE: runCheck,
}

var checkFlags batchFlagValues

func init() {
	rootCmd.AddCommand(checkCmd)
	registerBatchFlags(checkCmd, &checkFlags)
}

func runCheck(cmd *cobra.Command, args []string) error {
	return runBatch(cmd, args, &checkFlags, true)
}
