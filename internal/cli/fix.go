package cli

import (
	"github.com/spf13/cobra"
)

var fixCmd = &cobra.Command{
	Use:   "fix [notebook|directory...]",
	Short: "Wrap widget state under the \"state\" key",
	Long: `Fix rewrites notebooks whose widget state lacks the top-level "state" key.

For each notebook the fix command:
1. Loads the notebook (nbformat 4 only)
2. Looks up metadata.widgets["application/vnd.jupyter.widget-state+json"]
3. Wraps the widget map as {"state": ...} when the key is missing
4. Writes the original file to <notebook>.backup and verifies it
5. Replaces the notebook with the corrected version

Notebooks that need no change are left untouched and get no backup.
A notebook that fails is reported and the remaining notebooks still run.

Targets:
  Arguments, otherwise the notebooks listed in nbfix.yaml, otherwise
  Model_Pruning.ipynb and C4AIScholarsChallenge_2022.ipynb.
  A directory argument expands to the *.ipynb files beneath it,
  skipping .ipynb_checkpoints.

Examples:
  # Fix the default notebooks in the current directory
  nbfix fix

  # Fix specific notebooks
  nbfix fix analysis.ipynb report.ipynb

  # Fix every notebook in a directory, keep going on failures
  nbfix fix ./notebooks --allow-failures

  # Machine-readable report
  nbfix fix ./notebooks --json > report.json`,
	RunE: runFix,
}

var fixFlags batchFlagValues

func init() {
	rootCmd.AddCommand(fixCmd)
	registerBatchFlags(fixCmd, &fixFlags)
}

func runFix(cmd *cobra.Command, args []string) error {
	return runBatch(cmd, args, &fixFlags, false)
}
