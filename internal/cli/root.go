package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const (
	envConfigDir    = "NBFIX_CONFIG_DIR"
	envBackupSuffix = "NBFIX_BACKUP_SUFFIX"
)

var rootCmd = &cobra.Command{
	Use:   "nbfix",
	Short: "Repair Jupyter notebook widget metadata",
	Long: `nbfix repairs Jupyter notebooks whose saved widget state cannot be rendered.

Renderers such as nbconvert expect metadata.widgets
["application/vnd.jupyter.widget-state+json"] to carry a top-level "state" key.
Notebooks saved by some front-ends store the widget map directly under the MIME
type instead. nbfix wraps that map under "state", keeps a backup of the original
file and leaves every other byte of the notebook's content untouched.

Notebooks that are already valid, or carry no widget state, are never rewritten.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration (nbfix.yaml or flags)
  11 - One or more notebooks failed to process
  12 - check found notebooks that need a fix
  13 - restore found no backup file
  14 - restore was declined at the confirmation prompt`,
	SilenceUsage: true,
}

// Execute runs the root command with a context cancelled on SIGINT or SIGTERM.
// Cancellation stops the batch before the next notebook.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for nbfix")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("config", "",
		"Directory containing nbfix.yaml\n"+
			"Precedence: --config > $"+envConfigDir+" > current directory")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// getConfigDir resolves the directory holding nbfix.yaml.
func getConfigDir(cmd *cobra.Command) string {
	if f := cmd.Flag("config"); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	if dir := os.Getenv(envConfigDir); dir != "" {
		return dir
	}
	return "."
}

// commandContext returns the command's context, or Background when the
// command was run without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
