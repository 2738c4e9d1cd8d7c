package cli

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/nbfix/internal/checksum"
	"github.com/vvka-141/nbfix/internal/logging"
	"github.com/vvka-141/nbfix/internal/services"
	"github.com/vvka-141/nbfix/internal/tui"
	"github.com/vvka-141/nbfix/internal/ui"
	"github.com/vvka-141/nbfix/pkg/nbfix"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <notebook>...",
	Short: "Restore notebooks from their backups",
	Long: `Restore copies <notebook><suffix> back over <notebook>.

On a terminal, restore asks for confirmation before each notebook because
changes made since the fix are lost. Use --force to skip the question.
Without a terminal (pipes, CI) no question is asked.

The backup file is kept, so a restored notebook can be fixed again.
Only the single backup written by the last fix is available.

Examples:
  nbfix restore Model_Pruning.ipynb
  nbfix restore analysis.ipynb --backup-suffix .orig --force

The suffix is resolved like fix resolves it, so a backup written with a
suffix from $`+envBackupSuffix+` or nbfix.yaml is found without repeating it.`,
	Args: RequireNotebookPaths,
	RunE: runRestore,
}

type restoreFlagValues struct {
	backupSuffix string
	force        bool
}

var restoreFlags restoreFlagValues

func init() {
	rootCmd.AddCommand(restoreCmd)

	restoreCmd.Flags().StringVar(&restoreFlags.backupSuffix, "backup-suffix", nbfix.DefaultBackupSuffix,
		"Suffix that was used when the backup was written\n"+
			"Precedence: --backup-suffix > $"+envBackupSuffix+" > nbfix.yaml > .backup")
	restoreCmd.Flags().BoolVar(&restoreFlags.force, "force", false,
		"Restore without asking for confirmation")
}

// approverFor is replaced in tests.
var approverFor = newApprover

// newApprover selects the confirmation strategy for restore.
func newApprover(cmd *cobra.Command, force bool) nbfix.Approver {
	in := cmd.InOrStdin()
	if force || !tui.IsInteractive(in) {
		return ui.NewAutoApprover()
	}
	return ui.NewInteractiveApprover(in, cmd.ErrOrStderr())
}

func runRestore(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	projectCfg, err := loadProjectConfig(getConfigDir(cmd))
	if err != nil {
		return err
	}
	cfg := nbfix.FixConfig{BackupSuffix: resolveBackupSuffix(cmd, restoreFlags.backupSuffix, projectCfg)}
	if err := nbfix.ValidateBackupSuffix(cfg.BackupSuffix); err != nil {
		return err
	}

	ctx := commandContext(cmd)
	logger := logging.NewConsoleLogger(cmd.OutOrStdout(), getVerboseFlag(cmd))
	fsProvider := newFileSystem(ctx, logger)
	fixer := services.NewFixService(fsProvider, logger, checksum.New())
	approver := approverFor(cmd, restoreFlags.force)

	var errs []error
	for _, path := range args {
		backupPath := nbfix.BackupPath(path, cfg.BackupSuffix)

		// Only ask when there is something to restore
		if _, err := fsProvider.Stat(backupPath); err == nil {
			approved, err := approver.RequestApproval(ctx, path, backupPath)
			if err != nil {
				return err
			}
			if !approved {
				errs = append(errs, fmt.Errorf("%w: %s", nbfix.ErrRestoreDeclined, path))
				continue
			}
		}

		if _, err := fixer.Restore(ctx, cfg, path); err != nil {
			logger.Error("Error restoring %s: %v", path, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
