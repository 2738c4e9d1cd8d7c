package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/nbfix/internal/checksum"
	"github.com/vvka-141/nbfix/internal/config"
	"github.com/vvka-141/nbfix/internal/files/filesystem"
	"github.com/vvka-141/nbfix/internal/files/scanner"
	"github.com/vvka-141/nbfix/internal/logging"
	"github.com/vvka-141/nbfix/internal/retry"
	"github.com/vvka-141/nbfix/internal/services"
	"github.com/vvka-141/nbfix/pkg/nbfix"
)

// batchFlagValues holds the flags shared by fix and check.
type batchFlagValues struct {
	backupSuffix  string
	allowFailures bool
	jsonOutput    bool
}

func registerBatchFlags(cmd *cobra.Command, flags *batchFlagValues) {
	cmd.Flags().StringVar(&flags.backupSuffix, "backup-suffix", nbfix.DefaultBackupSuffix,
		"Suffix appended to a notebook path to form its backup path\n"+
			"Precedence: --backup-suffix > $"+envBackupSuffix+" > nbfix.yaml > .backup")
	cmd.Flags().BoolVar(&flags.allowFailures, "allow-failures", false,
		"Exit 0 even when some notebooks could not be processed")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false,
		"Print the run report as JSON on stdout; progress goes to stderr")
}

// fileRetries bounds how often a busy notebook file is retried.
const fileRetries = 3

// newFileSystem returns the OS filesystem with transient failures retried
// until ctx is done.
func newFileSystem(ctx context.Context, logger nbfix.Logger) filesystem.FileSystemProvider {
	executor := retry.NewExecutor(
		retry.NewFileErrorClassifier(),
		retry.NewExponentialBackoff(fileRetries),
	).WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Warn("File busy (%v), retry %d/%d in %s", err, attempt+1, fileRetries, delay.Round(time.Millisecond))
	})
	return filesystem.NewRetryingFileSystem(filesystem.NewOSFileSystem(), executor).WithContext(ctx)
}

// batchSettings is the resolved input of one fix or check run.
type batchSettings struct {
	config        nbfix.FixConfig
	allowFailures bool
}

// loadProjectConfig loads nbfix.yaml from dir. A missing file yields nil.
func loadProjectConfig(dir string) (*config.ProjectConfig, error) {
	projectCfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", nbfix.ConfigFileName, err)
	}
	return projectCfg, nil
}

// resolveBackupSuffix applies --backup-suffix > $NBFIX_BACKUP_SUFFIX >
// nbfix.yaml > default. fix, check and restore all resolve the suffix here.
func resolveBackupSuffix(cmd *cobra.Command, flagValue string, projectCfg *config.ProjectConfig) string {
	if cmd.Flags().Changed("backup-suffix") {
		return flagValue
	}
	if env := os.Getenv(envBackupSuffix); env != "" {
		return env
	}
	if projectCfg != nil && projectCfg.BackupSuffix != "" {
		return projectCfg.BackupSuffix
	}
	return flagValue
}

// buildBatchSettings resolves targets and options for fix or check.
//
// Targets come from arguments, then nbfix.yaml, then the built-in list.
// Notebooks listed in nbfix.yaml are relative to the directory holding it.
// Directory targets expand to the notebooks they contain.
func buildBatchSettings(cmd *cobra.Command, args []string, flags *batchFlagValues, dryRun bool, logger nbfix.Logger) (batchSettings, error) {
	_ = godotenv.Load()

	configDir := getConfigDir(cmd)
	projectCfg, err := loadProjectConfig(configDir)
	if err != nil {
		return batchSettings{}, err
	}
	if projectCfg != nil {
		logger.Verbose("Loaded %s", filepath.Join(configDir, nbfix.ConfigFileName))
	}

	var targets []string
	switch {
	case len(args) > 0:
		targets = args
	case projectCfg != nil && len(projectCfg.Notebooks) > 0:
		for _, nb := range projectCfg.Notebooks {
			if !filepath.IsAbs(nb) {
				nb = filepath.Join(configDir, nb)
			}
			targets = append(targets, nb)
		}
	default:
		targets = nbfix.DefaultNotebooks()
	}

	expanded, err := scanner.NewScanner().ExpandTargets(targets)
	if err != nil {
		return batchSettings{}, fmt.Errorf("failed to expand targets: %w", err)
	}
	for _, dir := range expanded.EmptyDirs {
		logger.Warn("No notebooks found in %s", dir)
	}

	settings := batchSettings{
		config: nbfix.FixConfig{
			Notebooks:    expanded.Notebooks,
			BackupSuffix: resolveBackupSuffix(cmd, flags.backupSuffix, projectCfg),
			DryRun:       dryRun,
			Verbose:      getVerboseFlag(cmd),
		},
		allowFailures: flags.allowFailures || (projectCfg != nil && projectCfg.AllowFailures),
	}
	if len(settings.config.Notebooks) == 0 {
		return batchSettings{}, fmt.Errorf("%w: no notebooks to process", nbfix.ErrInvalidConfig)
	}
	return settings, nil
}

// runBatch runs fix (dryRun false) or check (dryRun true) and maps the
// report to an exit error.
func runBatch(cmd *cobra.Command, args []string, flags *batchFlagValues, dryRun bool) error {
	out := cmd.OutOrStdout()
	progress := out
	if flags.jsonOutput {
		progress = cmd.ErrOrStderr()
	}
	logger := logging.NewConsoleLogger(progress, getVerboseFlag(cmd))

	settings, err := buildBatchSettings(cmd, args, flags, dryRun, logger)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	fixer := services.NewFixService(newFileSystem(ctx, logger), logger, checksum.New())
	report, runErr := fixer.Run(ctx, settings.config)
	if report == nil {
		return runErr
	}

	if flags.jsonOutput {
		if err := writeReport(out, report); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}

	if n := report.Failures(); n > 0 && !settings.allowFailures {
		return fmt.Errorf("%w: %d of %d notebook(s) failed", nbfix.ErrBatchFailed, n, len(report.Results))
	}
	if n := report.Pending(); dryRun && n > 0 {
		return fmt.Errorf("%w: %d notebook(s)", nbfix.ErrFixNeeded, n)
	}
	return nil
}

func writeReport(w io.Writer, report *nbfix.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
