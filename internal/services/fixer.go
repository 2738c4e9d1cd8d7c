package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/vvka-141/nbfix/internal/checksum"
	"github.com/vvka-141/nbfix/internal/files/filesystem"
	"github.com/vvka-141/nbfix/internal/notebook"
	"github.com/vvka-141/nbfix/pkg/nbfix"
)

// defaultPerm is used when a notebook's own permissions cannot be read.
const defaultPerm fs.FileMode = 0644

// ruleWidth is the width of the "=" rules around batch headers.
const ruleWidth = 50

// FixService implements the Fixer interface.
// Notebooks are processed strictly one at a time.
type FixService struct {
	fsProvider filesystem.FileSystemProvider
	logger     nbfix.Logger
	calculator checksum.Calculator
	now        func() time.Time
}

// NewFixService creates a new FixService with all dependencies injected.
// Panics on nil dependencies.
func NewFixService(
	fsProvider filesystem.FileSystemProvider,
	logger nbfix.Logger,
	calculator checksum.Calculator,
) *FixService {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return &FixService{
		fsProvider: fsProvider,
		logger:     logger,
		calculator: calculator,
		now:        time.Now,
	}
}

// FixNotebook loads a notebook, wraps its widget state under "state" if
// needed, and writes a backup of the original bytes followed by the
// corrected notebook. Nothing is written when the notebook carries no
// widget state, is already valid, or config.DryRun is set.
func (s *FixService) FixNotebook(ctx context.Context, config nbfix.FixConfig, path string) (nbfix.Result, error) {
	result := nbfix.Result{Path: path}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	s.logger.Info("Loading notebook: %s", path)

	original, err := s.fsProvider.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("%w: %w", nbfix.ErrLoadFailed, err)
	}
	result.OriginalChecksum = s.calculator.CalculateRaw(original)

	doc, err := notebook.Parse(original)
	if err != nil {
		return result, fmt.Errorf("%w: %s: %w", nbfix.ErrLoadFailed, path, err)
	}
	s.logger.Verbose("nbformat %d.%d, %d bytes, sha256 %s", doc.Format(), doc.FormatMinor(), len(original), result.OriginalChecksum)

	var insp notebook.Inspection
	if config.DryRun {
		insp, err = notebook.InspectWidgetState(doc)
	} else {
		insp, err = notebook.NormalizeWidgetState(doc)
	}
	if err != nil {
		return result, fmt.Errorf("%w: %s: %w", nbfix.ErrLoadFailed, path, err)
	}
	result.WidgetCount = insp.WidgetCount

	switch insp.Status {
	case notebook.StatusNoWidgetState:
		s.logger.Info("No widget state found in notebook metadata")
		result.Outcome = nbfix.OutcomeNoWidgetState
		return result, nil
	case notebook.StatusAlreadyValid:
		s.logger.Success("Widget metadata already has '%s' key at top level", nbfix.StateKey)
		result.Outcome = nbfix.OutcomeAlreadyValid
		return result, nil
	}

	s.logger.Warn("Widget metadata missing '%s' key at top level", nbfix.StateKey)
	s.logger.Info("Found %d widget definitions", insp.WidgetCount)

	if config.DryRun {
		s.logger.Info("Dry run: %s would be rewritten", path)
		result.Outcome = nbfix.OutcomeNeedsFix
		return result, nil
	}

	s.logger.Success("Added '%s' key at top level", nbfix.StateKey)

	fixed, err := doc.Marshal()
	if err != nil {
		return result, err
	}

	perm := s.permOf(path)
	backupPath := nbfix.BackupPath(path, config.BackupSuffix)

	s.logger.Info("Creating backup: %s", backupPath)
	if err := s.writeBackup(backupPath, original, result.OriginalChecksum, perm); err != nil {
		return result, err
	}
	result.BackupPath = backupPath

	s.logger.Info("Saving fixed notebook: %s", path)
	if err := s.fsProvider.WriteFile(path, fixed, perm); err != nil {
		return result, fmt.Errorf("%w: %w", nbfix.ErrWriteFailed, err)
	}
	result.WrittenChecksum = s.calculator.CalculateRaw(fixed)

	s.logger.Done("Notebook widget metadata fixed successfully!")
	result.Outcome = nbfix.OutcomeFixed
	return result, nil
}

// writeBackup writes the original bytes and verifies them by reading back.
func (s *FixService) writeBackup(backupPath string, original []byte, sum string, perm fs.FileMode) error {
	if err := s.fsProvider.WriteFile(backupPath, original, perm); err != nil {
		return fmt.Errorf("%w: backup: %w", nbfix.ErrWriteFailed, err)
	}

	written, err := s.fsProvider.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("%w: reading back backup: %w", nbfix.ErrWriteFailed, err)
	}
	if !s.calculator.Matches(written, sum) {
		return fmt.Errorf("%w: %s has sha256 %s, want %s",
			nbfix.ErrBackupMismatch, backupPath, s.calculator.CalculateRaw(written), sum)
	}
	s.logger.Verbose("Backup verified: sha256 %s", sum)
	return nil
}

func (s *FixService) permOf(path string) fs.FileMode {
	info, err := s.fsProvider.Stat(path)
	if err != nil {
		return defaultPerm
	}
	return info.Mode().Perm()
}

// Run processes config.Notebooks in order. A failing notebook is reported
// and recorded in the Report; it never stops the remaining notebooks.
func (s *FixService) Run(ctx context.Context, config nbfix.FixConfig) (*nbfix.Report, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	report := nbfix.NewReport(config.DryRun, s.now())
	s.logger.Verbose("Run %s: %d notebook(s)", report.RunID, len(config.Notebooks))

	rule := strings.Repeat("=", ruleWidth)
	for _, path := range config.Notebooks {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = s.now()
			return report, fmt.Errorf("batch interrupted before %s: %w", path, err)
		}

		s.logger.Info("")
		s.logger.Info("%s", rule)
		s.logger.Info("Processing: %s", path)
		s.logger.Info("%s", rule)

		res, err := s.fixIsolated(ctx, config, path)
		if err != nil {
			s.logger.Error("Error processing %s: %v", path, err)
			res.Outcome = nbfix.OutcomeFailed
			res.Error = err.Error()
		}
		report.Add(res)
	}

	report.FinishedAt = s.now()

	s.logger.Info("")
	s.logger.Info("%s", rule)
	s.logger.Done("All notebooks processed!")
	s.logger.Info("%s", summarize(report))
	s.logger.Info("%s", rule)

	return report, nil
}

// fixIsolated converts a panic while processing one notebook into an error.
func (s *FixService) fixIsolated(ctx context.Context, config nbfix.FixConfig, path string) (res nbfix.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nbfix.Result{Path: path}
			err = fmt.Errorf("panic while processing %s: %v", path, r)
		}
	}()
	return s.FixNotebook(ctx, config, path)
}

func summarize(report *nbfix.Report) string {
	parts := []string{}
	for _, o := range []nbfix.Outcome{
		nbfix.OutcomeFixed,
		nbfix.OutcomeNeedsFix,
		nbfix.OutcomeAlreadyValid,
		nbfix.OutcomeNoWidgetState,
		nbfix.OutcomeFailed,
	} {
		if n := report.Counts[o]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, o))
		}
	}
	if len(parts) == 0 {
		return "No notebooks processed"
	}
	return "Summary: " + strings.Join(parts, ", ")
}

// Restore copies the backup of path back over path. The backup is kept.
func (s *FixService) Restore(ctx context.Context, config nbfix.FixConfig, path string) (nbfix.Result, error) {
	result := nbfix.Result{Path: path}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	if err := nbfix.ValidateBackupSuffix(config.BackupSuffix); err != nil {
		return result, err
	}

	backupPath := nbfix.BackupPath(path, config.BackupSuffix)
	s.logger.Info("Restoring %s from %s", path, backupPath)

	data, err := s.fsProvider.ReadFile(backupPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, fmt.Errorf("%w: %s", nbfix.ErrBackupNotFound, backupPath)
		}
		return result, fmt.Errorf("%w: %w", nbfix.ErrLoadFailed, err)
	}

	if _, err := notebook.Parse(data); err != nil {
		s.logger.Warn("Backup is not a valid nbformat %d notebook: %v", nbfix.SupportedFormat, err)
	}

	if err := s.fsProvider.WriteFile(path, data, s.permOf(path)); err != nil {
		return result, fmt.Errorf("%w: %w", nbfix.ErrWriteFailed, err)
	}

	result.BackupPath = backupPath
	result.WrittenChecksum = s.calculator.CalculateRaw(data)
	result.Outcome = nbfix.OutcomeRestored
	s.logger.Done("Restored %s", path)
	return result, nil
}

// Verify FixService implements the Fixer interface at compile time
var _ nbfix.Fixer = (*FixService)(nil)
