package nbfix

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FixConfig contains the parameters of a fix, check or restore operation.
type FixConfig struct {
	// Notebooks are the target notebook paths, processed in order
	Notebooks []string

	// BackupSuffix is appended to a notebook path to form its backup path
	BackupSuffix string

	// DryRun reports what would change without writing any file
	DryRun bool

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the FixConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *FixConfig) Validate() error {
	var errs []error

	if len(c.Notebooks) == 0 {
		errs = append(errs, fmt.Errorf("at least one notebook is required: %w", ErrInvalidConfig))
	}

	for i, nb := range c.Notebooks {
		if strings.TrimSpace(nb) == "" {
			errs = append(errs, fmt.Errorf("notebook %d has an empty path: %w", i+1, ErrInvalidConfig))
		}
	}

	if err := ValidateBackupSuffix(c.BackupSuffix); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ValidateBackupSuffix rejects suffixes that would not produce a sibling file.
func ValidateBackupSuffix(suffix string) error {
	if suffix == "" {
		return fmt.Errorf("backup suffix cannot be empty: %w", ErrInvalidConfig)
	}
	if strings.ContainsAny(suffix, `/\`) || strings.ContainsRune(suffix, filepath.Separator) {
		return fmt.Errorf("backup suffix %q must not contain a path separator: %w", suffix, ErrInvalidConfig)
	}
	return nil
}

// BackupPath returns the backup location for a notebook.
func BackupPath(notebookPath, suffix string) string {
	return notebookPath + suffix
}

// Outcome classifies what happened to a single notebook.
type Outcome string

const (
	// OutcomeFixed means the widget state was wrapped and both files were written.
	OutcomeFixed Outcome = "fixed"

	// OutcomeAlreadyValid means the widget state already had a top-level state key.
	OutcomeAlreadyValid Outcome = "already-valid"

	// OutcomeNoWidgetState means the notebook carries no widget-state metadata.
	OutcomeNoWidgetState Outcome = "no-widget-state"

	// OutcomeNeedsFix means a dry run found widget state that would be wrapped.
	OutcomeNeedsFix Outcome = "needs-fix"

	// OutcomeRestored means the notebook was replaced by its backup.
	OutcomeRestored Outcome = "restored"

	// OutcomeFailed means processing stopped with an error.
	OutcomeFailed Outcome = "failed"
)

// Result describes the processing of a single notebook.
type Result struct {
	Path             string  `json:"path"`
	Outcome          Outcome `json:"outcome"`
	WidgetCount      int     `json:"widget_count,omitempty"`
	BackupPath       string  `json:"backup_path,omitempty"`
	OriginalChecksum string  `json:"original_checksum,omitempty"`
	WrittenChecksum  string  `json:"written_checksum,omitempty"`
	Error            string  `json:"error,omitempty"`
}

// Report summarizes one batch run.
type Report struct {
	RunID      uuid.UUID       `json:"run_id"`
	DryRun     bool            `json:"dry_run"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Results    []Result        `json:"results"`
	Counts     map[Outcome]int `json:"counts"`
}

// NewReport creates an empty report with a fresh run ID.
func NewReport(dryRun bool, startedAt time.Time) *Report {
	return &Report{
		RunID:     uuid.New(),
		DryRun:    dryRun,
		StartedAt: startedAt,
		Results:   []Result{},
		Counts:    make(map[Outcome]int),
	}
}

// Add appends a result and updates the outcome counts.
func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
	r.Counts[res.Outcome]++
}

// Failures returns the number of notebooks that failed.
func (r *Report) Failures() int {
	return r.Counts[OutcomeFailed]
}

// Pending returns the number of notebooks a dry run found in need of a fix.
func (r *Report) Pending() int {
	return r.Counts[OutcomeNeedsFix]
}
