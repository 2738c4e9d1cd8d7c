package nbfix

import "context"

// Fixer normalizes widget-state metadata in notebook documents.
type Fixer interface {
	// FixNotebook processes a single notebook using the suffix and dry-run
	// settings of config. A returned error means the notebook was not fixed;
	// the Result still carries the path.
	FixNotebook(ctx context.Context, config FixConfig, path string) (Result, error)

	// Run processes every notebook in config.Notebooks in order, isolating
	// failures per notebook. The returned error is non-nil only when the
	// batch itself could not run (invalid config, cancelled context).
	Run(ctx context.Context, config FixConfig) (*Report, error)

	// Restore replaces a notebook with its backup copy.
	Restore(ctx context.Context, config FixConfig, path string) (Result, error)
}
