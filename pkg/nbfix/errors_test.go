package nbfix_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/nbfix/pkg/nbfix"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, nbfix.ExitSuccess},
		{"general error", errors.New("something went wrong"), nbfix.ExitGeneralError},
		{"unknown flag", errors.New("unknown flag: --foo"), nbfix.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x' in -x"), nbfix.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), nbfix.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--allow-failures\""), nbfix.ExitUsageError},
		{"invalid config", fmt.Errorf("backup suffix: %w", nbfix.ErrInvalidConfig), nbfix.ExitConfigError},
		{"batch failed", fmt.Errorf("2 of 3: %w", nbfix.ErrBatchFailed), nbfix.ExitBatchFailed},
		{"fix needed", nbfix.ErrFixNeeded, nbfix.ExitFixNeeded},
		{"backup not found", fmt.Errorf("restore a.ipynb: %w", nbfix.ErrBackupNotFound), nbfix.ExitBackupNotFound},
		{"restore declined", errors.Join(fmt.Errorf("a.ipynb: %w", nbfix.ErrRestoreDeclined)), nbfix.ExitRestoreDeclined},
		{"load failure alone", nbfix.ErrLoadFailed, nbfix.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nbfix.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
