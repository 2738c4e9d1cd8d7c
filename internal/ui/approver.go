package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/nbfix/pkg/nbfix"
)

// InteractiveApprover implements the Approver interface for console-based
// confirmation. It asks before a notebook is overwritten by its backup.
type InteractiveApprover struct {
	in  io.Reader
	out io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover reading answers
// from in and writing prompts to out.
func NewInteractiveApprover(in io.Reader, out io.Writer) *InteractiveApprover {
	return &InteractiveApprover{in: in, out: out}
}

// RequestApproval prompts with a y/N question. Only "y" or "yes" approve.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, path, backupPath string) (bool, error) {
	fmt.Fprintf(a.out, "\n⚠️  %s will be replaced by %s\n", path, backupPath)
	fmt.Fprintln(a.out, "Changes made to the notebook since it was fixed will be lost.")
	fmt.Fprint(a.out, "Restore? [y/N]: ")

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		input, err := bufio.NewReader(a.in).ReadString('\n')
		if err != nil && input == "" {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		switch strings.ToLower(input) {
		case "y", "yes":
			return true, nil
		}
		fmt.Fprintf(a.out, "✗ Skipped %s\n", path)
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ nbfix.Approver = (*InteractiveApprover)(nil)

// AutoApprover approves every restore without asking.
type AutoApprover struct{}

// NewAutoApprover creates a new AutoApprover.
func NewAutoApprover() *AutoApprover {
	return &AutoApprover{}
}

// RequestApproval returns true unless ctx is already cancelled.
func (a *AutoApprover) RequestApproval(ctx context.Context, path, backupPath string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return true, nil
}

// Verify AutoApprover implements the Approver interface at compile time
var _ nbfix.Approver = (*AutoApprover)(nil)
