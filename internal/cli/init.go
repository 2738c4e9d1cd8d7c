package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/nbfix/internal/config"
	"github.com/vvka-141/nbfix/internal/files/scanner"
	"github.com/vvka-141/nbfix/pkg/nbfix"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Write an nbfix.yaml listing the notebooks in a directory",
	Long: `Initialize writes nbfix.yaml into the specified directory (default: current).

The notebooks field lists every notebook found beneath the directory, relative
to it. When none are found the built-in default list is written instead.
An existing nbfix.yaml is only replaced with --force.

Examples:
  nbfix init                     # Current directory
  nbfix init ./notebooks         # Subdirectory
  nbfix init . --force           # Regenerate`,
	Args: OptionalDirectory,
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing nbfix.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	targetPath := "."
	if len(args) == 1 {
		targetPath = args[0]
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("%w: %w", nbfix.ErrInvalidConfig, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", nbfix.ErrInvalidConfig, targetPath)
	}

	configPath := filepath.Join(targetPath, nbfix.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("%w: %s already exists (use --force to overwrite)", nbfix.ErrInvalidConfig, configPath)
	}

	found, err := scanner.NewScanner().ExpandTargets([]string{targetPath})
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", targetPath, err)
	}

	cfg := &config.ProjectConfig{}
	for _, nb := range found.Notebooks {
		rel, err := filepath.Rel(targetPath, nb)
		if err != nil {
			return err
		}
		cfg.Notebooks = append(cfg.Notebooks, filepath.ToSlash(rel))
	}
	if len(cfg.Notebooks) == 0 {
		cfg.Notebooks = nbfix.DefaultNotebooks()
	}

	if err := config.Save(targetPath, cfg); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Wrote %s with %d notebook(s)\n", configPath, len(cfg.Notebooks))
	for _, nb := range cfg.Notebooks {
		fmt.Fprintf(out, "  %s\n", nb)
	}
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  nbfix check --config %s\n", targetPath)
	fmt.Fprintf(out, "  nbfix fix --config %s\n", targetPath)
	return nil
}
