package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/nbfix/internal/files/filesystem"
)

// NotebookExt is the file extension of notebook documents.
const NotebookExt = ".ipynb"

// CheckpointDir is the directory Jupyter uses for autosave checkpoints.
const CheckpointDir = ".ipynb_checkpoints"

// Result lists the notebooks a set of targets expands to.
type Result struct {
	// Notebooks are the expanded targets in processing order, without duplicates
	Notebooks []string

	// EmptyDirs are directory targets that contained no notebooks
	EmptyDirs []string
}

// Scanner expands directory targets into the notebooks they contain.
// Scanner is safe for concurrent use as long as the provided fsProvider is.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a new scanner backed by the OS filesystem.
func NewScanner() *Scanner {
	return &Scanner{fsProvider: filesystem.NewOSFileSystem()}
}

// NewScannerWithFS creates a new scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider}
}

// ExpandTargets resolves targets in order. A directory expands to every
// notebook beneath it in lexical order, skipping checkpoint directories.
// Any other target, including one that does not exist, is passed through
// unchanged so that its failure is reported when it is processed.
func (s *Scanner) ExpandTargets(targets []string) (Result, error) {
	var result Result
	seen := make(map[string]bool)

	add := func(p string) {
		key := filepath.Clean(p)
		if seen[key] {
			return
		}
		seen[key] = true
		result.Notebooks = append(result.Notebooks, p)
	}

	for _, target := range targets {
		info, err := s.fsProvider.Stat(target)
		if err != nil || !info.IsDir() {
			add(target)
			continue
		}

		found, err := s.scanDirectory(target)
		if err != nil {
			return Result{}, err
		}
		if len(found) == 0 {
			result.EmptyDirs = append(result.EmptyDirs, target)
		}
		for _, nb := range found {
			add(nb)
		}
	}

	return result, nil
}

func (s *Scanner) scanDirectory(dirPath string) ([]string, error) {
	dir, err := s.fsProvider.Open(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}

	var notebooks []string
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking %s: %w", dirPath, err)
		}

		if file.Info().IsDir() {
			if file.Info().Name() == CheckpointDir {
				return fs.SkipDir
			}
			return nil
		}

		if !IsNotebook(file.RelativePath()) {
			return nil
		}

		notebooks = append(notebooks, filepath.Join(dirPath, filepath.FromSlash(file.RelativePath())))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(notebooks)
	return notebooks, nil
}

// IsNotebook reports whether path names a notebook document.
func IsNotebook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), NotebookExt)
}
