package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryEntry implements File for walked in-memory entries
type memoryEntry struct {
	absPath string
	relPath string
	info    fs.FileInfo
}

func (e *memoryEntry) Path() string         { return e.absPath }
func (e *memoryEntry) RelativePath() string { return e.relPath }
func (e *memoryEntry) Info() FileInfo       { return e.info }

type memoryFile struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.entriesUnder(d.absPath)

	var skipped []string
	for _, entry := range entries {
		if isUnderAny(entry.absPath, skipped) {
			continue
		}

		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", entry.absPath, r)
				}
			}()
			callbackErr = fn(entry, nil)
		}()

		if errors.Is(callbackErr, fs.SkipDir) {
			if entry.info.IsDir() {
				skipped = append(skipped, entry.absPath)
			} else {
				skipped = append(skipped, path.Dir(entry.absPath))
			}
			continue
		}
		if callbackErr != nil {
			return callbackErr
		}
	}

	return nil
}

// dirPrefix returns dir with exactly one trailing slash.
func dirPrefix(dir string) string {
	if strings.HasSuffix(dir, "/") {
		return dir
	}
	return dir + "/"
}

func isUnderAny(p string, dirs []string) bool {
	for _, dir := range dirs {
		if strings.HasPrefix(p, dirPrefix(dir)) {
			return true
		}
	}
	return false
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Every successful WriteFile is recorded, and writes to selected paths can
// be made to fail. Safe for concurrent use.
type MemoryFileSystem struct {
	mu        sync.Mutex
	files     map[string]*memoryFile
	root      string
	writes    []string
	writeErrs map[string]error
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// Relative paths are resolved against root, which is normalized to forward slashes.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	return &MemoryFileSystem{
		files:     make(map[string]*memoryFile),
		root:      path.Clean(filepath.ToSlash(root)),
		writeErrs: make(map[string]error),
	}
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// AddFile adds a file to the in-memory filesystem without counting it as a write.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.files[mfs.resolve(filePath)] = &memoryFile{
		content: []byte(content),
		mode:    0644,
		modTime: time.Now(),
	}
}

// FailWrites makes every subsequent WriteFile to filePath return err.
func (mfs *MemoryFileSystem) FailWrites(filePath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.writeErrs[mfs.resolve(filePath)] = err
}

// Writes returns the absolute paths of successful WriteFile calls, in order.
func (mfs *MemoryFileSystem) Writes() []string {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	return append([]string(nil), mfs.writes...)
}

// Content returns the current content of a file and whether it exists.
func (mfs *MemoryFileSystem) Content(filePath string) (string, bool) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	f, ok := mfs.files[mfs.resolve(filePath)]
	if !ok {
		return "", false
	}
	return string(f.content), true
}

// isDirLocked reports whether any file lives under absPath.
func (mfs *MemoryFileSystem) isDirLocked(absPath string) bool {
	if absPath == mfs.root {
		return true
	}
	for p := range mfs.files {
		if strings.HasPrefix(p, dirPrefix(absPath)) {
			return true
		}
	}
	return false
}

// entriesUnder returns the directories and files below basePath in lexical order.
func (mfs *MemoryFileSystem) entriesUnder(basePath string) []*memoryEntry {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	dirs := map[string]bool{basePath: true}
	var entries []*memoryEntry

	for p, f := range mfs.files {
		if !strings.HasPrefix(p, dirPrefix(basePath)) {
			continue
		}
		for dir := path.Dir(p); dir != basePath && !dirs[dir]; dir = path.Dir(dir) {
			dirs[dir] = true
		}
		entries = append(entries, &memoryEntry{
			absPath: p,
			relPath: strings.TrimPrefix(p, dirPrefix(basePath)),
			info: &memoryFileInfo{
				name:    path.Base(p),
				size:    int64(len(f.content)),
				mode:    f.mode,
				modTime: f.modTime,
			},
		})
	}

	for dir := range dirs {
		rel := strings.TrimPrefix(dir, dirPrefix(basePath))
		if dir == basePath {
			rel = "."
		}
		entries = append(entries, &memoryEntry{
			absPath: dir,
			relPath: rel,
			info:    dirInfo(dir),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].absPath < entries[j].absPath
	})
	return entries
}

func dirInfo(p string) *memoryFileInfo {
	return &memoryFileInfo{
		name:    path.Base(p),
		mode:    0755 | fs.ModeDir,
		modTime: time.Now(),
		isDir:   true,
	}
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	absPath := mfs.resolve(openPath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	if _, isFile := mfs.files[absPath]; isFile {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	if !mfs.isDirLocked(absPath) {
		return nil, fmt.Errorf("failed to access path: %w", &fs.PathError{Op: "open", Path: openPath, Err: fs.ErrNotExist})
	}

	return &memoryDirectory{absPath: absPath, fs: mfs}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	absPath := mfs.resolve(filePath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	file, exists := mfs.files[absPath]
	if !exists {
		if mfs.isDirLocked(absPath) {
			return nil, &fs.PathError{Op: "read", Path: filePath, Err: errors.New("is a directory")}
		}
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}

	return append([]byte(nil), file.content...), nil
}

// WriteFile implements FileSystemProvider.WriteFile
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte, perm fs.FileMode) error {
	absPath := mfs.resolve(filePath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	if err, fail := mfs.writeErrs[absPath]; fail {
		return &fs.PathError{Op: "write", Path: filePath, Err: err}
	}

	mfs.files[absPath] = &memoryFile{
		content: append([]byte(nil), data...),
		mode:    perm,
		modTime: time.Now(),
	}
	mfs.writes = append(mfs.writes, absPath)
	return nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	absPath := mfs.resolve(statPath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	if file, exists := mfs.files[absPath]; exists {
		return &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(file.content)),
			mode:    file.mode,
			modTime: file.modTime,
		}, nil
	}
	if mfs.isDirLocked(absPath) {
		return dirInfo(absPath), nil
	}
	return nil, &fs.PathError{Op: "stat", Path: statPath, Err: fs.ErrNotExist}
}

var _ FileSystemProvider = (*MemoryFileSystem)(nil)
