package services

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvka-141/nbfix/internal/checksum"
	"github.com/vvka-141/nbfix/internal/files/filesystem"
	"github.com/vvka-141/nbfix/pkg/nbfix"
)

// recordingLogger captures log lines as "level: message".
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) record(level, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+": "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) { l.record("verbose", format, args) }
func (l *recordingLogger) Info(format string, args ...interface{})    { l.record("info", format, args) }
func (l *recordingLogger) Success(format string, args ...interface{}) { l.record("success", format, args) }
func (l *recordingLogger) Done(format string, args ...interface{})    { l.record("done", format, args) }
func (l *recordingLogger) Warn(format string, args ...interface{})    { l.record("warn", format, args) }
func (l *recordingLogger) Error(format string, args ...interface{})   { l.record("error", format, args) }

func (l *recordingLogger) contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

var _ nbfix.Logger = (*recordingLogger)(nil)

// corruptingFS truncates writes to one path.
type corruptingFS struct {
	*filesystem.MemoryFileSystem
	target string
}

func (c *corruptingFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if path == c.target && len(data) > 0 {
		data = data[:len(data)-1]
	}
	return c.MemoryFileSystem.WriteFile(path, data, perm)
}

// panickingFS panics when reading one path.
type panickingFS struct {
	*filesystem.MemoryFileSystem
	target string
}

func (p *panickingFS) ReadFile(path string) ([]byte, error) {
	if path == p.target {
		panic("simulated crash")
	}
	return p.MemoryFileSystem.ReadFile(path)
}

// nestedWidgetState decodes metadata.widgets[WidgetStateKey] from notebook bytes.
func nestedWidgetState(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	var nb struct {
		Metadata struct {
			Widgets map[string]map[string]interface{} `json:"widgets"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(data, &nb))
	state, ok := nb.Metadata.Widgets[nbfix.WidgetStateKey]
	require.True(t, ok, "widget state missing")
	return state
}

// strictCalculator is SHA-256 whose Matches can be forced to fail.
type strictCalculator struct {
	checksum.SHA256
	reject  bool
	matches int
}

func (c *strictCalculator) Matches(content []byte, expected string) bool {
	c.matches++
	if c.reject {
		return false
	}
	return c.SHA256.Matches(content, expected)
}
