package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/nbfix/pkg/nbfix"
)

func TestCheck_ReportsNeededFixWithoutWriting(t *testing.T) {
	dir := t.TempDir()
	nb := writeNotebook(t, dir, "nb.ipynb", brokenWidgets)

	stdout, _, err := executeCommand(t, "check", nb)
	require.Error(t, err)
	assert.ErrorIs(t, err, nbfix.ErrFixNeeded)
	assert.Equal(t, nbfix.ExitFixNeeded, nbfix.ExitCodeForError(err))

	assert.Contains(t, stdout, "would be rewritten")
	assert.Equal(t, brokenWidgets, readFile(t, nb))
	assert.False(t, fileExists(nb+".backup"))
}

func TestCheck_CleanNotebooksPass(t *testing.T) {
	dir := t.TempDir()
	nb := writeNotebook(t, dir, "nb.ipynb", noWidgets)

	_, _, err := executeCommand(t, "check", nb)
	assert.NoError(t, err)
}

func TestCheck_PassesAfterFix(t *testing.T) {
	dir := t.TempDir()
	nb := writeNotebook(t, dir, "nb.ipynb", brokenWidgets)

	_, _, err := executeCommand(t, "fix", nb)
	require.NoError(t, err)

	_, _, err = executeCommand(t, "check", nb)
	assert.NoError(t, err)
}

func TestCheck_FailureTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	nb := writeNotebook(t, dir, "nb.ipynb", brokenWidgets)
	bad := writeNotebook(t, dir, "bad.ipynb", `{"nbformat": 3}`)

	_, _, err := executeCommand(t, "check", bad, nb)
	require.Error(t, err)
	assert.Equal(t, nbfix.ExitBatchFailed, nbfix.ExitCodeForError(err))
}

func TestCheck_JSONReportMarksDryRun(t *testing.T) {
	dir := t.TempDir()
	nb := writeNotebook(t, dir, "nb.ipynb", brokenWidgets)

	stdout, _, err := executeCommand(t, "check", "--json", nb)
	require.ErrorIs(t, err, nbfix.ErrFixNeeded)

	var report nbfix.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.True(t, report.DryRun)
	require.Len(t, report.Results, 1)
	assert.Equal(t, nbfix.OutcomeNeedsFix, report.Results[0].Outcome)
	assert.Equal(t, 1, report.Results[0].WidgetCount)
}
