package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/nbfix/pkg/nbfix"
)

const brokenWidgets = `{
 "cells": [],
 "metadata": {
  "widgets": {
   "application/vnd.jupyter.widget-state+json": {
    "abc123": {"model_name": "IntSliderModel", "state": {"value": 3}}
   }
  }
 },
 "nbformat": 4,
 "nbformat_minor": 5
}
`

const noWidgets = `{"cells": [], "metadata": {}, "nbformat": 4, "nbformat_minor": 5}`

// resetCommandFlags restores every flag in the tree to its default so that
// consecutive executions of rootCmd do not leak state.
func resetCommandFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetCommandFlags(c)
	}
}

// executeCommand runs rootCmd with args and captures stdout and stderr.
// Environment overrides are cleared first.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(envConfigDir, "")
	t.Setenv(envBackupSuffix, "")
	return executeWithEnv(t, args...)
}

// executeWithEnv is executeCommand without clearing the environment.
func executeWithEnv(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetCommandFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeNotebook(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// widgetState decodes metadata.widgets[WidgetStateKey] of the notebook at path.
func widgetState(t *testing.T, path string) map[string]json.RawMessage {
	t.Helper()
	var nb struct {
		Metadata struct {
			Widgets map[string]map[string]json.RawMessage `json:"widgets"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal([]byte(readFile(t, path)), &nb))
	return nb.Metadata.Widgets[nbfix.WidgetStateKey]
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
