// Package tui holds terminal detection and the lipgloss styles used for
// nbfix console output.
package tui
