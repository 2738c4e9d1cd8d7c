// Package logging provides concrete implementations of the nbfix.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes status lines with ✓/✗/✅/❌ marks to any io.Writer
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
