// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// Key interfaces:
//   - FileSystemProvider: Reads, atomically replaces and stats files; opens directories
//   - Directory: Represents a directory that can be traversed
//   - File: Represents an individual file discovered during a walk
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing, with write
//     counting and per-path write failure injection
package filesystem
