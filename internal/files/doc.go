// Package files groups the filesystem abstraction and target discovery used by nbfix.
//
// Subpackages:
//   - filesystem: OS and in-memory providers with atomic file replacement
//   - scanner: expansion of directory targets into notebook paths
package files
