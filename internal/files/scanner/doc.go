// Package scanner expands nbfix targets into notebook paths.
//
// A target naming a directory expands to every .ipynb file beneath it,
// skipping Jupyter's .ipynb_checkpoints directories. Backup files never
// match because they carry an extra suffix after the .ipynb extension.
//
// The scanner is filesystem-agnostic through the filesystem.FileSystemProvider
// interface, enabling both production use and testing with in-memory
// filesystems.
package scanner
