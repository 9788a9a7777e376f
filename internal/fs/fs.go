// Package fs provides the filesystem seam for the fixture builder.
//
// The main types are:
//   - [FS]: interface for the filesystem operations the fixture performs
//   - [Real]: production implementation using the [os] package
//   - [Flaky]: testing implementation that fails selected operations
//
// Example usage:
//
//	fsys := fs.NewReal()
//	if err := fsys.MkdirAll("a/b", 0o755); err != nil {
//	    return err
//	}
package fs

import "os"

// FS defines the filesystem operations used to materialize and tear
// down fixture trees.
//
// All methods mirror their [os] package equivalents but can be
// intercepted for testing with fault injection.
type FS interface {
	// Create creates or truncates a file for writing. See [os.Create].
	Create(path string) (*os.File, error)

	// WriteFile writes data to a file, creating or truncating it.
	// See [os.WriteFile].
	WriteFile(path string, data []byte, perm os.FileMode) error

	// WriteFileAtomic writes data to a temporary file and renames it
	// into place, so a reader never observes a partial write.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// MkdirAll creates a directory and any missing ancestors.
	// See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// Stat returns the [os.FileInfo] for path. See [os.Stat].
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether path exists.
	Exists(path string) (bool, error)

	// Remove removes a single file or empty directory. See [os.Remove].
	Remove(path string) error

	// RemoveAll removes path and everything under it. See [os.RemoveAll].
	RemoveAll(path string) error
}
