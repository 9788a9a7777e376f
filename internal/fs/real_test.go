package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// Real FS Tests
//
// These tests verify our Real implementation's helper methods work correctly.
// We're NOT testing os.MkdirAll, os.RemoveAll etc (that's Go's job).
// We ARE testing:
//   - Exists() - our convenience method
//   - WriteFileAtomic() - our atomic write wrapper
// =============================================================================

// -----------------------------------------------------------------------------
// Exists() Tests
// -----------------------------------------------------------------------------

// TestReal_Exists_ReturnsFalseForNonExistent verifies that Exists() returns
// (false, nil) for files that don't exist - not an error.
func TestReal_Exists_ReturnsFalseForNonExistent(t *testing.T) {
	fsys := NewReal()
	dir := t.TempDir()

	exists, err := fsys.Exists(filepath.Join(dir, "does-not-exist.txt"))

	if got, want := err, error(nil); !errors.Is(got, want) {
		t.Fatalf("err=%v, want=%v", got, want)
	}

	if got, want := exists, false; got != want {
		t.Fatalf("exists=%v, want=%v", got, want)
	}
}

// TestReal_Exists_ReturnsTrueForFile verifies that Exists() returns
// (true, nil) for files that exist.
func TestReal_Exists_ReturnsTrueForFile(t *testing.T) {
	fsys := NewReal()
	dir := t.TempDir()
	path := filepath.Join(dir, "exists.txt")

	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	exists, err := fsys.Exists(path)

	if got, want := err, error(nil); !errors.Is(got, want) {
		t.Fatalf("err=%v, want=%v", got, want)
	}

	if got, want := exists, true; got != want {
		t.Fatalf("exists=%v, want=%v", got, want)
	}
}

// TestReal_Exists_ReturnsTrueForDirectory verifies that Exists() works
// for directories too, not just files.
func TestReal_Exists_ReturnsTrueForDirectory(t *testing.T) {
	fsys := NewReal()
	dir := t.TempDir()
	subdir := filepath.Join(dir, "subdir")

	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	exists, err := fsys.Exists(subdir)

	if got, want := err, error(nil); !errors.Is(got, want) {
		t.Fatalf("err=%v, want=%v", got, want)
	}

	if got, want := exists, true; got != want {
		t.Fatalf("exists=%v, want=%v", got, want)
	}
}

// -----------------------------------------------------------------------------
// WriteFileAtomic() Tests
// -----------------------------------------------------------------------------

// TestReal_WriteFileAtomic_WritesContent verifies the happy path: the
// file lands with exactly the given content.
func TestReal_WriteFileAtomic_WritesContent(t *testing.T) {
	fsys := NewReal()
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	if err := fsys.WriteFileAtomic(path, []byte("payload"), 0644); err != nil {
		t.Fatalf("err=%v, want=nil", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("readback: %v", err)
	}

	if got, want := string(data), "payload"; got != want {
		t.Fatalf("content=%q, want=%q", got, want)
	}
}

// TestReal_WriteFileAtomic_ReplacesExisting verifies that an existing
// file is replaced, not appended to.
func TestReal_WriteFileAtomic_ReplacesExisting(t *testing.T) {
	fsys := NewReal()
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	if err := os.WriteFile(path, []byte("old content that is longer"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := fsys.WriteFileAtomic(path, []byte("new"), 0644); err != nil {
		t.Fatalf("err=%v, want=nil", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("readback: %v", err)
	}

	if got, want := string(data), "new"; got != want {
		t.Fatalf("content=%q, want=%q", got, want)
	}
}
