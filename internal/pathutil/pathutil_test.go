package pathutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/calvinalkan/testdir/internal/fs"
)

// -----------------------------------------------------------------------------
// Resolve() Tests
// -----------------------------------------------------------------------------

// TestResolve_JoinsSegmentsUnderRoot verifies that slash-separated input
// resolves to a native path under the root.
func TestResolve_JoinsSegmentsUnderRoot(t *testing.T) {
	root := t.TempDir()

	got, err := Resolve(root, "a/b/c")
	if err != nil {
		t.Fatalf("err=%v, want=nil", err)
	}

	if want := filepath.Join(root, "a", "b", "c"); got != want {
		t.Fatalf("got=%q, want=%q", got, want)
	}
}

// TestResolve_SingleSegment verifies resolution of a path with no
// separators at all.
func TestResolve_SingleSegment(t *testing.T) {
	root := t.TempDir()

	got, err := Resolve(root, "file.txt")
	if err != nil {
		t.Fatalf("err=%v, want=nil", err)
	}

	if want := filepath.Join(root, "file.txt"); got != want {
		t.Fatalf("got=%q, want=%q", got, want)
	}
}

// TestResolve_ToleratesTrailingSlash verifies that "a/b/" means "a/b".
func TestResolve_ToleratesTrailingSlash(t *testing.T) {
	root := t.TempDir()

	got, err := Resolve(root, "a/b/")
	if err != nil {
		t.Fatalf("err=%v, want=nil", err)
	}

	if want := filepath.Join(root, "a", "b"); got != want {
		t.Fatalf("got=%q, want=%q", got, want)
	}
}

// TestResolve_RejectsUnusablePaths verifies that empty, absolute, and
// root-escaping paths are rejected with ErrInvalidPath instead of being
// normalized away.
func TestResolve_RejectsUnusablePaths(t *testing.T) {
	tests := []struct {
		name string
		rel  string
	}{
		{"empty", ""},
		{"absolute", "/etc/passwd"},
		{"dot segment", "a/./b"},
		{"dotdot segment", "a/../b"},
		{"leading dotdot", "../escape"},
		{"bare dot", "."},
		{"empty segment", "a//b"},
		{"only slash", "/"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(t.TempDir(), tc.rel)

			if got, want := err, ErrInvalidPath; !errors.Is(got, want) {
				t.Fatalf("err=%v, want errors.Is(err, %v)", got, want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// EnsureParents() Tests
// -----------------------------------------------------------------------------

// TestEnsureParents_CreatesMissingAncestors verifies that every missing
// directory above the path is created.
func TestEnsureParents_CreatesMissingAncestors(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(root, "a", "b", "c", "file.txt")

	if err := EnsureParents(fs.NewReal(), abs, 0o755); err != nil {
		t.Fatalf("err=%v, want=nil", err)
	}

	info, err := os.Stat(filepath.Join(root, "a", "b", "c"))
	if err != nil {
		t.Fatalf("stat parent: %v", err)
	}

	if got, want := info.IsDir(), true; got != want {
		t.Fatalf("IsDir=%v, want=%v", got, want)
	}
}

// TestEnsureParents_ExistingAncestorsAreFine verifies idempotence when
// the ancestry already exists.
func TestEnsureParents_ExistingAncestorsAreFine(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(root, "file.txt")

	if err := EnsureParents(fs.NewReal(), abs, 0o755); err != nil {
		t.Fatalf("first call: err=%v, want=nil", err)
	}

	if err := EnsureParents(fs.NewReal(), abs, 0o755); err != nil {
		t.Fatalf("second call: err=%v, want=nil", err)
	}
}

// TestEnsureParents_FailsOnFileInAncestry verifies that a regular file
// sitting where a directory is needed surfaces an error.
func TestEnsureParents_FailsOnFileInAncestry(t *testing.T) {
	root := t.TempDir()

	if err := os.WriteFile(filepath.Join(root, "a"), []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	err := EnsureParents(fs.NewReal(), filepath.Join(root, "a", "b", "file.txt"), 0o755)
	if err == nil {
		t.Fatalf("err=nil, want non-nil")
	}
}
