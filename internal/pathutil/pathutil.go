// Package pathutil resolves slash-separated relative paths against a
// fixture root.
//
// Relative paths always use "/" as the segment separator, regardless of
// the host's path conventions; resolution joins segments with the native
// separator. Paths that could reach outside the root (absolute paths,
// "." or ".." segments) are rejected rather than normalized, so every
// resolved path is guaranteed to live under the root.
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/calvinalkan/testdir/internal/fs"
)

// ErrInvalidPath reports a relative path that is empty, absolute, or
// contains ".", "..", or empty segments.
var ErrInvalidPath = errors.New("invalid path")

// Resolve joins the slash-separated relative path rel onto root and
// returns the absolute result. It does not touch the filesystem.
func Resolve(root, rel string) (string, error) {
	segs, err := split(rel)
	if err != nil {
		return "", err
	}

	return filepath.Join(append([]string{root}, segs...)...), nil
}

// EnsureParents creates every missing ancestor directory of abs,
// succeeding if they already exist.
func EnsureParents(fsys fs.FS, abs string, perm os.FileMode) error {
	return fsys.MkdirAll(filepath.Dir(abs), perm)
}

// split validates rel and returns its segments.
//
// A single trailing slash is tolerated ("a/b/" means "a/b").
func split(rel string) ([]string, error) {
	if rel == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	if strings.HasPrefix(rel, "/") || filepath.IsAbs(rel) {
		return nil, fmt.Errorf("%w: %q is absolute, only relative paths are allowed", ErrInvalidPath, rel)
	}

	segs := strings.Split(strings.TrimSuffix(rel, "/"), "/")

	for _, seg := range segs {
		switch seg {
		case "":
			return nil, fmt.Errorf("%w: %q contains an empty segment", ErrInvalidPath, rel)
		case ".", "..":
			return nil, fmt.Errorf("%w: %q contains a %q segment", ErrInvalidPath, rel, seg)
		}
	}

	return segs, nil
}
