package testdir

import (
	"errors"

	"github.com/calvinalkan/testdir/internal/pathutil"
)

var (
	// ErrInvalidPath reports a relative path argument that is empty,
	// absolute, or contains ".", "..", or empty segments.
	ErrInvalidPath = pathutil.ErrInvalidPath

	// ErrNotDirectory reports a path that already exists as something
	// other than a directory where a directory is required.
	ErrNotDirectory = errors.New("path exists and is not a directory")

	// ErrReleased reports a call on a fixture after Release.
	ErrReleased = errors.New("fixture already released")

	errNegativeSize = errors.New("negative file size")
	errUnknownKind  = errors.New("unknown file kind")
)
