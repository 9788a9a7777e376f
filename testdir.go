package testdir

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/calvinalkan/testdir/internal/fs"
	"github.com/calvinalkan/testdir/internal/pathutil"
)

const (
	dirPerms  = 0o755
	filePerms = 0o644
)

// TB is the subset of [testing.TB] used by a bound fixture.
//
// This keeps [TestDir] usable from non-test code that provides its own
// reporter, without depending on the testing package.
type TB interface {
	// [testing.T.Helper]
	Helper()
	// [testing.T.Cleanup]
	Cleanup(func())
	// [testing.T.Logf]
	Logf(format string, args ...any)
	// [testing.T.Fatalf]
	Fatalf(format string, args ...any)
}

// TestDir owns a root directory and materializes fixture trees under it.
//
// A fixture built with [Temp], [InCurrent], [New], or [NewAt]'s
// temp-rooted sibling owns its root and removes it recursively on
// [TestDir.Release]. A fixture built with [At] or [NewAt] references a
// caller-supplied directory and never deletes it.
//
// A TestDir is single-owner: it must not be shared across goroutines.
// Independent fixtures are safe to use concurrently because their roots
// never collide.
//
// The zero value is not usable.
type TestDir struct {
	root     string
	ownsRoot bool
	released bool

	tb     TB
	fsys   fs.FS
	logger *zap.Logger

	files []string
	dirs  []string
}

// Option configures a fixture at construction.
type Option func(*TestDir)

// WithLogger sets the logger that reports teardown failures and
// lifecycle events. The default is [zap.NewNop].
func WithLogger(l *zap.Logger) Option {
	return func(d *TestDir) { d.logger = l }
}

// withFS swaps the filesystem implementation. Tests use it to inject
// faults.
func withFS(fsys fs.FS) Option {
	return func(d *TestDir) { d.fsys = fsys }
}

// Temp creates a fixture rooted at a fresh, uniquely named directory
// under the system temp directory. The root exists (and is empty) when
// Temp returns. The fixture owns the root and deletes it on Release.
func Temp(opts ...Option) (*TestDir, error) {
	return newOwned(filepath.Join(os.TempDir(), uniqueName()), opts)
}

// InCurrent is like [Temp] but places the root under the current
// working directory.
func InCurrent(opts ...Option) (*TestDir, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	return newOwned(filepath.Join(wd, uniqueName()), opts)
}

// At creates a fixture rooted at path, creating the directory (and any
// missing ancestors) if absent. The caller keeps ownership of path:
// Release never deletes it. Fails if path exists as a non-directory.
func At(path string, opts ...Option) (*TestDir, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving fixture root %s: %w", path, err)
	}

	d := newTestDir(abs, false, opts)

	info, statErr := d.fsys.Stat(abs)

	switch {
	case statErr == nil && !info.IsDir():
		return nil, fmt.Errorf("fixture root %s: %w", abs, ErrNotDirectory)
	case statErr == nil:
		return d, nil
	case os.IsNotExist(statErr):
		if err := d.fsys.MkdirAll(abs, dirPerms); err != nil {
			return nil, fmt.Errorf("creating fixture root %s: %w", abs, err)
		}

		return d, nil
	default:
		return nil, fmt.Errorf("inspecting fixture root %s: %w", abs, statErr)
	}
}

// New creates a temp-rooted fixture bound to tb: construction or
// creation failures fail the test, and Release runs via tb.Cleanup.
func New(tb TB, opts ...Option) *TestDir {
	tb.Helper()

	d, err := Temp(opts...)
	if err != nil {
		tb.Fatalf("testdir: %v", err)
	}

	d.bind(tb)

	return d
}

// NewAt is like [New] but roots the fixture at a caller-supplied path,
// which survives Release. See [At].
func NewAt(tb TB, path string, opts ...Option) *TestDir {
	tb.Helper()

	d, err := At(path, opts...)
	if err != nil {
		tb.Fatalf("testdir: %v", err)
	}

	d.bind(tb)

	return d
}

// Root returns the absolute path of the fixture root.
func (d *TestDir) Root() string {
	return d.root
}

// Create materializes kind at the slash-separated relative path rel,
// creating any missing parent directories, and returns the fixture for
// chaining. A failure fails the bound test, or panics when the fixture
// was built without a TB.
func (d *TestDir) Create(rel string, kind FileKind) *TestDir {
	d.helper()

	if _, err := d.Mk(rel, kind); err != nil {
		d.fatalf("testdir: %v", err)
	}

	return d
}

// Mk is the error-returning form of [TestDir.Create]. It returns the
// absolute path of the materialized entry.
//
// On failure the tree may be left partially populated; there is no
// rollback.
func (d *TestDir) Mk(rel string, kind FileKind) (string, error) {
	if d.released {
		return "", ErrReleased
	}

	abs, err := pathutil.Resolve(d.root, rel)
	if err != nil {
		return "", err
	}

	if kind.tag == kindDir {
		if err := d.mkdir(abs); err != nil {
			return "", err
		}

		d.dirs = appendPath(d.dirs, abs)

		return abs, nil
	}

	if err := pathutil.EnsureParents(d.fsys, abs, dirPerms); err != nil {
		return "", fmt.Errorf("creating parents of %s: %w", abs, err)
	}

	if err := d.materialize(abs, kind); err != nil {
		return "", err
	}

	d.files = appendPath(d.files, abs)

	return abs, nil
}

// Path resolves rel against the root without touching the filesystem,
// for assertions and further I/O against the materialized tree. A
// structurally invalid path fails the bound test (or panics when
// unbound).
func (d *TestDir) Path(rel string) string {
	d.helper()

	abs, err := d.Resolve(rel)
	if err != nil {
		d.fatalf("testdir: %v", err)
	}

	return abs
}

// Resolve is the error-returning form of [TestDir.Path].
func (d *TestDir) Resolve(rel string) (string, error) {
	if d.released {
		return "", ErrReleased
	}

	return pathutil.Resolve(d.root, rel)
}

// Remove deletes the file or subtree at rel and returns the fixture for
// chaining. A missing path is a no-op.
func (d *TestDir) Remove(rel string) *TestDir {
	d.helper()

	if err := d.Unlink(rel); err != nil {
		d.fatalf("testdir: %v", err)
	}

	return d
}

// Unlink is the error-returning form of [TestDir.Remove].
func (d *TestDir) Unlink(rel string) error {
	if d.released {
		return ErrReleased
	}

	abs, err := pathutil.Resolve(d.root, rel)
	if err != nil {
		return err
	}

	if err := d.fsys.RemoveAll(abs); err != nil {
		return fmt.Errorf("removing %s: %w", abs, err)
	}

	d.files = prunePaths(d.files, abs)
	d.dirs = prunePaths(d.dirs, abs)

	return nil
}

// Files returns the absolute paths of the files materialized through
// this fixture, in creation order. Entries deleted with
// [TestDir.Remove] are pruned.
func (d *TestDir) Files() []string {
	return slices.Clone(d.files)
}

// Dirs returns the absolute paths of the directories created with
// [Dir] through this fixture, in creation order. Parents created
// implicitly for files are not listed.
func (d *TestDir) Dirs() []string {
	return slices.Clone(d.dirs)
}

// Release tears the fixture down. An owning fixture removes its root
// recursively; a fixture rooted with [At] or [NewAt] leaves the
// directory in place.
//
// Release is idempotent. A deletion failure is logged (to the bound TB
// and the fixture's logger) and never propagates: teardown commonly
// runs during cleanup or unwind, where an error would mask the outcome
// of the test itself.
func (d *TestDir) Release() {
	if d.released {
		return
	}

	d.released = true

	if !d.ownsRoot {
		return
	}

	if err := d.fsys.RemoveAll(d.root); err != nil {
		d.logger.Warn("fixture teardown incomplete",
			zap.String("root", d.root),
			zap.Error(err))

		if d.tb != nil {
			d.tb.Logf("testdir: removing %s: %v", d.root, err)
		}

		return
	}

	d.logger.Debug("fixture root removed", zap.String("root", d.root))
}

// --- Private api ---

func newTestDir(root string, owns bool, opts []Option) *TestDir {
	d := &TestDir{
		root:     root,
		ownsRoot: owns,
		fsys:     fs.NewReal(),
		logger:   zap.NewNop(),
	}

	for _, o := range opts {
		o(d)
	}

	return d
}

func newOwned(root string, opts []Option) (*TestDir, error) {
	d := newTestDir(root, true, opts)

	if err := d.fsys.MkdirAll(root, dirPerms); err != nil {
		return nil, fmt.Errorf("creating fixture root %s: %w", root, err)
	}

	d.logger.Debug("fixture root created", zap.String("root", root))

	return d, nil
}

func (d *TestDir) bind(tb TB) {
	d.tb = tb
	tb.Cleanup(d.Release)
}

func (d *TestDir) helper() {
	if d.tb != nil {
		d.tb.Helper()
	}
}

// fatalf fails the bound test, or panics when no TB is bound so fluent
// calls from non-test code still fail fast.
func (d *TestDir) fatalf(format string, args ...any) {
	if d.tb != nil {
		d.tb.Fatalf(format, args...)

		return
	}

	panic(fmt.Sprintf(format, args...))
}

// mkdir creates a directory at abs, tolerating an existing directory
// but rejecting any other existing entry.
func (d *TestDir) mkdir(abs string) error {
	if info, err := d.fsys.Stat(abs); err == nil && !info.IsDir() {
		return fmt.Errorf("creating directory %s: %w", abs, ErrNotDirectory)
	}

	if err := d.fsys.MkdirAll(abs, dirPerms); err != nil {
		return fmt.Errorf("creating directory %s: %w", abs, err)
	}

	return nil
}

func (d *TestDir) materialize(abs string, kind FileKind) error {
	switch kind.tag {
	case kindEmptyFile:
		return d.fill(abs, 0, nil)
	case kindZeroFile:
		// A fresh chunk buffer is already zeroed; nothing to fill in.
		return d.fill(abs, kind.size, func([]byte) {})
	case kindRandomFile:
		return d.fill(abs, kind.size, fillRandom)
	case kindContent:
		if err := d.fsys.WriteFileAtomic(abs, kind.content, filePerms); err != nil {
			return fmt.Errorf("writing file %s: %w", abs, err)
		}

		return nil
	default:
		return fmt.Errorf("creating %s: %w (%d)", abs, errUnknownKind, kind.tag)
	}
}

const fillChunk = 32 * 1024

// fill creates a file of exactly n bytes at abs, writing in chunks so
// large fixtures never buffer fully in memory. next fills each chunk
// before it is written; it is never called when n is 0.
func (d *TestDir) fill(abs string, n int64, next func([]byte)) (err error) {
	if n < 0 {
		return fmt.Errorf("creating file %s: %w (%d)", abs, errNegativeSize, n)
	}

	f, err := d.fsys.Create(abs)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", abs, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing file %s: %w", abs, cerr)
		}
	}()

	buf := make([]byte, fillChunk)

	for n > 0 {
		chunk := buf
		if n < int64(len(chunk)) {
			chunk = chunk[:n]
		}

		next(chunk)

		if _, werr := f.Write(chunk); werr != nil {
			return fmt.Errorf("writing file %s: %w", abs, werr)
		}

		n -= int64(len(chunk))
	}

	return nil
}

func appendPath(list []string, abs string) []string {
	if slices.Contains(list, abs) {
		return list
	}

	return append(list, abs)
}

// prunePaths drops abs and everything under it from list.
func prunePaths(list []string, abs string) []string {
	prefix := abs + string(filepath.Separator)

	return slices.DeleteFunc(list, func(p string) bool {
		return p == abs || strings.HasPrefix(p, prefix)
	})
}
