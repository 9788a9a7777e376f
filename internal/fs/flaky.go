package fs

import (
	"errors"
	"os"
	"sync"
)

// Op identifies an [FS] operation for fault injection.
type Op string

// Operations that [Flaky] can be told to fail.
const (
	OpCreate          Op = "create"
	OpWriteFile       Op = "writefile"
	OpWriteFileAtomic Op = "writefileatomic"
	OpMkdirAll        Op = "mkdirall"
	OpStat            Op = "stat"
	OpRemove          Op = "remove"
	OpRemoveAll       Op = "removeall"
)

// InjectedError marks an error as intentionally injected by [Flaky].
//
// It wraps the underlying error so errors.Is/As continue to work.
type InjectedError struct {
	Err error
}

// Error returns the underlying error's message.
func (e *InjectedError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *InjectedError) Unwrap() error {
	return e.Err
}

// IsInjected reports whether err (or any wrapped error) was injected by
// [Flaky]. Returns false if err is nil.
func IsInjected(err error) bool {
	if err == nil {
		return false
	}

	var injected *InjectedError

	return errors.As(err, &injected)
}

// Flaky wraps an [FS] and fails selected operations with injected
// errors. Operations with no registered failure pass through to the
// wrapped filesystem.
//
// Safe for concurrent use.
type Flaky struct {
	fs FS

	mu   sync.Mutex
	fail map[Op]error
}

// NewFlaky wraps fsys with no failures registered.
func NewFlaky(fsys FS) *Flaky {
	return &Flaky{
		fs:   fsys,
		fail: make(map[Op]error),
	}
}

// FailWith makes every subsequent call of op return err (wrapped in
// [InjectedError]) until [Flaky.Reset].
func (f *Flaky) FailWith(op Op, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fail[op] = err
}

// Reset clears all registered failures.
func (f *Flaky) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fail = make(map[Op]error)
}

func (f *Flaky) injected(op Op) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err, ok := f.fail[op]
	if !ok {
		return nil
	}

	return &InjectedError{Err: err}
}

func (f *Flaky) Create(path string) (*os.File, error) {
	if err := f.injected(OpCreate); err != nil {
		return nil, err
	}

	return f.fs.Create(path)
}

func (f *Flaky) WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := f.injected(OpWriteFile); err != nil {
		return err
	}

	return f.fs.WriteFile(path, data, perm)
}

func (f *Flaky) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := f.injected(OpWriteFileAtomic); err != nil {
		return err
	}

	return f.fs.WriteFileAtomic(path, data, perm)
}

func (f *Flaky) MkdirAll(path string, perm os.FileMode) error {
	if err := f.injected(OpMkdirAll); err != nil {
		return err
	}

	return f.fs.MkdirAll(path, perm)
}

func (f *Flaky) Stat(path string) (os.FileInfo, error) {
	if err := f.injected(OpStat); err != nil {
		return nil, err
	}

	return f.fs.Stat(path)
}

func (f *Flaky) Exists(path string) (bool, error) {
	if err := f.injected(OpStat); err != nil {
		return false, err
	}

	return f.fs.Exists(path)
}

func (f *Flaky) Remove(path string) error {
	if err := f.injected(OpRemove); err != nil {
		return err
	}

	return f.fs.Remove(path)
}

func (f *Flaky) RemoveAll(path string) error {
	if err := f.injected(OpRemoveAll); err != nil {
		return err
	}

	return f.fs.RemoveAll(path)
}
