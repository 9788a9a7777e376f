package testdir

import "fmt"

// FileKind selects what [TestDir.Create] materializes at a path.
//
// The set is closed: values are built only with [Dir], [EmptyFile],
// [ZeroFile], [RandomFile], and [FileContent].
type FileKind struct {
	tag     kindTag
	size    int64
	content []byte
}

type kindTag uint8

const (
	kindDir kindTag = iota
	kindEmptyFile
	kindZeroFile
	kindRandomFile
	kindContent
)

// Dir creates a directory. Creating a directory that already exists is
// a no-op.
func Dir() FileKind {
	return FileKind{tag: kindDir}
}

// EmptyFile creates a zero-length file, truncating any regular file
// already at the path.
func EmptyFile() FileKind {
	return FileKind{tag: kindEmptyFile}
}

// ZeroFile creates a file of exactly n bytes, every byte zero.
func ZeroFile(n int64) FileKind {
	return FileKind{tag: kindZeroFile, size: n}
}

// RandomFile creates a file of exactly n random bytes.
//
// The content is a cheap, non-cryptographic payload: good enough to be
// non-trivial test data, nothing more.
func RandomFile(n int64) FileKind {
	return FileKind{tag: kindRandomFile, size: n}
}

// FileContent creates a file holding data, written through a temporary
// file and an atomic rename.
func FileContent(data []byte) FileKind {
	return FileKind{tag: kindContent, content: data}
}

// String describes the kind for error messages and logs.
func (k FileKind) String() string {
	switch k.tag {
	case kindDir:
		return "dir"
	case kindEmptyFile:
		return "empty file"
	case kindZeroFile:
		return fmt.Sprintf("zero file (%d bytes)", k.size)
	case kindRandomFile:
		return fmt.Sprintf("random file (%d bytes)", k.size)
	case kindContent:
		return fmt.Sprintf("content file (%d bytes)", len(k.content))
	default:
		return fmt.Sprintf("unknown kind (%d)", k.tag)
	}
}
