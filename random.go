package testdir

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/google/uuid"
)

const rootPrefix = "testdir"

// uniqueName returns a root directory name that will not collide with
// fixtures in this or any concurrently running test process: a fixed
// prefix, the process ID, and a random UUID fragment.
func uniqueName() string {
	frag := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]

	return fmt.Sprintf("%s-%d-%s", rootPrefix, os.Getpid(), frag)
}

// fillRandom overwrites b with bytes from the shared math/rand
// source. Not cryptographic; see [RandomFile].
func fillRandom(b []byte) {
	for len(b) >= 8 {
		binary.LittleEndian.PutUint64(b, rand.Uint64())
		b = b[8:]
	}

	if len(b) > 0 {
		var tail [8]byte

		binary.LittleEndian.PutUint64(tail[:], rand.Uint64())
		copy(b, tail[:])
	}
}
