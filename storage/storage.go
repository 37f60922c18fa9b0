// Package storage implements the file pair (C4): a relation's primary data
// file and overflow file, each a dense array of fixed-size pages, plus the
// page cache and the advisory exclusivity lock used by the CLI layer.
//
// Per spec, no buffer pool is required for correctness (a trivial per-call
// read/write is acceptable) and there is no journal: the meta file is
// rewritten with a single unprotected write and a crash mid-write corrupts
// the relation, an accepted limitation of the "no crash recovery" non-goal.
package storage

import (
	"fmt"
	"io"
	"os"

	"github.com/multiattr/malh/page"
)

// backend is the minimal interface a file pair needs from the filesystem.
// It is implemented by an on-disk file and, for tests and the CLI's
// --memory mode, an in-memory buffer.
type backend interface {
	io.ReaderAt
	io.WriterAt
	// numPages returns how many whole pages are currently stored.
	numPages() (int, error)
	// growToPages grows the backend to hold at least n pages, zero
	// filling any new space.
	growToPages(n int) error
}

type memoryBackend struct {
	buf []byte
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{}
}

func (m *memoryBackend) ReadAt(p []byte, off int64) (int, error) {
	if int(off)+len(p) > len(m.buf) {
		return 0, io.EOF
	}
	copy(p, m.buf[off:int(off)+len(p)])
	return len(p), nil
}

func (m *memoryBackend) WriteAt(p []byte, off int64) (int, error) {
	need := int(off) + len(p)
	if need > len(m.buf) {
		m.buf = append(m.buf, make([]byte, need-len(m.buf))...)
	}
	copy(m.buf[off:need], p)
	return len(p), nil
}

func (m *memoryBackend) numPages() (int, error) {
	return len(m.buf) / page.Size, nil
}

func (m *memoryBackend) growToPages(n int) error {
	need := n * page.Size
	if need > len(m.buf) {
		m.buf = append(m.buf, make([]byte, need-len(m.buf))...)
	}
	return nil
}

type fileBackend struct {
	file *os.File
}

func openFileBackend(name string) (*fileBackend, error) {
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", name, err)
	}
	return &fileBackend{file: f}, nil
}

func (f *fileBackend) ReadAt(p []byte, off int64) (int, error) {
	return f.file.ReadAt(p, off)
}

func (f *fileBackend) WriteAt(p []byte, off int64) (int, error) {
	return f.file.WriteAt(p, off)
}

func (f *fileBackend) numPages() (int, error) {
	fi, err := f.file.Stat()
	if err != nil {
		return 0, err
	}
	return int(fi.Size() / page.Size), nil
}

func (f *fileBackend) growToPages(n int) error {
	cur, err := f.numPages()
	if err != nil {
		return err
	}
	if n <= cur {
		return nil
	}
	return f.file.Truncate(int64(n) * page.Size)
}

func (f *fileBackend) close() error {
	return f.file.Close()
}
