// Package page implements the fixed-size page that backs both the primary
// data file and the overflow file of a relation: a small header (tuple
// count, free-space offset, overflow pointer) followed by tightly packed
// NUL-terminated tuples.
//
// The binary layout is exactly the in-memory layout and is a compatibility
// surface: any two opens of the same relation files must agree on Size,
// headerSize and the field offsets below.
package page

import (
	"encoding/binary"
	"errors"
)

const (
	// Size is the fixed byte size of every page, primary or overflow.
	Size = 4096

	// NoPage is the sentinel PageID meaning "no next page in the chain".
	// PageIDs are dense and 0-based, so 0 is a valid page; NoPage is the
	// maximum representable uint32 instead.
	NoPage ID = 1<<32 - 1
)

// header layout. Values accumulate start to end.
const (
	countOffset  = 0
	countSize    = 2
	freeOffset   = countOffset + countSize
	freeSize     = 2
	ovflowOffset = freeOffset + freeSize
	ovflowSize   = 4
	headerSize   = ovflowOffset + ovflowSize
)

// ID identifies a page within a file. IDs are dense and monotonically
// assigned by append, separately for the data file and the overflow file.
type ID = uint32

// ErrOversized reports a tuple that cannot fit on any page, including a
// freshly allocated empty one. Add itself only returns false; callers that
// fail to place a tuple on a fresh page return this error.
var ErrOversized = errors.New("tuple too large for a page")

// Page is a fixed-size container of packed tuples.
type Page struct {
	content []byte
	number  ID
}

// New allocates a fresh, empty page with the given number. Its overflow
// pointer is NoPage.
func New(number ID) *Page {
	p := &Page{content: make([]byte, Size), number: number}
	p.setFree(headerSize)
	p.SetOvflow(NoPage)
	return p
}

// FromBytes wraps raw page content (as read from a file) without copying.
// content must have length Size.
func FromBytes(number ID, content []byte) *Page {
	return &Page{content: content, number: number}
}

// Bytes returns the page's raw on-disk representation.
func (p *Page) Bytes() []byte {
	return p.content
}

// Number returns the page's ID within its file.
func (p *Page) Number() ID {
	return p.number
}

// NTuples returns the number of tuples currently stored on the page.
func (p *Page) NTuples() int {
	return int(binary.LittleEndian.Uint16(p.content[countOffset : countOffset+countSize]))
}

func (p *Page) setCount(n int) {
	binary.LittleEndian.PutUint16(p.content[countOffset:countOffset+countSize], uint16(n))
}

// free is the byte offset of the first unused position in the page.
func (p *Page) free() int {
	return int(binary.LittleEndian.Uint16(p.content[freeOffset : freeOffset+freeSize]))
}

func (p *Page) setFree(off int) {
	binary.LittleEndian.PutUint16(p.content[freeOffset:freeOffset+freeSize], uint16(off))
}

// FreeSpace is the number of bytes remaining for packed tuples.
func (p *Page) FreeSpace() int {
	return Size - p.free()
}

// Ovflow returns the page's overflow pointer, or NoPage if it has none.
func (p *Page) Ovflow() ID {
	return binary.LittleEndian.Uint32(p.content[ovflowOffset : ovflowOffset+ovflowSize])
}

// SetOvflow sets the page's overflow pointer.
func (p *Page) SetOvflow(id ID) {
	binary.LittleEndian.PutUint32(p.content[ovflowOffset:ovflowOffset+ovflowSize], id)
}

// CanAdd reports whether a tuple of length L can be appended without
// overflowing the page: PAGESIZE - free >= L+1 for the NUL terminator.
func (p *Page) CanAdd(tupleLen int) bool {
	return Size-p.free() >= tupleLen+1
}

// Add appends a tuple, returning false if there is no room. It never
// overwrites existing data; on failure the page is unchanged.
func (p *Page) Add(tuple []byte) bool {
	if !p.CanAdd(len(tuple)) {
		return false
	}
	off := p.free()
	copy(p.content[off:off+len(tuple)], tuple)
	p.content[off+len(tuple)] = 0
	p.setFree(off + len(tuple) + 1)
	p.setCount(p.NTuples() + 1)
	return true
}

// Tuples returns copies of every tuple stored on the page, in storage
// order. Copies are returned (rather than slices into the page buffer) so
// callers can hold onto them across page rewrites, per the no-aliasing rule
// used throughout this package.
func (p *Page) Tuples() [][]byte {
	n := p.NTuples()
	out := make([][]byte, 0, n)
	off := headerSize
	for i := 0; i < n; i++ {
		end := off
		for p.content[end] != 0 {
			end++
		}
		tuple := make([]byte, end-off)
		copy(tuple, p.content[off:end])
		out = append(out, tuple)
		off = end + 1
	}
	return out
}
