// Package tuple implements the tuple codec (C6): splitting a comma-separated
// line into fields and computing its composite hash via the byte hash (C2)
// and the choice vector (C5).
package tuple

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/multiattr/malh/bhash"
	"github.com/multiattr/malh/bits"
	"github.com/multiattr/malh/chvec"
)

// MaxLen is the maximum length in bytes of a tuple's text, excluding its
// terminating NUL. Chosen generously relative to page.Size so several
// tuples fit on a page, matching the original C implementation's default.
const MaxLen = 1024

// ErrMalformed is returned when a tuple does not split into exactly nattrs
// comma-separated fields, or exceeds MaxLen.
var ErrMalformed = errors.New("malformed tuple")

// Split parses t into exactly nattrs comma-separated fields. Fields may be
// empty strings but may not themselves contain a comma (spec: "no embedded
// commas or NULs").
func Split(t []byte, nattrs int) ([][]byte, error) {
	if len(t) > MaxLen {
		return nil, fmt.Errorf("%w: %d bytes exceeds max %d", ErrMalformed, len(t), MaxLen)
	}
	fields := bytes.Split(t, []byte(","))
	if len(fields) != nattrs {
		return nil, fmt.Errorf("%w: got %d fields, want %d", ErrMalformed, len(fields), nattrs)
	}
	return fields, nil
}

// Hash computes the composite hash of a tuple already split into fields,
// using the choice vector to pick which bit of which attribute's hash
// contributes to each bit of the result.
//
//	for i in 0..MAXBITS:
//	  (a,b) = CV[i]
//	  if bit b of hash(fields[a]) is set: set bit i of H
func Hash(cv chvec.ChVec, fields [][]byte) bits.Word {
	attrHashes := make([]uint32, len(fields))
	for i, f := range fields {
		attrHashes[i] = bhash.Sum32(f)
	}
	var h bits.Word
	for i := 0; i < bits.MaxBits; i++ {
		item := cv[i]
		if bits.IsSet(attrHashes[item.Att], int(item.Bit)) {
			h = bits.Set(h, i)
		}
	}
	return h
}

// Join reassembles fields back into a comma-separated tuple, the inverse of
// Split.
func Join(fields [][]byte) []byte {
	return bytes.Join(fields, []byte(","))
}
