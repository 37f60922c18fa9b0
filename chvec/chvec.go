// Package chvec implements the choice vector: the static mapping from a bit
// position of the composite hash to a (attribute, attribute-hash-bit) pair.
// It is parsed once from a textual descriptor when a relation is created and
// is immutable for the life of the relation.
package chvec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/multiattr/malh/bits"
)

// MaxChVec is the number of entries carried in the on-disk choice vector
// record. Fixed equal to bits.MaxBits (spec: "Fix MAXCHVEC == MAXBITS == 32
// for clarity").
const MaxChVec = bits.MaxBits

var (
	// ErrMalformed is returned when a descriptor token cannot be parsed as
	// "att:bit" or names an out-of-range attribute or bit position.
	ErrMalformed = errors.New("malformed choice vector")
)

// Item is one (attribute, bit) pair: bit i of the composite hash is set iff
// bit b of attribute a's hash is set.
type Item struct {
	Att uint32
	Bit uint32
}

// ChVec is a fixed-width array of MaxChVec entries.
type ChVec [MaxChVec]Item

// Parse parses a descriptor of the form "a0:b0,a1:b1,..." into a ChVec.
// At most MaxChVec tokens may be supplied; any remaining positions default
// to (0,0). Every a must be < nattrs and every b must be < bits.MaxBits.
func Parse(descriptor string, nattrs int) (ChVec, error) {
	var cv ChVec
	if strings.TrimSpace(descriptor) == "" {
		return cv, nil
	}
	tokens := strings.Split(descriptor, ",")
	if len(tokens) > MaxChVec {
		return cv, fmt.Errorf("%w: %d entries exceeds max %d", ErrMalformed, len(tokens), MaxChVec)
	}
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		parts := strings.SplitN(tok, ":", 2)
		if len(parts) != 2 {
			return cv, fmt.Errorf("%w: token %q", ErrMalformed, tok)
		}
		a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil || a < 0 || a >= nattrs {
			return cv, fmt.Errorf("%w: attribute index %q out of range [0,%d)", ErrMalformed, parts[0], nattrs)
		}
		b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || b < 0 || b >= bits.MaxBits {
			return cv, fmt.Errorf("%w: bit index %q out of range [0,%d)", ErrMalformed, parts[1], bits.MaxBits)
		}
		cv[i] = Item{Att: uint32(a), Bit: uint32(b)}
	}
	return cv, nil
}

// String renders the choice vector back into its descriptor form, used by
// the stats CLI and by round-trip tests. Trailing (0,0) entries are not
// elided since the on-disk vector always carries exactly MaxChVec entries.
func (cv ChVec) String() string {
	parts := make([]string, MaxChVec)
	for i, it := range cv {
		parts[i] = fmt.Sprintf("%d:%d", it.Att, it.Bit)
	}
	return strings.Join(parts, ",")
}
