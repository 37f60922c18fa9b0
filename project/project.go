// Package project implements tuple projection (C9): reducing a tuple to a
// chosen, reordered subset of its fields, following the original's
// startProjection/projectTuple in project.c.
package project

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/multiattr/malh/tuple"
)

// ErrMalformed is returned when an attribute list cannot be parsed, or
// names an index outside [1, nattrs].
var ErrMalformed = errors.New("malformed projection list")

// Projection picks out and reorders fields from a tuple of nattrs
// comma-separated fields.
type Projection struct {
	nattrs   int
	allAttrs bool
	// indices are zero-based, translated once from the 1-based attribute
	// numbers the query syntax uses (the original's "atoi(token) - 1").
	indices []int
}

// Parse builds a Projection from attrstr: "*" projects every attribute in
// its original order; otherwise attrstr is a comma-separated list of
// 1-based attribute indices, each in [1, nattrs], projected in the order
// given (so repeats and reorderings are both allowed).
func Parse(attrstr string, nattrs int) (*Projection, error) {
	if attrstr == "*" {
		indices := make([]int, nattrs)
		for i := range indices {
			indices[i] = i
		}
		return &Projection{nattrs: nattrs, allAttrs: true, indices: indices}, nil
	}

	tokens := strings.Split(attrstr, ",")
	indices := make([]int, len(tokens))
	for i, tok := range tokens {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil || n < 1 || n > nattrs {
			return nil, fmt.Errorf("%w: attribute %q out of range [1,%d]", ErrMalformed, tok, nattrs)
		}
		indices[i] = n - 1
	}
	return &Projection{nattrs: nattrs, indices: indices}, nil
}

// Apply projects a tuple (already in nattrs-field comma-separated form)
// down to the attributes this Projection selects, comma-joined in the
// order they were requested.
func (p *Projection) Apply(t []byte) ([]byte, error) {
	if p.allAttrs {
		return t, nil
	}
	fields, err := tuple.Split(t, p.nattrs)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(p.indices))
	for i, idx := range p.indices {
		out[i] = fields[idx]
	}
	return tuple.Join(out), nil
}
