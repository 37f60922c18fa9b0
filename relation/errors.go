package relation

import "errors"

var (
	// ErrTooManyAttrs is returned when a relation is created with more than
	// MaxAttrs attributes (or fewer than one). For large enough nattrs
	// (103 and up) the split threshold formula C = 1024/(10*nattrs) reaches
	// zero and every insert would trigger a split; rather than guess a
	// different formula, nattrs is capped well below that point.
	ErrTooManyAttrs = errors.New("too many attributes")

	// ErrRelationExists is returned by Create when the named relation's
	// .info file is already present on disk.
	ErrRelationExists = errors.New("relation already exists")

	// ErrRelationMissing is returned by Open when the named relation's
	// .info file is not present on disk.
	ErrRelationMissing = errors.New("relation does not exist")
)
