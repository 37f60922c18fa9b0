// Package relation implements the Relation (C7): the owner of a relation's
// three files (info, data, ovflow) and its global counters, the bucket
// addressing rule, and the insert-with-split path.
package relation

import (
	"fmt"
	"os"

	"github.com/multiattr/malh/bits"
	"github.com/multiattr/malh/chvec"
	"github.com/multiattr/malh/page"
	"github.com/multiattr/malh/storage"
	"github.com/multiattr/malh/tuple"
	sdcache "github.com/segmentio/datastructures/v2/cache"
)

// MaxAttrs bounds nattrs so the split threshold C = 1024/(10*nattrs) never
// reaches zero (see ErrTooManyAttrs).
const MaxAttrs = 25

// Relation is an open relation: its counters, choice vector, and the
// backing files for meta, data and overflow pages.
type Relation struct {
	name      string
	useMemory bool
	files     *storage.FilePair
	mb        metaBackend
	meta      Meta
}

func infoPath(name string) string { return name + ".info" }

// Exists reports whether a relation's .info file is present on disk. It
// consults only the filesystem and knows nothing about in-memory relations,
// so callers skip it when useMemory is set.
func Exists(name string) bool {
	_, err := os.Stat(infoPath(name))
	return err == nil
}

// Create makes a new relation with nattrs attributes, npages initial data
// pages addressed at the given starting depth (the caller is responsible
// for npages == 2^depth so the addressing invariant holds from the start,
// matching the original's newRelation(name, nattrs, npages, d, cv)), and a
// choice vector parsed from cvDescriptor (see chvec.Parse). When useMemory
// is true the relation lives entirely in memory and name is only used as a
// label.
func Create(name string, nattrs, npages, depth int, cvDescriptor string, useMemory bool) (*Relation, error) {
	if nattrs < 1 || nattrs > MaxAttrs {
		return nil, fmt.Errorf("%w: %d", ErrTooManyAttrs, nattrs)
	}
	if !useMemory && Exists(name) {
		return nil, fmt.Errorf("%q: %w", name, ErrRelationExists)
	}
	cv, err := chvec.Parse(cvDescriptor, nattrs)
	if err != nil {
		return nil, err
	}

	files, err := storage.Open(name, useMemory)
	if err != nil {
		return nil, err
	}
	for i := 0; i < npages; i++ {
		if _, err := files.Data.AddPage(); err != nil {
			return nil, err
		}
	}

	mb, err := newMetaBackend(name, useMemory)
	if err != nil {
		return nil, err
	}

	r := &Relation{
		name:      name,
		useMemory: useMemory,
		files:     files,
		mb:        mb,
		meta: Meta{
			NAttrs: uint32(nattrs),
			Depth:  uint32(depth),
			NPages: uint32(npages),
			CV:     cv,
		},
	}
	if err := r.persist(); err != nil {
		return nil, err
	}
	return r, nil
}

// Open opens an existing relation, reading its counters and choice vector
// back from the .info file.
func Open(name string, useMemory bool) (*Relation, error) {
	if !useMemory && !Exists(name) {
		return nil, fmt.Errorf("%q: %w", name, ErrRelationMissing)
	}
	files, err := storage.Open(name, useMemory)
	if err != nil {
		return nil, err
	}
	mb, err := newMetaBackend(name, useMemory)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, metaSize)
	if err := mb.read(buf); err != nil {
		return nil, fmt.Errorf("reading meta for %q: %w", name, err)
	}
	meta, err := decodeMeta(buf)
	if err != nil {
		return nil, err
	}
	return &Relation{name: name, useMemory: useMemory, files: files, mb: mb, meta: meta}, nil
}

func newMetaBackend(name string, useMemory bool) (metaBackend, error) {
	if useMemory {
		return &memoryMetaBackend{}, nil
	}
	return openFileMetaBackend(infoPath(name))
}

func (r *Relation) persist() error {
	return r.mb.write(r.meta.encode())
}

// Close writes the current counters and choice vector back to the .info
// file and releases all open file handles.
func (r *Relation) Close() error {
	if err := r.persist(); err != nil {
		return err
	}
	if err := r.mb.close(); err != nil {
		return err
	}
	return r.files.Close()
}

// Accessors mirroring the original's external Reln interface.
func (r *Relation) Name() string           { return r.name }
func (r *Relation) NAttrs() int            { return int(r.meta.NAttrs) }
func (r *Relation) Depth() int             { return int(r.meta.Depth) }
func (r *Relation) SplitPointer() int      { return int(r.meta.SP) }
func (r *Relation) NPages() int            { return int(r.meta.NPages) }
func (r *Relation) NTuples() int           { return int(r.meta.NTups) }
func (r *Relation) ChoiceVector() chvec.ChVec { return r.meta.CV }

// DataPage loads a primary page by ID, for scan consumers outside this
// package (equivalent of the original's dataFile(r) handle).
func (r *Relation) DataPage(id page.ID) (*page.Page, error) {
	return r.files.Data.GetPage(id)
}

// OvflowPage loads an overflow page by ID (equivalent of ovflowFile(r)).
func (r *Relation) OvflowPage(id page.ID) (*page.Page, error) {
	return r.files.Ovflow.GetPage(id)
}

// CacheStats reports read-cache hit/miss/eviction counters for the data and
// overflow files, a capability the original's cache had no equivalent of.
func (r *Relation) CacheStats() (data, ovflow sdcache.Stats) {
	return r.files.Data.CacheStats(), r.files.Ovflow.CacheStats()
}

// splitThreshold is C = 1024/(10*nattrs); it is always > 0 once nattrs is
// bounded by MaxAttrs.
func splitThreshold(nattrs int) int {
	return 1024 / (10 * nattrs)
}

// bucketFor applies the bucket address rule: the low d bits of the hash,
// promoted to d+1 bits if that would land below the split pointer.
func (r *Relation) bucketFor(h bits.Word) page.ID {
	d := int(r.meta.Depth)
	if d == 0 {
		return 0
	}
	p := page.ID(bits.Low(h, d))
	if p < page.ID(r.meta.SP) {
		p = page.ID(bits.Low(h, d+1))
	}
	return p
}

// insertIntoChain walks bucket's primary page and overflow chain, inserting
// t at the first page with room, appending a new overflow page if every
// existing page in the chain is full.
func (r *Relation) insertIntoChain(bucket page.ID, t []byte) (page.ID, error) {
	primary, err := r.files.Data.GetPage(bucket)
	if err != nil {
		return 0, err
	}
	if primary.Add(t) {
		if err := r.files.Data.PutPage(primary); err != nil {
			return 0, err
		}
		return bucket, nil
	}

	if primary.Ovflow() == page.NoPage {
		newID, err := r.files.Ovflow.AddPage()
		if err != nil {
			return 0, err
		}
		newPg, err := r.files.Ovflow.GetPage(newID)
		if err != nil {
			return 0, err
		}
		if !newPg.Add(t) {
			return 0, page.ErrOversized
		}
		if err := r.files.Ovflow.PutPage(newPg); err != nil {
			return 0, err
		}
		primary.SetOvflow(newID)
		if err := r.files.Data.PutPage(primary); err != nil {
			return 0, err
		}
		return bucket, nil
	}

	prevID := page.NoPage
	curID := primary.Ovflow()
	for curID != page.NoPage {
		cur, err := r.files.Ovflow.GetPage(curID)
		if err != nil {
			return 0, err
		}
		if cur.Add(t) {
			if err := r.files.Ovflow.PutPage(cur); err != nil {
				return 0, err
			}
			return bucket, nil
		}
		prevID = curID
		curID = cur.Ovflow()
	}

	newID, err := r.files.Ovflow.AddPage()
	if err != nil {
		return 0, err
	}
	newPg, err := r.files.Ovflow.GetPage(newID)
	if err != nil {
		return 0, err
	}
	if !newPg.Add(t) {
		return 0, page.ErrOversized
	}
	if err := r.files.Ovflow.PutPage(newPg); err != nil {
		return 0, err
	}
	prev, err := r.files.Ovflow.GetPage(prevID)
	if err != nil {
		return 0, err
	}
	prev.SetOvflow(newID)
	if err := r.files.Ovflow.PutPage(prev); err != nil {
		return 0, err
	}
	return bucket, nil
}

// Insert adds a tuple (already in nattrs-field comma-separated form) to the
// relation, splitting one bucket when the insert brings ntups to a multiple
// of the split threshold. It returns the primary bucket the tuple
// addressed, regardless of which page in its chain actually holds it.
func (r *Relation) Insert(t []byte) (page.ID, error) {
	fields, err := tuple.Split(t, int(r.meta.NAttrs))
	if err != nil {
		return 0, err
	}
	h := tuple.Hash(r.meta.CV, fields)
	bucket := r.bucketFor(h)

	b, err := r.insertIntoChain(bucket, t)
	if err != nil {
		return 0, err
	}
	r.meta.NTups++

	c := splitThreshold(int(r.meta.NAttrs))
	if r.meta.NTups%uint32(c) == 0 {
		if err := r.split(); err != nil {
			return b, err
		}
	}
	return b, nil
}
