package relation

import (
	"github.com/multiattr/malh/bits"
	"github.com/multiattr/malh/page"
	"github.com/multiattr/malh/tuple"
)

// split performs one incremental-hashing split of bucket sp: a fresh
// primary page is appended for the new bucket, every tuple currently
// reachable from the old bucket's chain is collected and rehashed with one
// extra bit, and the old primary is replaced with an empty page.
//
// The old bucket's overflow pages are left in place as unreferenced
// garbage rather than reused empty (the original keeps a single emptied
// overflow page linked from the new primary; this is behaviourally
// equivalent once every tuple has been redistributed, since any residual
// chain holds only empty pages, and is simpler to reason about: pages are
// append-only and never reclaimed elsewhere in this file either).
func (r *Relation) split() error {
	old := page.ID(r.meta.SP)

	if _, err := r.files.Data.AddPage(); err != nil {
		return err
	}
	r.meta.NPages++

	oldPrimary, err := r.files.Data.GetPage(old)
	if err != nil {
		return err
	}

	tuples := oldPrimary.Tuples()
	ovID := oldPrimary.Ovflow()
	for ovID != page.NoPage {
		ovPg, err := r.files.Ovflow.GetPage(ovID)
		if err != nil {
			return err
		}
		tuples = append(tuples, ovPg.Tuples()...)
		ovID = ovPg.Ovflow()
	}

	if err := r.files.Data.PutPage(page.New(old)); err != nil {
		return err
	}

	newDepth := int(r.meta.Depth) + 1
	for _, t := range tuples {
		fields, err := tuple.Split(t, int(r.meta.NAttrs))
		if err != nil {
			return err
		}
		h := tuple.Hash(r.meta.CV, fields)
		target := page.ID(bits.Low(h, newDepth))
		if _, err := r.insertIntoChain(target, t); err != nil {
			return err
		}
	}

	r.meta.SP++
	if r.meta.SP == uint32(1)<<r.meta.Depth {
		r.meta.Depth++
		r.meta.SP = 0
	}
	return nil
}

// PageInfo reports one page's occupancy, used by BucketReport.
type PageInfo struct {
	ID        page.ID
	NTuples   int
	FreeBytes int
	Overflow  bool
}

// BucketInfo reports one bucket's full chain: its primary page followed by
// every overflow page linked from it, in chain order.
type BucketInfo struct {
	Bucket page.ID
	Chain  []PageInfo
}

// BucketReport walks every bucket's primary page and overflow chain,
// mirroring the original's relationStats bucket dump.
func (r *Relation) BucketReport() ([]BucketInfo, error) {
	report := make([]BucketInfo, 0, r.meta.NPages)
	for pid := page.ID(0); pid < r.meta.NPages; pid++ {
		pg, err := r.files.Data.GetPage(pid)
		if err != nil {
			return nil, err
		}
		chain := []PageInfo{{ID: pid, NTuples: pg.NTuples(), FreeBytes: pg.FreeSpace()}}
		ovID := pg.Ovflow()
		for ovID != page.NoPage {
			ovPg, err := r.files.Ovflow.GetPage(ovID)
			if err != nil {
				return nil, err
			}
			chain = append(chain, PageInfo{ID: ovID, NTuples: ovPg.NTuples(), FreeBytes: ovPg.FreeSpace(), Overflow: true})
			ovID = ovPg.Ovflow()
		}
		report = append(report, BucketInfo{Bucket: pid, Chain: chain})
	}
	return report, nil
}
