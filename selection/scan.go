package selection

import (
	"github.com/multiattr/malh/page"
	"github.com/multiattr/malh/relation"
	"github.com/multiattr/malh/tuple"
)

// Scan streams the tuples matching a query out of a relation's candidate
// buckets, one bucket's primary page and its overflow chain at a time. Its
// Next/Tuple/Err shape follows bufio.Scanner's, matching the resumable,
// one-tuple-at-a-time iterator the original's Selection/getNextTuple pair
// implements with explicit cursor fields.
type Scan struct {
	rel    *relation.Relation
	terms  []string
	nattrs int

	candidates []page.ID
	candIdx    int

	pageTuples [][]byte
	tupleIdx   int
	nextOvflow page.ID

	cur []byte
	err error
}

// NewScan parses query into terms, reduces them through rel's choice
// vector, and computes the candidate bucket list before any page is
// touched.
func NewScan(rel *relation.Relation, query string) (*Scan, error) {
	nattrs := rel.NAttrs()
	terms := ParseQuery(query, nattrs)
	candidates := candidateBuckets(rel.ChoiceVector(), terms, rel.Depth(), rel.SplitPointer())

	s := &Scan{rel: rel, terms: terms, nattrs: nattrs, candidates: candidates}
	if len(candidates) > 0 {
		if err := s.loadBucket(candidates[0]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Scan) loadBucket(bucket page.ID) error {
	pg, err := s.rel.DataPage(bucket)
	if err != nil {
		return err
	}
	s.pageTuples = pg.Tuples()
	s.tupleIdx = 0
	s.nextOvflow = pg.Ovflow()
	return nil
}

// Next advances to the next matching tuple, returning false when the
// candidate buckets are exhausted or an error occurred (check Err).
func (s *Scan) Next() bool {
	if s.err != nil {
		return false
	}
	for s.candIdx < len(s.candidates) {
		for s.tupleIdx < len(s.pageTuples) || s.nextOvflow != page.NoPage {
			if s.tupleIdx >= len(s.pageTuples) {
				pg, err := s.rel.OvflowPage(s.nextOvflow)
				if err != nil {
					s.err = err
					return false
				}
				s.pageTuples = pg.Tuples()
				s.tupleIdx = 0
				s.nextOvflow = pg.Ovflow()
				continue
			}
			t := s.pageTuples[s.tupleIdx]
			s.tupleIdx++
			if s.matches(t) {
				s.cur = t
				return true
			}
		}
		s.candIdx++
		if s.candIdx < len(s.candidates) {
			if err := s.loadBucket(s.candidates[s.candIdx]); err != nil {
				s.err = err
				return false
			}
		}
	}
	return false
}

func (s *Scan) matches(t []byte) bool {
	fields, err := tuple.Split(t, s.nattrs)
	if err != nil {
		return false
	}
	for i, field := range fields {
		if !MatchPattern(string(field), s.terms[i]) {
			return false
		}
	}
	return true
}

// Tuple returns the tuple found by the most recent call to Next that
// returned true.
func (s *Scan) Tuple() []byte { return s.cur }

// Err returns the first error encountered while scanning, if any.
func (s *Scan) Err() error { return s.err }
