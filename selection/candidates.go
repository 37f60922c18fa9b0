package selection

import (
	"github.com/multiattr/malh/bhash"
	"github.com/multiattr/malh/bits"
	"github.com/multiattr/malh/chvec"
	"github.com/multiattr/malh/page"
)

// knownUnknown reduces a term list through the choice vector into two bit
// masks: known has bit i set when the corresponding CV entry's attribute is
// a literal and its hash has that bit set; unknown has bit i set when the
// corresponding attribute is a wildcard term.
func knownUnknown(cv chvec.ChVec, terms []string) (known, unknown bits.Word) {
	wildcard := make([]bool, len(terms))
	hashes := make([]uint32, len(terms))
	for i, term := range terms {
		if isWildcard(term) {
			wildcard[i] = true
		} else {
			hashes[i] = bhash.Sum32([]byte(term))
		}
	}
	for i := 0; i < bits.MaxBits; i++ {
		item := cv[i]
		if wildcard[item.Att] {
			unknown = bits.Set(unknown, i)
			continue
		}
		if bits.IsSet(hashes[item.Att], int(item.Bit)) {
			known = bits.Set(known, i)
		}
	}
	return known, unknown
}

// genCandidates enumerates every bucket address consistent with known and
// unknown over the low numBits bits: each unknown bit is tried both 0 and
// 1, each known bit is fixed, and any bit beyond numBits is left at 0.
func genCandidates(known, unknown bits.Word, numBits int) []page.ID {
	var positions []int
	for i := 0; i < numBits; i++ {
		if bits.IsSet(unknown, i) {
			positions = append(positions, i)
		}
	}
	total := 1 << len(positions)
	out := make([]page.ID, total)
	for c := 0; c < total; c++ {
		var candidate bits.Word
		for i := 0; i < numBits; i++ {
			if bits.IsSet(known, i) {
				candidate = bits.Set(candidate, i)
			}
		}
		for i, pos := range positions {
			if c&(1<<uint(i)) != 0 {
				candidate = bits.Set(candidate, pos)
			}
		}
		out[c] = page.ID(candidate)
	}
	return out
}

// candidateBuckets merges the depth-d and depth-(d+1) candidate sets the
// way the linear-hashing rule requires: a bucket addressed with d bits is
// only valid if it has not yet been split this round (index >= sp); a
// bucket addressed with d+1 bits is only valid for the buckets that have
// split (low d bits < sp).
func candidateBuckets(cv chvec.ChVec, terms []string, depth, sp int) []page.ID {
	known, unknown := knownUnknown(cv, terms)
	candD := genCandidates(known, unknown, depth)
	candDplus := genCandidates(known, unknown, depth+1)

	splitPointer := page.ID(sp)
	var candidates []page.ID
	for _, c := range candD {
		if c >= splitPointer {
			candidates = append(candidates, c)
		}
	}
	for _, c := range candDplus {
		if page.ID(bits.Low(bits.Word(c), depth)) < splitPointer {
			candidates = append(candidates, c)
		}
	}
	return candidates
}
