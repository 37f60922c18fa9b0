// Package bhash maps an arbitrary byte string to a 32-bit hash word with
// good bit dispersion, used to derive per-attribute hashes before they are
// combined by a choice vector into a composite hash (see package chvec).
package bhash

import "github.com/spaolacci/murmur3"

// seed is fixed so that hashing the same bytes always produces the same
// word within one process. It is not a compatibility surface: a relation's
// on-disk files are only meaningful when read back with the same hash
// function, never across implementations.
const seed = 0

// Sum32 hashes b and returns a 32-bit word with avalanche across all bit
// positions: changing one input byte flips roughly half the output bits.
func Sum32(b []byte) uint32 {
	return murmur3.Sum32WithSeed(b, seed)
}
