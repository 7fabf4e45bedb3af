package engine

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// newRNG builds the voyage random stream from a seed. Non-cryptographic
// PRNG is intentional: the same seed must replay the same voyages.
func newRNG(seed int64) *rand.Rand {
	// #nosec G404 -- deterministic simulation requires a seedable PRNG
	return rand.New(rand.NewPCG(seedWord(seed, "origin"), seedWord(seed, "passage")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%s", seed, salt)
	return h.Sum64()
}
