// Package random provides seed generation and bounded sampling helpers for
// deterministic problem generation.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// New returns a generator owned by a single request.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Derive returns a child seed for stream i of a base seed. Used to give
// each worksheet version its own reproducible stream.
func Derive(base int64, i int) int64 {
	return rand.New(rand.NewSource(base + int64(i)*0x9E3779B9)).Int63()
}

// Between returns a uniform integer in [lo, hi]. If hi < lo it returns lo.
func Between(rng *rand.Rand, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Int63n(hi-lo+1)
}

// NonZeroBetween is Between that never returns zero unless the range is
// exactly [0, 0].
func NonZeroBetween(rng *rand.Rand, lo, hi int64) int64 {
	if lo == 0 && hi == 0 {
		return 0
	}
	for {
		if v := Between(rng, lo, hi); v != 0 {
			return v
		}
	}
}

// Pick returns a uniform index in [0, n).
func Pick(rng *rand.Rand, n int) int {
	if n <= 1 {
		return 0
	}
	return rng.Intn(n)
}
