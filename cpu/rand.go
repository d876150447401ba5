package cpu

import (
	"math/rand/v2"
)

// Random is the source of values for the RNG instruction.
type Random interface {
	Uint64() uint64
}

// NewRandom returns a seeded random source.
func NewRandom(seed uint64) Random {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
