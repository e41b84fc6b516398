package planner

import (
	"math/rand"
	"time"
)

// RandomSource is what the synthesizer draws from. *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

// NewSeededSource returns a math/rand source for seed, or a time-seeded one
// when seed is zero.
func NewSeededSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
