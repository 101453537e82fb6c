package engine

import (
	"math/rand"
	"time"
)

// Source supplies uniform random numbers in [0, 1).
// *rand.Rand satisfies it; tests can supply fixed sequences.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded Source. A zero seed uses the current time.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
