// Package rng provides the uniform random helpers used to build samples for
// weighted range selection.
package rng

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/thcheetah777/engine/internal/ranges"
)

// Rand wraps a math/rand/v2 source. It is safe for concurrent use.
type Rand struct {
	mu   sync.Mutex
	r    *rand.Rand
	seed uint64
}

// New creates a deterministic Rand from seed.
func New(seed uint64) *Rand {
	return &Rand{
		r:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// NewTimeSeeded creates a Rand seeded from the wall clock.
func NewTimeSeeded() *Rand {
	return New(uint64(time.Now().UnixNano()))
}

// NewFromSource wraps an arbitrary source, mostly for tests.
func NewFromSource(src rand.Source) *Rand {
	return &Rand{r: rand.New(src)}
}

// Seed returns the seed the Rand was created with, or 0 for NewFromSource.
func (r *Rand) Seed() uint64 {
	return r.seed
}

// Float64 returns a uniform value in [0, 1).
func (r *Rand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Float64()
}

// Between returns a uniform real in [min, max).
func (r *Rand) Between(min, max float64) float64 {
	v := r.Float64()*(max-min) + min
	// Rounding of the scaled value can land exactly on max.
	if v >= max && max > min {
		return math.Nextafter(max, min)
	}
	return v
}

// RoundBetween returns Between(min, max) rounded half-up, so both min and
// max can be returned.
func (r *Rand) RoundBetween(min, max int) int {
	return RoundHalfUp(r.Between(float64(min), float64(max)))
}

// Percentage returns an integer in [0, 100], both ends inclusive.
//
// 100 lies outside a half-open [0, 100) table; use Roll to sample tables.
func (r *Rand) Percentage() int {
	return r.RoundBetween(0, int(ranges.PercentMax))
}

// Bool returns true or false with equal probability.
func (r *Rand) Bool() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.IntN(2) == 1
}

// Roll draws a sample in [0, 100) and selects the interval containing it.
// The sample is returned so callers can log or replay it.
func (r *Rand) Roll(intervals []ranges.Interval) (int, float64, bool) {
	sample := r.Between(0, ranges.PercentMax)
	idx, ok := ranges.SelectIndex(intervals, sample)
	return idx, sample, ok
}

// RoundHalfUp rounds x to the nearest integer, with halves going towards
// positive infinity.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
