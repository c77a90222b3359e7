package table

import (
	"github.com/thcheetah777/engine/internal/ranges"
	"github.com/thcheetah777/engine/internal/rng"
)

// Simulation is the outcome of rolling a table locally without recording
// anything.
type Simulation struct {
	Rolls    int
	Counts   []int
	Misses   int
	Expected []float64
}

// Observed returns the fraction of rolls that landed in bucket i.
func (s Simulation) Observed(i int) float64 {
	if s.Rolls == 0 {
		return 0
	}
	return float64(s.Counts[i]) / float64(s.Rolls)
}

// Simulate rolls the table n times using r and tallies the buckets hit.
func Simulate(r *rng.Rand, t *Table, n int) Simulation {
	intervals := t.Intervals()
	sim := Simulation{
		Rolls:    n,
		Counts:   make([]int, len(intervals)),
		Expected: ranges.Share(intervals),
	}

	for i := 0; i < n; i++ {
		idx, _, ok := r.Roll(intervals)
		if !ok {
			sim.Misses++
			continue
		}
		sim.Counts[idx]++
	}
	return sim
}
