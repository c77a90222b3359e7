package rng

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thcheetah777/engine/internal/ranges"
)

// fixedSource yields the same 64-bit value forever.
type fixedSource uint64

func (f fixedSource) Uint64() uint64 { return uint64(f) }

const (
	zeroBits = fixedSource(0)
	halfBits = fixedSource(1 << 52)
	maxBits  = fixedSource(math.MaxUint64)
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{1.5, 2},
		{2.5, 3},
		{-0.5, 0},
		{-1.5, -1},
		{99.9, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundHalfUp(tt.in), "RoundHalfUp(%g)", tt.in)
	}
}

func TestBetweenBounds(t *testing.T) {
	assert.Equal(t, 3.0, NewFromSource(zeroBits).Between(3, 7))
	assert.Equal(t, 5.0, NewFromSource(halfBits).Between(3, 7))

	top := NewFromSource(maxBits).Between(3, 7)
	assert.Less(t, top, 7.0)
	assert.Greater(t, top, 6.99)
}

func TestRoundBetween(t *testing.T) {
	t.Run("degenerate range always returns min", func(t *testing.T) {
		r := New(42)
		for i := 0; i < 1000; i++ {
			require.Equal(t, 5, r.RoundBetween(5, 5))
		}
	})

	t.Run("range of one stays within both bounds", func(t *testing.T) {
		r := New(42)
		seen := map[int]int{}
		for i := 0; i < 5000; i++ {
			v := r.RoundBetween(1, 2)
			require.Contains(t, []int{1, 2}, v)
			seen[v]++
		}
		assert.Len(t, seen, 2)
	})

	t.Run("midpoint rounds up", func(t *testing.T) {
		assert.Equal(t, 2, NewFromSource(halfBits).RoundBetween(1, 2))
		assert.Equal(t, 1, NewFromSource(zeroBits).RoundBetween(1, 2))
		assert.Equal(t, 2, NewFromSource(maxBits).RoundBetween(1, 2))
	})
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, NewFromSource(zeroBits).Percentage())
	assert.Equal(t, 50, NewFromSource(halfBits).Percentage())
	assert.Equal(t, 100, NewFromSource(maxBits).Percentage())

	r := New(1)
	for i := 0; i < 10000; i++ {
		p := r.Percentage()
		require.GreaterOrEqual(t, p, 0)
		require.LessOrEqual(t, p, 100)
	}
}

func TestBool(t *testing.T) {
	r := New(9)
	counts := map[bool]int{}
	for i := 0; i < 2000; i++ {
		counts[r.Bool()]++
	}
	assert.Greater(t, counts[true], 800)
	assert.Greater(t, counts[false], 800)
}

func TestDeterministicSeed(t *testing.T) {
	a, b := New(1234), New(1234)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Between(0, 100), b.Between(0, 100))
	}
	assert.Equal(t, uint64(1234), a.Seed())
}

func TestRoll(t *testing.T) {
	intervals := []ranges.Interval{{Low: 0, High: 20}, {Low: 20, High: 50}, {Low: 50, High: 100}}

	idx, sample, ok := NewFromSource(halfBits).Roll(intervals)
	require.True(t, ok)
	assert.Equal(t, 50.0, sample)
	assert.Equal(t, 2, idx)

	idx, _, ok = NewFromSource(zeroBits).Roll([]ranges.Interval{{Low: 10, High: 100}})
	assert.False(t, ok)
	assert.Equal(t, -1, idx)

	r := New(3)
	for i := 0; i < 1000; i++ {
		_, _, ok := r.Roll(intervals)
		require.True(t, ok, "full coverage must always match")
	}
}

func TestConcurrentUse(t *testing.T) {
	r := New(5)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				v := r.Between(0, 1)
				if v < 0 || v >= 1 {
					t.Errorf("value out of range: %g", v)
				}
			}
		}()
	}
	wg.Wait()
}
