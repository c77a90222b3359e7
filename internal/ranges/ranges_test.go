package ranges

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var thirds = []Interval{{0, 20}, {20, 50}, {50, 100}}

func TestSelectIndex(t *testing.T) {
	tests := []struct {
		name      string
		sample    float64
		wantIndex int
		wantFound bool
	}{
		{name: "low bound of first interval", sample: 0, wantIndex: 0, wantFound: true},
		{name: "low bound selects that interval", sample: 20, wantIndex: 1, wantFound: true},
		{name: "high bound selects the next interval", sample: 50, wantIndex: 2, wantFound: true},
		{name: "just below the end", sample: 99.999, wantIndex: 2, wantFound: true},
		{name: "inside middle interval", sample: 35.5, wantIndex: 1, wantFound: true},
		{name: "high bound of last interval", sample: 100, wantIndex: -1, wantFound: false},
		{name: "below first interval", sample: -0.001, wantIndex: -1, wantFound: false},
		{name: "NaN never matches", sample: math.NaN(), wantIndex: -1, wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, found := SelectIndex(thirds, tt.sample)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantIndex, idx)
		})
	}
}

func TestSelectIndexFirstMatchWins(t *testing.T) {
	overlapping := []Interval{{0, 60}, {40, 100}}

	idx, found := SelectIndex(overlapping, 50)
	require.True(t, found)
	assert.Equal(t, 0, idx)
}

func TestSelectIndexEmptyInterval(t *testing.T) {
	withEmpty := []Interval{{0, 10}, {10, 10}, {10, 100}}

	idx, found := SelectIndex(withEmpty, 10)
	require.True(t, found)
	assert.Equal(t, 2, idx, "zero-width interval must never match")
}

func TestSelectIndexCoverage(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	for round := 0; round < 200; round++ {
		intervals := randomPartition(r, 1+r.IntN(8))
		require.NoError(t, Validate(intervals))
		require.True(t, Contiguous(intervals))

		for i := 0; i < 50; i++ {
			sample := r.Float64() * PercentMax
			idx, found := SelectIndex(intervals, sample)
			require.True(t, found, "sample %g in %v", sample, intervals)

			matches := 0
			for _, iv := range intervals {
				if iv.Contains(sample) {
					matches++
				}
			}
			assert.Equal(t, 1, matches)
			assert.True(t, intervals[idx].Contains(sample))
		}
	}
}

func TestSelect(t *testing.T) {
	idx, err := Select(thirds, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	idx, err = Select(thirds, 100)
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, -1, idx)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		intervals []Interval
		wantErr   error
	}{
		{name: "valid", intervals: thirds},
		{name: "empty", intervals: nil, wantErr: ErrEmpty},
		{name: "inverted", intervals: []Interval{{0, 10}, {30, 20}}, wantErr: ErrInverted},
		{name: "NaN bound", intervals: []Interval{{math.NaN(), 10}}, wantErr: ErrInverted},
		{name: "unordered", intervals: []Interval{{50, 100}, {0, 50}}, wantErr: ErrUnordered},
		{name: "zero width is allowed", intervals: []Interval{{5, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.intervals)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestContiguous(t *testing.T) {
	assert.True(t, Contiguous(thirds))
	assert.True(t, Contiguous(nil))
	assert.False(t, Contiguous([]Interval{{0, 20}, {25, 100}}), "gap")
	assert.False(t, Contiguous([]Interval{{0, 30}, {25, 100}}), "overlap")
}

func TestFromWeights(t *testing.T) {
	t.Run("equal weights", func(t *testing.T) {
		intervals, err := FromWeights([]float64{1, 1, 1, 1})
		require.NoError(t, err)
		assert.Equal(t, []Interval{{0, 25}, {25, 50}, {50, 75}, {75, 100}}, intervals)
	})

	t.Run("uneven weights stay contiguous and end at 100", func(t *testing.T) {
		intervals, err := FromWeights([]float64{0.1, 0.2, 0.3, 0.7})
		require.NoError(t, err)
		assert.True(t, Contiguous(intervals))
		assert.Equal(t, 0.0, intervals[0].Low)
		assert.Equal(t, PercentMax, intervals[len(intervals)-1].High)
	})

	t.Run("trailing zero weight", func(t *testing.T) {
		intervals, err := FromWeights([]float64{3, 0})
		require.NoError(t, err)
		assert.Equal(t, []Interval{{0, 100}, {100, 100}}, intervals)

		idx, found := SelectIndex(intervals, 99.5)
		require.True(t, found)
		assert.Equal(t, 0, idx)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := FromWeights(nil)
		assert.ErrorIs(t, err, ErrEmpty)

		_, err = FromWeights([]float64{0, 0})
		assert.Error(t, err)

		_, err = FromWeights([]float64{1, -1})
		assert.Error(t, err)

		_, err = FromWeights([]float64{math.Inf(1)})
		assert.Error(t, err)
	})
}

func TestShare(t *testing.T) {
	shares := Share(thirds)
	assert.InDeltaSlice(t, []float64{0.2, 0.3, 0.5}, shares, 1e-9)

	assert.Equal(t, []float64{0}, Share([]Interval{{5, 5}}))

	gapped := Share([]Interval{{0, 25}, {25, 50}})
	assert.InDeltaSlice(t, []float64{0.25, 0.25}, gapped, 1e-9)
}

func randomPartition(r *rand.Rand, n int) []Interval {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 0.01 + r.Float64()
	}
	intervals, _ := FromWeights(weights)
	return intervals
}
