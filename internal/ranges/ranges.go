// Package ranges selects the half-open interval that contains a sample and
// builds percentage tables from weights.
package ranges

import (
	"errors"
	"fmt"
	"math"
)

// Upper bound of a percentage table.
const PercentMax = 100.0

var (
	ErrEmpty     = errors.New("no intervals")
	ErrInverted  = errors.New("interval low is greater than high")
	ErrUnordered = errors.New("intervals are not ordered")
	ErrNoMatch   = errors.New("sample is not contained in any interval")
)

// Interval is a half-open range [Low, High).
type Interval struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// Contains reports whether Low <= sample < High.
func (iv Interval) Contains(sample float64) bool {
	return sample >= iv.Low && sample < iv.High
}

// Width returns High - Low.
func (iv Interval) Width() float64 {
	return iv.High - iv.Low
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%g, %g)", iv.Low, iv.High)
}

// SelectIndex returns the position of the first interval containing sample.
// The boolean is false when no interval contains it; the index is then -1.
func SelectIndex(intervals []Interval, sample float64) (int, bool) {
	for i, iv := range intervals {
		if iv.Contains(sample) {
			return i, true
		}
	}
	return -1, false
}

// Select is SelectIndex with ErrNoMatch in place of the boolean.
func Select(intervals []Interval, sample float64) (int, error) {
	idx, ok := SelectIndex(intervals, sample)
	if !ok {
		return -1, fmt.Errorf("%w: %g", ErrNoMatch, sample)
	}
	return idx, nil
}

// Validate checks that intervals is non-empty, that no interval is inverted
// and that intervals are sorted by Low.
func Validate(intervals []Interval) error {
	if len(intervals) == 0 {
		return ErrEmpty
	}
	for i, iv := range intervals {
		if math.IsNaN(iv.Low) || math.IsNaN(iv.High) || iv.Low > iv.High {
			return fmt.Errorf("%w: interval %d %s", ErrInverted, i, iv)
		}
		if i > 0 && iv.Low < intervals[i-1].Low {
			return fmt.Errorf("%w: interval %d %s starts before %s", ErrUnordered, i, iv, intervals[i-1])
		}
	}
	return nil
}

// Contiguous reports whether each interval starts exactly where the previous
// one ends.
func Contiguous(intervals []Interval) bool {
	for i := 1; i < len(intervals); i++ {
		if intervals[i].Low != intervals[i-1].High {
			return false
		}
	}
	return true
}

// Span returns the union bounds of a contiguous sequence.
func Span(intervals []Interval) Interval {
	if len(intervals) == 0 {
		return Interval{}
	}
	return Interval{Low: intervals[0].Low, High: intervals[len(intervals)-1].High}
}

// FromWeights turns relative weights into cumulative percentage buckets
// covering [0, 100). Zero weights produce empty buckets that never match.
func FromWeights(weights []float64) ([]Interval, error) {
	if len(weights) == 0 {
		return nil, ErrEmpty
	}

	var total float64
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("invalid weight %g at position %d", w, i)
		}
		total += w
	}
	if total == 0 {
		return nil, errors.New("weights sum to zero")
	}

	intervals := make([]Interval, len(weights))
	var cumulative float64
	for i, w := range weights {
		low := cumulative
		cumulative += w
		high := cumulative / total * PercentMax
		intervals[i] = Interval{Low: low / total * PercentMax, High: high}
	}

	// Float accumulation can leave the last bound just short of 100.
	final := intervals[len(intervals)-1].High
	for i := range intervals {
		if intervals[i].Low == final {
			intervals[i].Low = PercentMax
		}
		if intervals[i].High == final {
			intervals[i].High = PercentMax
		}
	}

	return intervals, nil
}

// Share returns the fraction of [0, PercentMax) each interval covers, which is
// the chance a percentage roll lands in it. Shares of a table that stops short
// of PercentMax sum to less than 1.
func Share(intervals []Interval) []float64 {
	shares := make([]float64, len(intervals))
	for i, iv := range intervals {
		shares[i] = iv.Width() / PercentMax
	}
	return shares
}
