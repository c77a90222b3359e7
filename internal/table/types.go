package table

import (
	"errors"
	"time"

	"github.com/thcheetah777/engine/internal/ranges"
)

const (
	// History limits
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 1000
)

var (
	ErrNotFound  = errors.New("table not found")
	ErrInvalid   = errors.New("invalid table")
	ErrDuplicate = errors.New("table name already exists")
)

type Bucket struct {
	Position int     `json:"position"`
	Label    string  `json:"label"`
	Low      float64 `json:"low"`
	High     float64 `json:"high"`
}

type Table struct {
	TableID     string    `json:"table_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Buckets     []Bucket  `json:"buckets"`
}

// Intervals returns the table's buckets in position order as intervals.
func (t *Table) Intervals() []ranges.Interval {
	intervals := make([]ranges.Interval, len(t.Buckets))
	for i, b := range t.Buckets {
		intervals[i] = ranges.Interval{Low: b.Low, High: b.High}
	}
	return intervals
}

// BucketSpec describes one bucket of a new table. Either Range ([low, high])
// or Weight is used; a request may not mix the two.
type BucketSpec struct {
	Label  string    `json:"label" yaml:"label"`
	Range  []float64 `json:"range,omitempty" yaml:"range,omitempty"`
	Weight float64   `json:"weight,omitempty" yaml:"weight,omitempty"`
}

type CreateTableRequest struct {
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Buckets     []BucketSpec `json:"buckets" yaml:"buckets"`
}

// Definitions is the layout of a table seed file.
type Definitions struct {
	Tables []CreateTableRequest `yaml:"tables"`
}

type RollResult struct {
	RollID   string    `json:"roll_id"`
	Sample   float64   `json:"sample"`
	Hit      bool      `json:"hit"`
	Index    int       `json:"index"`
	Label    string    `json:"label,omitempty"`
	RolledAt time.Time `json:"rolled_at"`
}

type RollResponse struct {
	TableID string       `json:"table_id"`
	Count   int          `json:"count"`
	Hits    int          `json:"hits"`
	Misses  int          `json:"misses"`
	Rolls   []RollResult `json:"rolls"`
}

type BucketStats struct {
	Position int     `json:"position"`
	Label    string  `json:"label"`
	Count    int64   `json:"count"`
	Observed float64 `json:"observed"`
	Expected float64 `json:"expected"`
}

type Stats struct {
	TableID string        `json:"table_id"`
	Total   int64         `json:"total"`
	Misses  int64         `json:"misses"`
	Buckets []BucketStats `json:"buckets"`
}

// RollLogEntry is a roll along with the table it was drawn from.
type RollLogEntry struct {
	TableID string `json:"table_id"`
	RollResult
}
