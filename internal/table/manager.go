package table

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/thcheetah777/engine/internal/db"
	"github.com/thcheetah777/engine/internal/ranges"
	"github.com/thcheetah777/engine/internal/rng"
)

type Manager struct {
	db      *sql.DB
	queries *db.LoggingQueries
	rand    *rng.Rand
}

func NewManager(database *sql.DB, r *rng.Rand) *Manager {
	if r == nil {
		r = rng.NewTimeSeeded()
	}
	return &Manager{
		db:      database,
		queries: db.NewLoggingQueries(database),
		rand:    r,
	}
}

// Rand returns the generator used for rolls.
func (m *Manager) Rand() *rng.Rand { return m.rand }

// BuildBuckets resolves bucket specs into positioned buckets, either from
// explicit ranges or from weights.
func BuildBuckets(specs []BucketSpec) ([]Bucket, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no buckets", ErrInvalid)
	}

	withRange := 0
	for i, spec := range specs {
		if strings.TrimSpace(spec.Label) == "" {
			return nil, fmt.Errorf("%w: bucket %d has no label", ErrInvalid, i)
		}
		if spec.Range != nil {
			withRange++
		}
	}

	var intervals []ranges.Interval
	switch withRange {
	case len(specs):
		intervals = make([]ranges.Interval, len(specs))
		for i, spec := range specs {
			if len(spec.Range) != 2 {
				return nil, fmt.Errorf("%w: bucket %q range needs two bounds", ErrInvalid, spec.Label)
			}
			intervals[i] = ranges.Interval{Low: spec.Range[0], High: spec.Range[1]}
		}
	case 0:
		weights := make([]float64, len(specs))
		for i, spec := range specs {
			weights[i] = spec.Weight
		}
		var err error
		intervals, err = ranges.FromWeights(weights)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	default:
		return nil, fmt.Errorf("%w: buckets mix ranges and weights", ErrInvalid)
	}

	if err := ranges.Validate(intervals); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !ranges.Contiguous(intervals) {
		return nil, fmt.Errorf("%w: buckets have gaps or overlaps", ErrInvalid)
	}
	span := ranges.Span(intervals)
	if span.Low < 0 || span.High > ranges.PercentMax {
		return nil, fmt.Errorf("%w: buckets span %s outside [0, 100)", ErrInvalid, span)
	}

	buckets := make([]Bucket, len(specs))
	for i, iv := range intervals {
		buckets[i] = Bucket{
			Position: i,
			Label:    specs[i].Label,
			Low:      iv.Low,
			High:     iv.High,
		}
	}
	return buckets, nil
}

func (m *Manager) CreateTable(ctx context.Context, req CreateTableRequest) (*Table, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	buckets, err := BuildBuckets(req.Buckets)
	if err != nil {
		return nil, err
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txQueries := m.queries.WithTx(tx)

	table := &Table{
		TableID:     uuid.NewString(),
		Name:        name,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
		Buckets:     buckets,
	}

	err = txQueries.CreateTable(ctx, db.CreateTableParams{
		TableID:     table.TableID,
		Name:        table.Name,
		Description: sql.NullString{String: table.Description, Valid: table.Description != ""},
		CreatedAt:   table.CreatedAt,
	})
	if db.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	for _, b := range buckets {
		err = txQueries.CreateBucket(ctx, db.CreateBucketParams{
			TableID:  table.TableID,
			Position: int64(b.Position),
			Label:    b.Label,
			Low:      b.Low,
			High:     b.High,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket %d: %w", b.Position, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info("Created roll table", "table_id", table.TableID, "name", table.Name, "buckets", len(buckets))
	return table, nil
}

func (m *Manager) GetTable(ctx context.Context, tableID string) (*Table, error) {
	return m.loadTable(ctx, m.queries, tableID)
}

func (m *Manager) GetTableByName(ctx context.Context, name string) (*Table, error) {
	row, err := m.queries.GetTableByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	return m.withBuckets(ctx, m.queries, row)
}

func (m *Manager) ListTables(ctx context.Context) ([]Table, error) {
	rows, err := m.queries.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	tables := make([]Table, 0, len(rows))
	for _, row := range rows {
		t, err := m.withBuckets(ctx, m.queries, row)
		if err != nil {
			return nil, err
		}
		tables = append(tables, *t)
	}
	return tables, nil
}

func (m *Manager) DeleteTable(ctx context.Context, tableID string) error {
	affected, err := m.queries.DeleteTable(ctx, tableID)
	if err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, tableID)
	}
	log.Info("Deleted roll table", "table_id", tableID)
	return nil
}

// Roll draws count samples against the table and records every one of them.
// Samples outside all buckets are kept as misses.
func (m *Manager) Roll(ctx context.Context, tableID string, count int) (*RollResponse, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: roll count must be positive", ErrInvalid)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txQueries := m.queries.WithTx(tx)

	table, err := m.loadTable(ctx, txQueries, tableID)
	if err != nil {
		return nil, err
	}
	intervals := table.Intervals()

	resp := &RollResponse{
		TableID: tableID,
		Count:   count,
		Rolls:   make([]RollResult, 0, count),
	}
	now := time.Now().UTC()

	for i := 0; i < count; i++ {
		idx, sample, hit := m.rand.Roll(intervals)
		result := RollResult{
			RollID:   uuid.NewString(),
			Sample:   sample,
			Hit:      hit,
			Index:    idx,
			RolledAt: now,
		}
		params := db.CreateRollLogParams{
			RollID:   result.RollID,
			TableID:  tableID,
			Sample:   sample,
			RolledAt: now,
		}
		if hit {
			result.Label = table.Buckets[idx].Label
			params.BucketIndex = sql.NullInt64{Int64: int64(idx), Valid: true}
			params.Label = sql.NullString{String: result.Label, Valid: true}
			resp.Hits++
		} else {
			log.Warn("Roll matched no bucket", "table_id", tableID, "sample", sample)
			resp.Misses++
		}

		if err := txQueries.CreateRollLog(ctx, params); err != nil {
			return nil, fmt.Errorf("failed to record roll: %w", err)
		}
		resp.Rolls = append(resp.Rolls, result)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Debug("Rolled table", "table_id", tableID, "count", count, "hits", resp.Hits, "misses", resp.Misses)
	return resp, nil
}

// History returns the most recent rolls of a table, newest first.
func (m *Manager) History(ctx context.Context, tableID string, limit int) ([]RollResult, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	if _, err := m.loadTable(ctx, m.queries, tableID); err != nil {
		return nil, err
	}

	rows, err := m.queries.ListRollLog(ctx, db.ListRollLogParams{
		TableID: tableID,
		Limit:   int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list rolls: %w", err)
	}
	return rollResults(rows), nil
}

// Recent returns the latest rolls across all tables.
func (m *Manager) Recent(ctx context.Context, limit int) ([]RollLogEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := m.queries.ListRecentRolls(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list recent rolls: %w", err)
	}

	entries := make([]RollLogEntry, len(rows))
	results := rollResults(rows)
	for i, row := range rows {
		entries[i] = RollLogEntry{TableID: row.TableID, RollResult: results[i]}
	}
	return entries, nil
}

// Counts returns the number of stored tables and rolls.
func (m *Manager) Counts(ctx context.Context) (tables, rolls int64, err error) {
	tables, err = m.queries.CountTables(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count tables: %w", err)
	}
	rolls, err = m.queries.CountRolls(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count rolls: %w", err)
	}
	return tables, rolls, nil
}

// Stats compares the observed roll distribution of a table with the share of
// [0, 100) each bucket covers.
func (m *Manager) Stats(ctx context.Context, tableID string) (*Stats, error) {
	table, err := m.loadTable(ctx, m.queries, tableID)
	if err != nil {
		return nil, err
	}

	rows, err := m.queries.CountRollsByBucket(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to count rolls: %w", err)
	}

	stats := &Stats{
		TableID: tableID,
		Buckets: make([]BucketStats, len(table.Buckets)),
	}
	shares := ranges.Share(table.Intervals())
	for i, b := range table.Buckets {
		stats.Buckets[i] = BucketStats{
			Position: b.Position,
			Label:    b.Label,
			Expected: shares[i],
		}
	}

	for _, row := range rows {
		stats.Total += row.Count
		if !row.BucketIndex.Valid {
			stats.Misses += row.Count
			continue
		}
		idx := int(row.BucketIndex.Int64)
		if idx >= 0 && idx < len(stats.Buckets) {
			stats.Buckets[idx].Count += row.Count
		}
	}

	if stats.Total > 0 {
		for i := range stats.Buckets {
			stats.Buckets[i].Observed = float64(stats.Buckets[i].Count) / float64(stats.Total)
		}
	}
	return stats, nil
}

// LoadDefinitions creates the tables described in a YAML seed file. Tables
// whose name already exists are left untouched. It returns the number of
// tables created.
func (m *Manager) LoadDefinitions(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read table definitions: %w", err)
	}

	var defs Definitions
	if err := yaml.Unmarshal(raw, &defs); err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	created := 0
	for _, req := range defs.Tables {
		_, err := m.CreateTable(ctx, req)
		if errors.Is(err, ErrDuplicate) {
			log.Debug("Skipping existing table", "name", req.Name)
			continue
		}
		if err != nil {
			return created, fmt.Errorf("table %q: %w", req.Name, err)
		}
		created++
	}

	log.Info("Loaded table definitions", "path", path, "defined", len(defs.Tables), "created", created)
	return created, nil
}

// PruneHistory deletes rolls older than olderThan and returns how many were
// removed.
func (m *Manager) PruneHistory(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	deleted, err := m.queries.DeleteRollLogBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune roll history: %w", err)
	}
	if deleted > 0 {
		log.Info("Pruned roll history", "deleted", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}

func (m *Manager) loadTable(ctx context.Context, q *db.LoggingQueries, tableID string) (*Table, error) {
	row, err := q.GetTable(ctx, tableID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, tableID)
		}
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	return m.withBuckets(ctx, q, row)
}

func (m *Manager) withBuckets(ctx context.Context, q *db.LoggingQueries, row db.RollTable) (*Table, error) {
	rows, err := q.ListBuckets(ctx, row.TableID)
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	buckets := make([]Bucket, len(rows))
	for i, b := range rows {
		buckets[i] = Bucket{
			Position: int(b.Position),
			Label:    b.Label,
			Low:      b.Low,
			High:     b.High,
		}
	}

	return &Table{
		TableID:     row.TableID,
		Name:        row.Name,
		Description: row.Description.String,
		CreatedAt:   row.CreatedAt,
		Buckets:     buckets,
	}, nil
}

func rollResults(rows []db.RollLog) []RollResult {
	results := make([]RollResult, len(rows))
	for i, row := range rows {
		results[i] = RollResult{
			RollID:   row.RollID,
			Sample:   row.Sample,
			Hit:      row.BucketIndex.Valid,
			Index:    -1,
			Label:    row.Label.String,
			RolledAt: row.RolledAt,
		}
		if row.BucketIndex.Valid {
			results[i].Index = int(row.BucketIndex.Int64)
		}
	}
	return results
}
