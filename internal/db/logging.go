package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/charmbracelet/log"
)

// LoggingQueries wraps Queries to add debug logging
type LoggingQueries struct {
	*Queries
}

// NewLoggingQueries creates a new LoggingQueries instance
func NewLoggingQueries(db DBTX) *LoggingQueries {
	return &LoggingQueries{
		Queries: New(db),
	}
}

// WithTx creates a new LoggingQueries with a transaction
func (lq *LoggingQueries) WithTx(tx *sql.Tx) *LoggingQueries {
	return &LoggingQueries{
		Queries: lq.Queries.WithTx(tx),
	}
}

// Helper function to log query execution
func (lq *LoggingQueries) logQuery(queryName string, start time.Time, err error, args ...interface{}) {
	duration := time.Since(start)

	if err != nil {
		log.Debug("Database query failed",
			"query", queryName,
			"duration", duration,
			"error", err,
			"args", args,
		)
	} else {
		log.Debug("Database query executed",
			"query", queryName,
			"duration", duration,
			"args", args,
		)
	}
}

// CreateTable with logging
func (lq *LoggingQueries) CreateTable(ctx context.Context, arg CreateTableParams) error {
	start := time.Now()
	log.Debug("Executing CreateTable", "table_id", arg.TableID, "name", arg.Name)

	err := lq.Queries.CreateTable(ctx, arg)
	lq.logQuery("CreateTable", start, err, arg)
	return err
}

// CreateBucket with logging
func (lq *LoggingQueries) CreateBucket(ctx context.Context, arg CreateBucketParams) error {
	start := time.Now()
	log.Debug("Executing CreateBucket",
		"table_id", arg.TableID,
		"position", arg.Position,
		"label", arg.Label,
		"low", arg.Low,
		"high", arg.High,
	)

	err := lq.Queries.CreateBucket(ctx, arg)
	lq.logQuery("CreateBucket", start, err, arg)
	return err
}

// GetTable with logging
func (lq *LoggingQueries) GetTable(ctx context.Context, tableID string) (RollTable, error) {
	start := time.Now()
	log.Debug("Executing GetTable", "table_id", tableID)

	result, err := lq.Queries.GetTable(ctx, tableID)
	lq.logQuery("GetTable", start, err, tableID)

	if err == nil {
		log.Debug("GetTable result", "table_id", result.TableID, "name", result.Name)
	}

	return result, err
}

// GetTableByName with logging
func (lq *LoggingQueries) GetTableByName(ctx context.Context, name string) (RollTable, error) {
	start := time.Now()
	log.Debug("Executing GetTableByName", "name", name)

	result, err := lq.Queries.GetTableByName(ctx, name)
	lq.logQuery("GetTableByName", start, err, name)

	return result, err
}

// ListTables with logging
func (lq *LoggingQueries) ListTables(ctx context.Context) ([]RollTable, error) {
	start := time.Now()
	log.Debug("Executing ListTables")

	result, err := lq.Queries.ListTables(ctx)
	lq.logQuery("ListTables", start, err)

	if err == nil {
		log.Debug("ListTables result", "table_count", len(result))
	}

	return result, err
}

// ListBuckets with logging
func (lq *LoggingQueries) ListBuckets(ctx context.Context, tableID string) ([]RollBucket, error) {
	start := time.Now()
	log.Debug("Executing ListBuckets", "table_id", tableID)

	result, err := lq.Queries.ListBuckets(ctx, tableID)
	lq.logQuery("ListBuckets", start, err, tableID)

	if err == nil {
		log.Debug("ListBuckets result", "bucket_count", len(result), "table_id", tableID)
	}

	return result, err
}

// DeleteTable with logging
func (lq *LoggingQueries) DeleteTable(ctx context.Context, tableID string) (int64, error) {
	start := time.Now()
	log.Debug("Executing DeleteTable", "table_id", tableID)

	result, err := lq.Queries.DeleteTable(ctx, tableID)
	lq.logQuery("DeleteTable", start, err, tableID)

	return result, err
}

// CreateRollLog with logging
func (lq *LoggingQueries) CreateRollLog(ctx context.Context, arg CreateRollLogParams) error {
	start := time.Now()
	log.Debug("Executing CreateRollLog",
		"roll_id", arg.RollID,
		"table_id", arg.TableID,
		"sample", arg.Sample,
		"bucket_index", arg.BucketIndex.Int64,
		"hit", arg.BucketIndex.Valid,
	)

	err := lq.Queries.CreateRollLog(ctx, arg)
	lq.logQuery("CreateRollLog", start, err, arg)
	return err
}

// ListRollLog with logging
func (lq *LoggingQueries) ListRollLog(ctx context.Context, arg ListRollLogParams) ([]RollLog, error) {
	start := time.Now()
	log.Debug("Executing ListRollLog", "table_id", arg.TableID, "limit", arg.Limit)

	result, err := lq.Queries.ListRollLog(ctx, arg)
	lq.logQuery("ListRollLog", start, err, arg)

	if err == nil {
		log.Debug("ListRollLog result", "roll_count", len(result), "table_id", arg.TableID)
	}

	return result, err
}

// ListRecentRolls with logging
func (lq *LoggingQueries) ListRecentRolls(ctx context.Context, limit int64) ([]RollLog, error) {
	start := time.Now()
	log.Debug("Executing ListRecentRolls", "limit", limit)

	result, err := lq.Queries.ListRecentRolls(ctx, limit)
	lq.logQuery("ListRecentRolls", start, err, limit)

	return result, err
}

// CountRollsByBucket with logging
func (lq *LoggingQueries) CountRollsByBucket(ctx context.Context, tableID string) ([]CountRollsByBucketRow, error) {
	start := time.Now()
	log.Debug("Executing CountRollsByBucket", "table_id", tableID)

	result, err := lq.Queries.CountRollsByBucket(ctx, tableID)
	lq.logQuery("CountRollsByBucket", start, err, tableID)

	return result, err
}

// CountTables with logging
func (lq *LoggingQueries) CountTables(ctx context.Context) (int64, error) {
	start := time.Now()
	result, err := lq.Queries.CountTables(ctx)
	lq.logQuery("CountTables", start, err)
	return result, err
}

// CountRolls with logging
func (lq *LoggingQueries) CountRolls(ctx context.Context) (int64, error) {
	start := time.Now()
	result, err := lq.Queries.CountRolls(ctx)
	lq.logQuery("CountRolls", start, err)
	return result, err
}

// DeleteRollLogBefore with logging
func (lq *LoggingQueries) DeleteRollLogBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	start := time.Now()
	log.Debug("Executing DeleteRollLogBefore", "cutoff", cutoff)

	result, err := lq.Queries.DeleteRollLogBefore(ctx, cutoff)
	lq.logQuery("DeleteRollLogBefore", start, err, cutoff)

	if err == nil {
		log.Debug("DeleteRollLogBefore result", "deleted", result)
	}

	return result, err
}
