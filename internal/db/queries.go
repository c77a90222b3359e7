package db

import (
	"context"
	"database/sql"
	"time"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{
		db: tx,
	}
}

const createTable = `
INSERT INTO roll_tables (table_id, name, description, created_at)
VALUES (?, ?, ?, ?)
`

type CreateTableParams struct {
	TableID     string
	Name        string
	Description sql.NullString
	CreatedAt   time.Time
}

func (q *Queries) CreateTable(ctx context.Context, arg CreateTableParams) error {
	_, err := q.db.ExecContext(ctx, createTable, arg.TableID, arg.Name, arg.Description, arg.CreatedAt)
	return err
}

const createBucket = `
INSERT INTO roll_buckets (table_id, position, label, low, high)
VALUES (?, ?, ?, ?, ?)
`

type CreateBucketParams struct {
	TableID  string
	Position int64
	Label    string
	Low      float64
	High     float64
}

func (q *Queries) CreateBucket(ctx context.Context, arg CreateBucketParams) error {
	_, err := q.db.ExecContext(ctx, createBucket, arg.TableID, arg.Position, arg.Label, arg.Low, arg.High)
	return err
}

const getTable = `
SELECT table_id, name, description, created_at
FROM roll_tables
WHERE table_id = ?
`

func (q *Queries) GetTable(ctx context.Context, tableID string) (RollTable, error) {
	row := q.db.QueryRowContext(ctx, getTable, tableID)
	var i RollTable
	err := row.Scan(&i.TableID, &i.Name, &i.Description, &i.CreatedAt)
	return i, err
}

const getTableByName = `
SELECT table_id, name, description, created_at
FROM roll_tables
WHERE name = ?
`

func (q *Queries) GetTableByName(ctx context.Context, name string) (RollTable, error) {
	row := q.db.QueryRowContext(ctx, getTableByName, name)
	var i RollTable
	err := row.Scan(&i.TableID, &i.Name, &i.Description, &i.CreatedAt)
	return i, err
}

const listTables = `
SELECT table_id, name, description, created_at
FROM roll_tables
ORDER BY name
`

func (q *Queries) ListTables(ctx context.Context) ([]RollTable, error) {
	rows, err := q.db.QueryContext(ctx, listTables)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RollTable
	for rows.Next() {
		var i RollTable
		if err := rows.Scan(&i.TableID, &i.Name, &i.Description, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listBuckets = `
SELECT table_id, position, label, low, high
FROM roll_buckets
WHERE table_id = ?
ORDER BY position
`

func (q *Queries) ListBuckets(ctx context.Context, tableID string) ([]RollBucket, error) {
	rows, err := q.db.QueryContext(ctx, listBuckets, tableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RollBucket
	for rows.Next() {
		var i RollBucket
		if err := rows.Scan(&i.TableID, &i.Position, &i.Label, &i.Low, &i.High); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteTable = `
DELETE FROM roll_tables
WHERE table_id = ?
`

func (q *Queries) DeleteTable(ctx context.Context, tableID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteTable, tableID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const createRollLog = `
INSERT INTO roll_log (roll_id, table_id, sample, bucket_index, label, rolled_at)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateRollLogParams struct {
	RollID      string
	TableID     string
	Sample      float64
	BucketIndex sql.NullInt64
	Label       sql.NullString
	RolledAt    time.Time
}

func (q *Queries) CreateRollLog(ctx context.Context, arg CreateRollLogParams) error {
	_, err := q.db.ExecContext(ctx, createRollLog,
		arg.RollID,
		arg.TableID,
		arg.Sample,
		arg.BucketIndex,
		arg.Label,
		arg.RolledAt,
	)
	return err
}

const listRollLog = `
SELECT roll_id, table_id, sample, bucket_index, label, rolled_at
FROM roll_log
WHERE table_id = ?
ORDER BY rolled_at DESC, rowid DESC
LIMIT ?
`

type ListRollLogParams struct {
	TableID string
	Limit   int64
}

func (q *Queries) ListRollLog(ctx context.Context, arg ListRollLogParams) ([]RollLog, error) {
	rows, err := q.db.QueryContext(ctx, listRollLog, arg.TableID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return scanRollLogs(rows)
}

const listRecentRolls = `
SELECT roll_id, table_id, sample, bucket_index, label, rolled_at
FROM roll_log
ORDER BY rolled_at DESC, rowid DESC
LIMIT ?
`

func (q *Queries) ListRecentRolls(ctx context.Context, limit int64) ([]RollLog, error) {
	rows, err := q.db.QueryContext(ctx, listRecentRolls, limit)
	if err != nil {
		return nil, err
	}
	return scanRollLogs(rows)
}

func scanRollLogs(rows *sql.Rows) ([]RollLog, error) {
	defer rows.Close()
	var items []RollLog
	for rows.Next() {
		var i RollLog
		if err := rows.Scan(
			&i.RollID,
			&i.TableID,
			&i.Sample,
			&i.BucketIndex,
			&i.Label,
			&i.RolledAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countRollsByBucket = `
SELECT bucket_index, COUNT(*) AS count
FROM roll_log
WHERE table_id = ?
GROUP BY bucket_index
ORDER BY bucket_index
`

type CountRollsByBucketRow struct {
	BucketIndex sql.NullInt64
	Count       int64
}

func (q *Queries) CountRollsByBucket(ctx context.Context, tableID string) ([]CountRollsByBucketRow, error) {
	rows, err := q.db.QueryContext(ctx, countRollsByBucket, tableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CountRollsByBucketRow
	for rows.Next() {
		var i CountRollsByBucketRow
		if err := rows.Scan(&i.BucketIndex, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countTables = `
SELECT COUNT(*) FROM roll_tables
`

func (q *Queries) CountTables(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countTables)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countRolls = `
SELECT COUNT(*) FROM roll_log
`

func (q *Queries) CountRolls(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countRolls)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteRollLogBefore = `
DELETE FROM roll_log
WHERE rolled_at < ?
`

func (q *Queries) DeleteRollLogBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteRollLogBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
