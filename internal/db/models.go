package db

import (
	"database/sql"
	"time"
)

type RollTable struct {
	TableID     string
	Name        string
	Description sql.NullString
	CreatedAt   time.Time
}

type RollBucket struct {
	TableID  string
	Position int64
	Label    string
	Low      float64
	High     float64
}

type RollLog struct {
	RollID      string
	TableID     string
	Sample      float64
	BucketIndex sql.NullInt64
	Label       sql.NullString
	RolledAt    time.Time
}
