package testutils

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/thcheetah777/engine/internal/db"
	"github.com/thcheetah777/engine/internal/rng"
	"github.com/thcheetah777/engine/internal/table"
)

// TestStore represents a test store with database and table manager
type TestStore struct {
	DB      *sql.DB
	Manager *table.Manager
	Rand    *rng.Rand
}

// CreateTestStore creates a migrated sqlite database in a temporary directory
// and a manager rolling with a fixed seed.
func CreateTestStore(t *testing.T) *TestStore {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "rolls.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		database.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	r := rng.New(1)
	store := &TestStore{
		DB:      database,
		Manager: table.NewManager(database, r),
		Rand:    r,
	}
	t.Cleanup(store.Cleanup)
	return store
}

// Cleanup closes the database. The temporary directory is removed by the
// testing package.
func (ts *TestStore) Cleanup() {
	ts.DB.Close()
}

// CreateTestTable creates a table from label/weight pairs
func (ts *TestStore) CreateTestTable(t *testing.T, name string, labels []string, weights []float64) *table.Table {
	t.Helper()

	specs := make([]table.BucketSpec, len(labels))
	for i, label := range labels {
		specs[i] = table.BucketSpec{Label: label, Weight: weights[i]}
	}

	created, err := ts.Manager.CreateTable(context.Background(), table.CreateTableRequest{
		Name:    name,
		Buckets: specs,
	})
	if err != nil {
		t.Fatalf("Failed to create test table: %v", err)
	}
	return created
}

// CreateGappedTable creates a table whose buckets only cover [0, 50), so
// about half of all rolls miss.
func (ts *TestStore) CreateGappedTable(t *testing.T, name string) *table.Table {
	t.Helper()

	created, err := ts.Manager.CreateTable(context.Background(), table.CreateTableRequest{
		Name: name,
		Buckets: []table.BucketSpec{
			{Label: "low", Range: []float64{0, 25}},
			{Label: "mid", Range: []float64{25, 50}},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create gapped table: %v", err)
	}
	return created
}
