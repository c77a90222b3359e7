package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "./rolls.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Structured)
	assert.Equal(t, "", cfg.Rolls.TablesPath)
	assert.Equal(t, uint64(0), cfg.Rolls.Seed)
	assert.Equal(t, 100, cfg.Rolls.MaxPerRequest)
	assert.Equal(t, time.Hour, cfg.Rolls.PruneInterval)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("READ_TIMEOUT", "3s")
	t.Setenv("DB_PATH", "/tmp/x.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_STRUCTURED", "false")
	t.Setenv("TABLES_PATH", "tables.yaml")
	t.Setenv("RNG_SEED", "42")
	t.Setenv("MAX_ROLLS_PER_REQUEST", "5")
	t.Setenv("ROLL_HISTORY_RETENTION", "2h")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "/tmp/x.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Structured)
	assert.Equal(t, "tables.yaml", cfg.Rolls.TablesPath)
	assert.Equal(t, uint64(42), cfg.Rolls.Seed)
	assert.Equal(t, 5, cfg.Rolls.MaxPerRequest)
	assert.Equal(t, 2*time.Hour, cfg.Rolls.HistoryRetention)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("RNG_SEED", "-1")
	t.Setenv("IDLE_TIMEOUT", "soon")
	t.Setenv("LOG_STRUCTURED", "maybe")

	cfg := Load()

	assert.Equal(t, 1, cfg.Database.MaxOpenConns)
	assert.Equal(t, uint64(0), cfg.Rolls.Seed)
	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
	assert.True(t, cfg.Logging.Structured)
}
