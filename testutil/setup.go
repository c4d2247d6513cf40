package testutil

import (
	"testing"

	"github.com/kasuganosora/memorybox/config"
	dbadapter "github.com/kasuganosora/memorybox/db"
	"github.com/kasuganosora/memorybox/db/sqlite"
	"github.com/kasuganosora/memorybox/kv/local"
	"github.com/kasuganosora/memorybox/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// SetupTestDB creates a private in-memory SQLite DB and runs AutoMigrate.
// It requires no external services and is safe to use in parallel tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := dbadapter.Open(config.DatabaseConfig{
		Mode:       dbadapter.ModeSQLite,
		SQLitePath: sqlite.MemoryPath,
	})
	require.NoError(t, err, "SetupTestDB: Open")
	require.NoError(t, model.AutoMigrate(db), "SetupTestDB: AutoMigrate")
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SetupTestSlots creates an unlimited in-memory slot store.
func SetupTestSlots(t *testing.T) *local.LocalStore {
	t.Helper()
	return local.NewStore(local.Config{})
}

// SetupTestLogger returns a logger that writes through t.Log.
func SetupTestLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zaptest.NewLogger(t)
}
