// Package testutil provides in-memory stores and configuration for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/mindease/mindease-server/internal/app/migrations"
	"github.com/mindease/mindease-server/internal/config"
	"github.com/mindease/mindease-server/internal/db"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MemoryDSN opens a private in-memory SQLite database with foreign keys on.
const MemoryDSN = "file::memory:?_pragma=foreign_keys(1)"

// OpenMemoryDB returns an empty in-memory store closed at test cleanup.
func OpenMemoryDB(t *testing.T) *db.Database {
	t.Helper()

	database, err := db.OpenSQLite(context.Background(), MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestDB returns a migrated in-memory store.
func NewTestDB(t *testing.T) *db.Database {
	t.Helper()

	database := OpenMemoryDB(t)
	migrator := migrations.NewMigrator(database, zerolog.Nop())
	require.NoError(t, migrator.Migrate(context.Background()))
	return database
}

// TestConfig returns defaults tuned for fast tests.
func TestConfig() *config.Config {
	cfg := config.Default()
	cfg.Auth.BcryptCost = bcrypt.MinCost
	cfg.JWT.Secret = "test-secret"
	cfg.Server.Mode = "test"
	cfg.Logging.Level = "error"
	return cfg
}
