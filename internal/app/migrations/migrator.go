package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/mindease/mindease-server/internal/db"
	"github.com/rs/zerolog"
)

//go:embed sql
var migrationFiles embed.FS

// Column is an optional column that older databases may be missing.
type Column struct {
	Table      string
	Name       string
	Definition string
}

// AdditiveColumns are appended to existing tables on boot when absent.
// Entries are only ever added to this list, never removed or retyped.
var AdditiveColumns = []Column{
	{Table: "users", Name: "emergency_contact", Definition: "TEXT"},
	{Table: "users", Name: "institution", Definition: "TEXT"},
	{Table: "bookings", Name: "urgency_level", Definition: "TEXT"},
	{Table: "bookings", Name: "anxiety_level", Definition: "TEXT"},
	{Table: "bookings", Name: "depression_level", Definition: "TEXT"},
	{Table: "bookings", Name: "academic_stress", Definition: "TEXT"},
	{Table: "bookings", Name: "burnout_level", Definition: "TEXT"},
	{Table: "bookings", Name: "sleep_quality", Definition: "TEXT"},
	{Table: "bookings", Name: "social_isolation", Definition: "TEXT"},
	{Table: "bookings", Name: "additional_concerns", Definition: "TEXT"},
}

// Migrator manages database migrations
type Migrator struct {
	db     *db.Database
	sb     squirrel.StatementBuilderType
	logger zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(database *db.Database, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:     database,
		sb:     database.Builder(),
		logger: logger,
	}
}

// Migrate applies the embedded versioned files for the store's dialect and
// then adds any missing optional columns. Safe to run on every boot.
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	dir := path.Join("sql", string(m.db.Dialect))
	if err := m.MigrateFromFS(ctx, migrationFiles, dir); err != nil {
		return err
	}

	return m.EnsureColumns(ctx, AdditiveColumns)
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	_, err := m.db.DB.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// MigrateFromFS applies every .sql file in dir, in lexical order, skipping
// versions already recorded in schema_migrations.
func (m *Migrator) MigrateFromFS(ctx context.Context, fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read migration directory: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	for _, name := range sqlFiles {
		if err := m.migrateFile(ctx, fsys, path.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

func (m *Migrator) migrateFile(ctx context.Context, fsys fs.FS, filePath string) error {
	filename := path.Base(filePath)
	// "001_init.sql" => "001"
	version := strings.Split(filename, "_")[0]

	applied, err := m.isMigrationApplied(ctx, version)
	if err != nil {
		return err
	}
	if applied {
		m.logger.Debug().Str("migration", filename).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", filename, err)
	}

	err = m.db.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, stmt := range splitStatements(string(content)) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("error executing migration %s: %w", filename, err)
			}
		}
		return m.recordMigration(ctx, tx, version)
	})
	if err != nil {
		return err
	}

	m.logger.Info().Str("migration", filename).Msg("Migration applied")
	return nil
}

func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	query, args, err := m.sb.Select("COUNT(*)").
		From("schema_migrations").
		Where(squirrel.Eq{"version": version}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build migration status query: %w", err)
	}

	var count int
	if err := m.db.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

func (m *Migrator) recordMigration(ctx context.Context, tx *sqlx.Tx, version string) error {
	query, args, err := m.sb.Insert("schema_migrations").
		Columns("version", "applied_at").
		Values(version, time.Now().UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build migration record: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return nil
}

// EnsureColumns adds each listed column whose table lacks it. Existing data
// is never touched.
func (m *Migrator) EnsureColumns(ctx context.Context, columns []Column) error {
	return m.db.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, col := range columns {
			exists, err := m.columnExists(ctx, tx, col.Table, col.Name)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", col.Table, col.Name, col.Definition)
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to add column %s.%s: %w", col.Table, col.Name, err)
			}
			m.logger.Info().Str("table", col.Table).Str("column", col.Name).Msg("Added missing column")
		}
		return nil
	})
}

func (m *Migrator) columnExists(ctx context.Context, tx *sqlx.Tx, table, column string) (bool, error) {
	var query string
	switch m.db.Dialect {
	case db.DialectPostgres:
		query = `SELECT COUNT(*) FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = ? AND column_name = ?`
	default:
		query = `SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`
	}

	var count int
	if err := tx.GetContext(ctx, &count, tx.Rebind(query), table, column); err != nil {
		return false, fmt.Errorf("failed to inspect columns of %s: %w", table, err)
	}
	return count > 0, nil
}

// splitStatements breaks a migration file into individual statements.
// Migration files must not contain semicolons inside literals.
func splitStatements(content string) []string {
	var statements []string
	for _, part := range strings.Split(content, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
