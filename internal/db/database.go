package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"
	"github.com/mindease/mindease-server/internal/config"
	"github.com/mindease/mindease-server/internal/pkg/logger"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// Dialect identifies the SQL flavour spoken by the open store
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Database wraps the shared connection handle together with its dialect.
type Database struct {
	DB      *sqlx.DB
	Dialect Dialect
}

// New opens the store selected by cfg.Database.Driver and verifies the connection.
func New(cfg *config.Config) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.Database.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		return OpenSQLite(ctx, cfg.GetSQLiteDSN())

	case config.DriverPostgres:
		conn, err := sqlx.ConnectContext(ctx, "pgx", cfg.GetPostgresConnectionString())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}

		conn.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		conn.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		conn.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

		return &Database{DB: conn, Dialect: DialectPostgres}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// OpenSQLite opens an SQLite store from a modernc DSN.
//
// The pool is pinned to one connection: SQLite allows a single writer, and an
// in-memory database only exists on the connection that created it.
func OpenSQLite(ctx context.Context, dsn string) (*Database, error) {
	conn, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	return &Database{DB: conn, Dialect: DialectSQLite}, nil
}

// Builder returns a squirrel statement builder using the dialect's placeholders.
func (d *Database) Builder() squirrel.StatementBuilderType {
	if d.Dialect == DialectPostgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// Ping checks that the store is reachable.
func (d *Database) Ping(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}

// Close releases the connection pool
func (d *Database) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx *sqlx.Tx) error

// WithTransaction runs fn inside a transaction, rolling back on error or panic.
func (d *Database) WithTransaction(ctx context.Context, fn TransactionFn) error {
	tx, err := d.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
