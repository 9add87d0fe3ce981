// Package dberrors classifies driver errors from both supported stores
// (modernc SQLite result codes and PostgreSQL SQLSTATE codes).
package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return hasPgCode(err, pgUniqueViolation) ||
		hasSQLiteCode(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY)
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return hasPgCode(err, pgForeignKeyViolation) ||
		hasSQLiteCode(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY)
}

// IsCheckViolation reports whether err is a CHECK constraint violation.
func IsCheckViolation(err error) bool {
	return hasPgCode(err, pgCheckViolation) ||
		hasSQLiteCode(err, sqlite3.SQLITE_CONSTRAINT_CHECK)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func hasSQLiteCode(err error, codes ...int) bool {
	var liteErr *sqlite.Error
	if !errors.As(err, &liteErr) {
		return false
	}
	for _, code := range codes {
		if liteErr.Code() == code {
			return true
		}
	}
	return false
}
