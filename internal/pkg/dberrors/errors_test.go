package dberrors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mindease/mindease-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	foreignKey := &pgconn.PgError{Code: "23503"}
	check := &pgconn.PgError{Code: "23514"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.True(t, IsForeignKeyViolation(foreignKey))
	assert.True(t, IsCheckViolation(check))
	assert.False(t, IsUniqueViolation(check))
}

func TestSQLiteCodes(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := database.DB.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, user_type) VALUES ('a@x.com', 'h', 'student')`)
	require.NoError(t, err)

	_, err = database.DB.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, user_type) VALUES ('a@x.com', 'h', 'student')`)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))

	_, err = database.DB.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, user_type) VALUES ('b@x.com', 'h', 'superuser')`)
	require.Error(t, err)
	assert.True(t, IsCheckViolation(err))

	_, err = database.DB.ExecContext(ctx,
		`INSERT INTO bookings (student_id, counselor_id, preferred_date, preferred_time, session_type, reason)
		 VALUES (999, 998, '2025-09-26', '10:00', 'individual', 'stress')`)
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
	assert.False(t, IsUniqueViolation(err))
}

func TestUnrelatedErrors(t *testing.T) {
	err := errors.New("connection refused")

	assert.False(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))
	assert.False(t, IsCheckViolation(err))
	assert.False(t, IsUniqueViolation(nil))
}
