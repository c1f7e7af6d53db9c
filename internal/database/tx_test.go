package database_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/toolrent/internal/database"
)

func TestLockKey(t *testing.T) {
	assert.Equal(t, database.LockKey("group", "a"), database.LockKey("group", "a"))
	assert.NotEqual(t, database.LockKey("group", "a"), database.LockKey("group", "b"))
	assert.NotEqual(t, database.LockKey("ab", "c"), database.LockKey("a", "bc"))
}

func TestSQLTransactor_BeginTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	key := database.LockKey("group", "1")

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(key).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(key).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	txr := database.NewTransactor(db)

	ctx, tx, err := txr.BeginTx(context.Background(), key)
	require.NoError(t, err)

	// Nested calls reuse the outer transaction and commit nothing themselves.
	innerCtx, inner, err := txr.BeginTx(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, ctx, innerCtx)
	require.NoError(t, inner.Commit())

	assert.NotEqual(t, database.Querier(db), database.Conn(ctx, db))
	assert.Equal(t, database.Querier(db), database.Conn(context.Background(), db))

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLTransactor_LockFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, _, err = database.NewTransactor(db).BeginTx(context.Background(), 42)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
