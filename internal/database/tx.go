package database

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
)

type Tx interface {
	Commit() error
	Rollback() error
}

//go:generate mockgen -source=tx.go -destination=transactor_mock.go -package=database
type Transactor interface {
	// BeginTx starts a unit of work and takes the advisory lock for lockKey.
	// The returned context carries the transaction; stores pick it up through Conn.
	// When ctx already carries one, the lock is taken inside it and the
	// returned Tx is a no-op so only the outermost caller commits.
	BeginTx(ctx context.Context, lockKey int64) (context.Context, Tx, error)
}

type txKey struct{}

type SQLTransactor struct {
	db *sql.DB
}

func NewTransactor(db *sql.DB) *SQLTransactor {
	return &SQLTransactor{db: db}
}

func (t *SQLTransactor) BeginTx(ctx context.Context, lockKey int64) (context.Context, Tx, error) {
	if outer, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		if err := advisoryLock(ctx, outer, lockKey); err != nil {
			return nil, nil, err
		}

		return ctx, nopTx{}, nil
	}

	dbTx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("beginning transaction: %w", err)
	}

	if err := advisoryLock(ctx, dbTx, lockKey); err != nil {
		dbTx.Rollback()
		return nil, nil, err
	}

	return context.WithValue(ctx, txKey{}, dbTx), dbTx, nil
}

func advisoryLock(ctx context.Context, tx *sql.Tx, key int64) error {
	if key == 0 {
		return nil
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", key); err != nil {
		return fmt.Errorf("acquiring advisory lock: %w", err)
	}

	return nil
}

type nopTx struct{}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

// LockKey hashes parts into an advisory lock key.
func LockKey(parts ...string) int64 {
	h := fnv.New64a()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}

	return int64(h.Sum64())
}
