package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNoRows is returned by Get when the statement matched nothing.
var ErrNoRows = pgx.ErrNoRows

// DBTX is the minimal surface the executor needs. *pgxpool.Pool, pgx.Tx and
// pgxmock pools all satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxFunc is a unit of work run inside a transaction. tx is bound to the
// transaction's connection; statements issued through it commit or roll
// back together.
type TxFunc func(ctx context.Context, tx Querier) error

// Querier is the statement surface shared by Executor and Logged.
type Querier interface {
	// Select scans every row into dst, a pointer to a slice.
	Select(ctx context.Context, dst any, sql string, args ...any) error
	// Get scans exactly one row into dst. ErrNoRows when nothing matches.
	Get(ctx context.Context, dst any, sql string, args ...any) error
	// Exec runs a statement and reports the affected row count.
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	// Transaction runs fn between BEGIN and COMMIT, rolling back on error.
	Transaction(ctx context.Context, fn TxFunc) error
	// Ping runs SELECT 1.
	Ping(ctx context.Context) error
	// Close releases the underlying pool. No-op inside a transaction.
	Close()
}

// Executor runs statements against a DBTX. Pooled connections are leased per
// call and released when the call returns, whatever the outcome.
type Executor struct {
	db      DBTX
	timeout time.Duration
	inTx    bool
}

var _ Querier = (*Executor)(nil)

// NewExecutor creates an executor. A positive timeout bounds every statement;
// expiry cancels the statement on the server.
func NewExecutor(db DBTX, timeout time.Duration) *Executor {
	return &Executor{db: db, timeout: timeout}
}

func (e *Executor) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return ctx, func() {}
	}
	if dl, ok := ctx.Deadline(); ok && time.Until(dl) <= e.timeout {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.timeout)
}

func (e *Executor) Select(ctx context.Context, dst any, sql string, args ...any) error {
	ctx, cancel := e.bound(ctx)
	defer cancel()
	// pgxscan closes the rows, which returns the connection to the pool.
	return pgxscan.Select(ctx, e.db, dst, sql, args...)
}

func (e *Executor) Get(ctx context.Context, dst any, sql string, args ...any) error {
	ctx, cancel := e.bound(ctx)
	defer cancel()
	return pgxscan.Get(ctx, e.db, dst, sql, args...)
}

func (e *Executor) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	ctx, cancel := e.bound(ctx)
	defer cancel()
	tag, err := e.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (e *Executor) Ping(ctx context.Context) error {
	ctx, cancel := e.bound(ctx)
	defer cancel()
	var one int
	return e.db.QueryRow(ctx, "SELECT 1").Scan(&one)
}

// Transaction leases one connection for the whole unit of work. The
// connection is released after COMMIT or ROLLBACK; a panic in fn rolls back
// and is re-raised.
func (e *Executor) Transaction(ctx context.Context, fn TxFunc) error {
	tx, err := e.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(ctx, &Executor{db: tx, timeout: e.timeout, inTx: true}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (e *Executor) Close() {
	if e.inTx {
		return
	}
	if c, ok := e.db.(interface{ Close() }); ok {
		c.Close()
	}
}
