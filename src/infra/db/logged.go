package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/jackc/pgx/v5"

	"udin/src/infra/logger"
	"udin/src/infra/metrics"
)

// StatementError marks a failure that Logged has already reported.
// Upper layers use IsReported to avoid logging the same failure twice.
type StatementError struct {
	Op  string
	Err error
}

func (e *StatementError) Error() string { return e.Err.Error() }

func (e *StatementError) Unwrap() error { return e.Err }

// IsReported reports whether err was already logged by Logged.
func IsReported(err error) bool {
	var se *StatementError
	return errors.As(err, &se)
}

// Logged decorates a Querier with statement logging, timing and metrics.
// It never changes outcomes.
type Logged struct {
	next    Querier
	log     *slog.Logger
	metrics *metrics.Metrics
}

var _ Querier = (*Logged)(nil)

// NewLogged wraps next. m may be nil.
func NewLogged(next Querier, log *slog.Logger, m *metrics.Metrics) *Logged {
	return &Logged{
		next:    next,
		log:     logger.WithComponent(log, "database"),
		metrics: m,
	}
}

func (l *Logged) before(sql string, args []any) time.Time {
	l.log.Debug("executing query", "sql", sql)
	if len(args) > 0 {
		l.log.Debug("query parameters", "params", args)
	}
	return time.Now()
}

func (l *Logged) after(op string, start time.Time, rows int64, err error) error {
	elapsed := time.Since(start)
	l.metrics.ObserveQuery(op, err, elapsed)
	if err != nil {
		if IsReported(err) {
			return err
		}
		l.log.Error("query error", "op", op, "duration_ms", elapsed.Milliseconds(), "error", err)
		return &StatementError{Op: op, Err: err}
	}
	l.log.Debug(fmt.Sprintf("query completed in %dms, returned %d rows", elapsed.Milliseconds(), rows),
		"op", op,
	)
	return nil
}

func (l *Logged) Select(ctx context.Context, dst any, sql string, args ...any) error {
	start := l.before(sql, args)
	err := l.next.Select(ctx, dst, sql, args...)
	return l.after("select", start, sliceLen(dst), err)
}

func (l *Logged) Get(ctx context.Context, dst any, sql string, args ...any) error {
	start := l.before(sql, args)
	err := l.next.Get(ctx, dst, sql, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		// Absence is a result, not a failure.
		l.metrics.ObserveQuery("get", nil, time.Since(start))
		l.log.Debug("query returned no rows", "op", "get")
		return err
	}
	return l.after("get", start, 1, err)
}

func (l *Logged) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	start := l.before(sql, args)
	n, err := l.next.Exec(ctx, sql, args...)
	return n, l.after("exec", start, n, err)
}

func (l *Logged) Ping(ctx context.Context) error {
	return l.next.Ping(ctx)
}

// Transaction logs the unit of work as a whole; statements issued through
// the tx handed to fn are logged individually as well.
func (l *Logged) Transaction(ctx context.Context, fn TxFunc) error {
	l.log.Debug("starting transaction")
	start := time.Now()

	err := l.next.Transaction(ctx, func(ctx context.Context, tx Querier) error {
		return fn(ctx, &Logged{next: tx, log: l.log, metrics: l.metrics})
	})

	elapsed := time.Since(start)
	l.metrics.ObserveQuery("transaction", err, elapsed)
	if err != nil {
		if IsReported(err) {
			l.log.Debug("transaction rolled back", "duration_ms", elapsed.Milliseconds())
			return err
		}
		l.log.Error("transaction error", "duration_ms", elapsed.Milliseconds(), "error", err)
		return &StatementError{Op: "transaction", Err: err}
	}
	l.log.Debug(fmt.Sprintf("transaction completed in %dms", elapsed.Milliseconds()))
	return nil
}

// CheckConnection checks the database with SELECT 1.
func (l *Logged) CheckConnection(ctx context.Context) bool {
	if err := l.next.Ping(ctx); err != nil {
		l.log.Error("connection check failed", "error", err)
		return false
	}
	return true
}

// EnsureTable creates name with the given column definitions unless it
// already exists. name is quoted as an identifier.
func (l *Logged) EnsureTable(ctx context.Context, name, schema string) error {
	l.log.Info("ensuring table exists", "table", name)
	sql := "CREATE TABLE IF NOT EXISTS " + pgx.Identifier{name}.Sanitize() + " (\n" + schema + "\n)"
	if _, err := l.Exec(ctx, sql); err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}
	l.log.Info("table is ready", "table", name)
	return nil
}

// Shutdown drains and closes the pool.
func (l *Logged) Shutdown() {
	l.log.Info("closing all database connections")
	l.next.Close()
	l.log.Info("all database connections closed")
}

func (l *Logged) Close() {
	l.Shutdown()
}

func sliceLen(dst any) int64 {
	v := reflect.ValueOf(dst)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return 0
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Slice {
		return int64(v.Len())
	}
	return 0
}
