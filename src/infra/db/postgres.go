package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"udin/src/infra/config"
)

// FatalHandler is called when the server terminates a connection that was
// idle in the pool (administrator shutdown, terminated backend).
type FatalHandler func(err error)

// Postgres wraps a pgx connection pool.
type Postgres struct {
	Pool *pgxpool.Pool
	log  *slog.Logger
}

// Option customizes pool construction.
type Option func(*options)

type options struct {
	onFatal FatalHandler
}

// WithFatalHandler replaces the default fail-fast handler.
func WithFatalHandler(h FatalHandler) Option {
	return func(o *options) { o.onFatal = h }
}

// ExitOnFatal logs the error and terminates the process.
func ExitOnFatal(log *slog.Logger) FatalHandler {
	return func(err error) {
		log.Error("unexpected error on pooled connection", "error", err)
		os.Exit(1)
	}
}

// New creates the PostgreSQL connection pool for the resolved profile.
// It validates the connection by pinging the database.
func New(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger, opts ...Option) (*Postgres, error) {
	o := options{onFatal: ExitOnFatal(log)}
	for _, opt := range opts {
		opt(&o)
	}

	poolCfg, err := PoolConfig(cfg, o.onFatal)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established",
		"environment", cfg.Environment,
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.Name,
		"max_conns", cfg.MaxConns,
	)

	return &Postgres{
		Pool: pool,
		log:  log,
	}, nil
}

// idlePingAfter is how long a connection must sit idle in the pool before
// it is pinged on acquire.
var idlePingAfter = time.Second

// PoolConfig translates the resolved database settings into a pgxpool
// configuration. onFatal may be nil.
//
// onFatal fires only for a server-initiated termination found on a
// connection that was idle in the pool, detected by the ping the pool runs
// before handing that connection out. Errors raised while connecting or
// while a caller owns the connection are returned to the caller.
func PoolConfig(cfg config.DatabaseConfig, onFatal FatalHandler) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MaxConnIdleTime = cfg.IdleTimeout

	if onFatal != nil {
		poolCfg.ShouldPing = func(ctx context.Context, p pgxpool.ShouldPingParams) bool {
			if p.IdleDuration <= idlePingAfter {
				return false
			}
			err := p.Conn.Ping(ctx)
			if IsIdleTermination(err) {
				onFatal(err)
			}
			// A failed ping leaves the connection closed; the pool's own
			// ping then discards it and dials a fresh one.
			return err != nil
		}
	}
	return poolCfg, nil
}

// IsIdleTermination reports whether err is a FATAL operator-intervention
// error (SQLSTATE class 57P) ending a session: administrator or crash
// shutdown, or a dropped database. 57P03 (server still starting) and 57P05
// (idle session timeout) are routine and excluded.
func IsIdleTermination(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || !strings.EqualFold(pgErr.Severity, "FATAL") {
		return false
	}
	switch pgErr.Code {
	case "57P03", "57P05":
		return false
	}
	return strings.HasPrefix(pgErr.Code, "57P")
}

// Acquire leases a connection for manual use. The caller must call
// Release on the returned connection on every path.
func (p *Postgres) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	return p.Pool.Acquire(ctx)
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
		p.log.Info("database connection closed")
	}
}
