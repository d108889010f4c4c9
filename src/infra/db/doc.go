// Package db provides database connection and transaction management.
//
// This package is responsible for:
//   - PostgreSQL connection pool initialization per environment profile
//   - Fail-fast handling of fatal server errors on pooled connections
//   - Query and transaction execution with guaranteed connection release
//   - Per-statement deadlines, query logging and timing (Logged)
//
// Example usage:
//
//	pg, err := db.New(ctx, cfg.Database, log)
//	if err != nil {
//	    return err
//	}
//	q := db.NewLogged(db.NewExecutor(pg.Pool, cfg.Database.QueryTimeout), log, m)
//	defer q.Shutdown()
package db
