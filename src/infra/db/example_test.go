package db_test

import (
	"context"

	"udin/src/infra/config"
	"udin/src/infra/db"
	"udin/src/infra/logger"
)

// Compiled but not run: it needs a reachable server.
func Example() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		return
	}
	log := logger.New(cfg.Log)

	pg, err := db.New(ctx, cfg.Database, log)
	if err != nil {
		return
	}
	defer pg.Close()

	q := db.NewLogged(db.NewExecutor(pg.Pool, cfg.Database.QueryTimeout), log, nil)
	defer q.Shutdown()

	var one int
	_ = q.Get(ctx, &one, "SELECT 1")
}
