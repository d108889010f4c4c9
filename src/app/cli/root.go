// Package cli defines the udin command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"udin/src/infra/config"
	"udin/src/infra/db"
	"udin/src/infra/logger"
	"udin/src/infra/metrics"
)

// env is filled by the root command before any subcommand runs.
type env struct {
	cfg *config.Config
	log *slog.Logger
}

// RootCmd returns the udin command. Without a subcommand it serves HTTP.
func RootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "udin",
		Short:         "udin application server and build tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				cfg.Log.Level = level
			}
			e.cfg = cfg
			e.log = logger.New(cfg.Log)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.serve(cmd.Context())
		},
	}

	root.PersistentFlags().String("log-level", "", "Override APP_LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(
		ServeCmd(e),
		VersionCmd(e),
		DBCmd(e),
	)

	return root
}

// database opens the pool and wraps it with the timed, logged executor.
// m may be nil.
func (e *env) database(ctx context.Context, m *metrics.Metrics) (*db.Postgres, *db.Logged, error) {
	dbLog := logger.WithComponent(e.log, "database")
	pg, err := logger.Timed(dbLog, "database connect", func() (*db.Postgres, error) {
		return db.New(ctx, e.cfg.Database, dbLog, db.WithFatalHandler(db.ExitOnFatal(dbLog)))
	})
	if err != nil {
		return nil, nil, err
	}
	if m != nil {
		if err := m.RegisterPool(pg.Pool); err != nil {
			pg.Close()
			return nil, nil, fmt.Errorf("register pool metrics: %w", err)
		}
	}
	q := db.NewLogged(db.NewExecutor(pg.Pool, e.cfg.Database.QueryTimeout), e.log, m)
	return pg, q, nil
}
