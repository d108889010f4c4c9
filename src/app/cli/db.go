package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errConnection is returned by `db check` when the connection check fails.
var errConnection = errors.New("database connection check failed")

// DBCmd groups database maintenance commands.
func DBCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database commands",
	}
	cmd.AddCommand(dbCheckCmd(e))
	return cmd
}

func dbCheckCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the database is reachable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			pg, q, err := e.database(ctx, nil)
			if err != nil {
				return err
			}
			defer q.Shutdown()

			if !q.CheckConnection(ctx) {
				return errConnection
			}

			conn, err := pg.Acquire(ctx)
			if err != nil {
				return fmt.Errorf("acquire connection: %w", err)
			}
			defer conn.Release()

			fmt.Fprintf(cmd.OutOrStdout(), "database %s@%s:%d/%s reachable (server %s)\n",
				e.cfg.Database.User,
				e.cfg.Database.Host,
				e.cfg.Database.Port,
				e.cfg.Database.Name,
				conn.Conn().PgConn().ParameterStatus("server_version"),
			)
			return nil
		},
	}
}
