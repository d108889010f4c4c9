package cli

import (
	"context"

	"github.com/spf13/cobra"

	"udin/src/app/server"
	"udin/src/core/usecase"
	"udin/src/infra/buildinfo"
	"udin/src/infra/metrics"
)

// ServeCmd returns the serve command.
func ServeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.serve(cmd.Context())
		},
	}
}

func (e *env) serve(ctx context.Context) error {
	e.log.Info("starting application",
		"port", e.cfg.Server.Port,
		"log_level", e.cfg.Log.Level,
		"environment", e.cfg.Database.Environment,
	)

	m := metrics.New()

	_, q, err := e.database(ctx, m)
	if err != nil {
		return err
	}
	defer q.Shutdown()

	manifest := buildinfo.NewManifest(e.cfg.Build.ManifestPath)
	srv := server.New(e.cfg, e.log, server.Deps{
		Health:  usecase.NewHealthService(e.log, manifest, q),
		Version: usecase.NewVersionService(e.log, manifest, buildinfo.NewDescriptor(e.cfg.Build.VersionFile), nil),
		Metrics: m,
	})

	return srv.Run(ctx)
}
