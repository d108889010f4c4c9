package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"udin/src/core/usecase"
	"udin/src/infra/buildinfo"
)

// VersionCmd groups the version descriptor commands.
func VersionCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Generate or print the build version descriptor",
	}
	cmd.AddCommand(versionGenerateCmd(e), versionShowCmd(e))
	return cmd
}

func (e *env) versionService(repoDir string) *usecase.VersionService {
	return usecase.NewVersionService(
		e.log,
		buildinfo.NewManifest(e.cfg.Build.ManifestPath),
		buildinfo.NewDescriptor(e.cfg.Build.VersionFile),
		buildinfo.NewGit(repoDir),
	)
}

func versionGenerateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the version descriptor from the manifest and git HEAD",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := cmd.Flags().GetString("repo")
			if err != nil {
				return fmt.Errorf("failed to get repo flag: %w", err)
			}

			d, path, err := e.versionService(dir).Generate(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Version file generated at %s\n", path)
			fmt.Fprintf(out, "Version: %s\n", d.Version)
			fmt.Fprintf(out, "Branch: %s\n", d.Branch)
			fmt.Fprintf(out, "Commit: %s\n", d.Commit)
			fmt.Fprintf(out, "Build at: %s\n", d.BuildAt.Format(time.RFC3339Nano))
			return nil
		},
	}
	cmd.Flags().String("repo", ".", "Directory inside the git repository")
	return cmd
}

func versionShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the version descriptor as served by /api/version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := e.versionService(".").Read(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}
}
