package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"udin/src/core/domain"
	"udin/src/core/ports"
)

// VersionService reads and generates the build-time version descriptor.
type VersionService struct {
	log      *slog.Logger
	manifest ports.ManifestSource
	store    ports.DescriptorStore
	scm      ports.SourceControl
	now      func() time.Time
}

// NewVersionService creates a new VersionService.
func NewVersionService(log *slog.Logger, manifest ports.ManifestSource, store ports.DescriptorStore, scm ports.SourceControl) *VersionService {
	return &VersionService{
		log:      log,
		manifest: manifest,
		store:    store,
		scm:      scm,
		now:      time.Now,
	}
}

// Read returns the descriptor document exactly as stored.
// A missing descriptor yields domain.ErrNotFound; a document that is not
// valid JSON yields domain.ErrInvalidInput.
func (s *VersionService) Read(ctx context.Context) (json.RawMessage, error) {
	raw, err := s.store.ReadDescriptor(ctx)
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, domain.NewValidationError("version.json", "descriptor is not valid JSON")
	}
	return json.RawMessage(raw), nil
}

// Generate writes a fresh descriptor and returns it with the output path.
// Source-control failures are not fatal: branch and commit fall back to
// domain.UnknownRef.
func (s *VersionService) Generate(ctx context.Context) (*domain.VersionDescriptor, string, error) {
	m, err := s.manifest.ReadManifest(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("read manifest: %w", err)
	}

	branch, commit := domain.UnknownRef, domain.UnknownRef
	if s.scm != nil {
		b, c, err := s.scm.Head(ctx)
		if err != nil {
			s.log.Warn("unable to get git information, using default values for branch and commit", "error", err)
		} else {
			branch, commit = b, c
		}
	}

	d := domain.VersionDescriptor{
		Version: m.Version,
		Branch:  branch,
		Commit:  commit,
		BuildAt: s.now().UTC().Truncate(time.Millisecond),
	}

	path, err := s.store.WriteDescriptor(ctx, d)
	if err != nil {
		return nil, "", fmt.Errorf("write descriptor: %w", err)
	}

	s.log.Info("version file generated",
		"path", path,
		"version", d.Version,
		"branch", d.Branch,
		"commit", d.Commit,
		"build_at", d.BuildAt.Format(time.RFC3339Nano),
	)
	return &d, path, nil
}
