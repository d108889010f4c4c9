// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"udin/src/core/domain"
)

// DatabaseChecker reports whether the database answers a trivial query.
type DatabaseChecker interface {
	CheckConnection(ctx context.Context) bool
}

// ManifestSource reads the package manifest.
type ManifestSource interface {
	ReadManifest(ctx context.Context) (*domain.Manifest, error)
}

// DescriptorStore reads and writes the build-time version descriptor.
//
// ReadDescriptor returns the raw JSON document so it can be served verbatim.
// A missing descriptor is reported as domain.ErrNotFound.
type DescriptorStore interface {
	ReadDescriptor(ctx context.Context) ([]byte, error)
	WriteDescriptor(ctx context.Context, d domain.VersionDescriptor) (string, error)
}

// SourceControl resolves the current branch and commit.
type SourceControl interface {
	Head(ctx context.Context) (branch, commit string, err error)
}
