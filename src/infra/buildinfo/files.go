// Package buildinfo reads the package manifest and reads or writes the
// build-time version descriptor.
package buildinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"udin/src/core/domain"
	"udin/src/core/ports"
)

var (
	_ ports.ManifestSource  = (*Manifest)(nil)
	_ ports.DescriptorStore = (*Descriptor)(nil)
)

// Manifest reads {name, version} from a JSON manifest on disk.
type Manifest struct {
	path string
}

// NewManifest creates a Manifest reader for path.
func NewManifest(path string) *Manifest {
	return &Manifest{path: path}
}

// ReadManifest reads and decodes the manifest on every call.
func (m *Manifest) ReadManifest(_ context.Context) (*domain.Manifest, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil, domain.NewUnavailableError("manifest "+m.path, err)
	}
	var out domain.Manifest
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, domain.NewUnavailableError("manifest "+m.path, err)
	}
	return &out, nil
}

// Descriptor stores the version descriptor as an indented JSON file.
type Descriptor struct {
	path string
}

// NewDescriptor creates a Descriptor store at path.
func NewDescriptor(path string) *Descriptor {
	return &Descriptor{path: path}
}

// Path returns the descriptor location.
func (d *Descriptor) Path() string {
	return d.path
}

// ReadDescriptor returns the raw file contents.
func (d *Descriptor) ReadDescriptor(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(d.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.NewNotFoundError("version descriptor " + d.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", d.path, err)
	}
	return data, nil
}

// WriteDescriptor writes v, creating the parent directory when needed.
func (d *Descriptor) WriteDescriptor(_ context.Context, v domain.VersionDescriptor) (string, error) {
	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", filepath.Dir(d.path), err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode descriptor: %w", err)
	}
	if err := os.WriteFile(d.path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", d.path, err)
	}
	return d.path, nil
}
