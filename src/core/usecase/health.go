package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"udin/src/core/domain"
	"udin/src/core/ports"
)

// Health statuses reported by HealthService.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusHealthy  = "healthy"
	StatusDown     = "unhealthy"
)

// HealthService builds health reports from the manifest and the database check.
type HealthService struct {
	log      *slog.Logger
	manifest ports.ManifestSource
	db       ports.DatabaseChecker
	now      func() time.Time
}

// NewHealthService creates a new HealthService. db may be nil when the
// process runs without a database.
func NewHealthService(log *slog.Logger, manifest ports.ManifestSource, db ports.DatabaseChecker) *HealthService {
	return &HealthService{
		log:      log,
		manifest: manifest,
		db:       db,
		now:      time.Now,
	}
}

// HealthStatus represents the health of the application.
type HealthStatus struct {
	Status     string
	Timestamp  time.Time
	Version    string
	Components map[string]ComponentHealth
}

// ComponentHealth represents the health of a single component.
type ComponentHealth struct {
	Status  string
	Message string
}

// Now returns the service clock in UTC.
func (s *HealthService) Now() time.Time {
	return s.now().UTC()
}

// Check reads the manifest and reports the running version.
// A read or parse failure, or a missing version, is an error.
func (s *HealthService) Check(ctx context.Context) (*HealthStatus, error) {
	m, err := s.manifest.ReadManifest(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.checkVersion(m.Version); err != nil {
		return nil, err
	}
	return &HealthStatus{
		Status:    StatusOK,
		Timestamp: s.Now(),
		Version:   m.Version,
	}, nil
}

// CheckDetailed extends Check with per-component status.
// The overall status is degraded when any component is unhealthy.
func (s *HealthService) CheckDetailed(ctx context.Context) (*HealthStatus, error) {
	status, err := s.Check(ctx)
	if err != nil {
		return nil, err
	}
	status.Components = make(map[string]ComponentHealth)

	if s.db != nil {
		if s.db.CheckConnection(ctx) {
			status.Components["database"] = ComponentHealth{Status: StatusHealthy}
		} else {
			status.Status = StatusDegraded
			status.Components["database"] = ComponentHealth{
				Status:  StatusDown,
				Message: "database connection failed",
			}
			s.log.Warn("health check degraded", "component", "database")
		}
	}

	return status, nil
}

// checkVersion rejects a manifest without a version. Anything else is
// reported as read; a value that is not semantic version text only logs a
// warning.
func (s *HealthService) checkVersion(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return domain.NewValidationError("version", "manifest has no version")
	}
	if _, err := semver.StrictNewVersion(raw); err != nil {
		s.log.Warn("manifest version is not a semantic version", "version", raw, "error", err)
	}
	return nil
}
