package dto

import (
	"time"

	"udin/src/core/usecase"
)

// TimestampLayout renders UTC instants with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// HealthResponse is the body of /api/health and /api/health/detailed.
type HealthResponse struct {
	Status     string                       `json:"status"`
	Message    string                       `json:"message,omitempty"`
	Timestamp  string                       `json:"timestamp"`
	Version    string                       `json:"version,omitempty"`
	Components map[string]ComponentResponse `json:"components,omitempty"`
}

// ComponentResponse reports one dependency.
type ComponentResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// FromHealth converts a use case result.
func FromHealth(s *usecase.HealthStatus) HealthResponse {
	out := HealthResponse{
		Status:    s.Status,
		Timestamp: Timestamp(s.Timestamp),
		Version:   s.Version,
	}
	if len(s.Components) > 0 {
		out.Components = make(map[string]ComponentResponse, len(s.Components))
		for name, c := range s.Components {
			out.Components[name] = ComponentResponse{Status: c.Status, Message: c.Message}
		}
	}
	return out
}

// HealthFailure is returned when the health information cannot be read.
func HealthFailure(at time.Time) HealthResponse {
	return HealthResponse{
		Status:    "error",
		Message:   "Failed to retrieve health information",
		Timestamp: Timestamp(at),
	}
}

// Timestamp formats t in UTC.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// VersionError is the body of failed /api/version requests.
type VersionError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
