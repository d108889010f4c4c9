package domain

import "time"

// Manifest is the subset of the package manifest the service reads.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// VersionDescriptor is written once at build time and read-only afterwards.
type VersionDescriptor struct {
	Version string    `json:"version"`
	Branch  string    `json:"branch"`
	Commit  string    `json:"commit"`
	BuildAt time.Time `json:"build_at"`
}

// UnknownRef is recorded when source-control information is unavailable.
const UnknownRef = "unknown"
