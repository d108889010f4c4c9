// Package domain contains the value objects and errors shared by the use
// cases and adapters.
//
// This package defines:
//   - Manifest: the package metadata the health check reports
//   - VersionDescriptor: the build-time record of version, branch and commit
//   - Domain errors: not found, invalid input, conflict, unavailable
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, HTTP, files)
package domain
