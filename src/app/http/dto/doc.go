// Package dto contains the JSON shapes returned by the HTTP API.
//
// DTOs are separate from use case results so the wire format can stay
// stable while the core changes.
package dto
