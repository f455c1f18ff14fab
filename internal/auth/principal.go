// Package auth resolves the requester identity for management endpoints.
package auth

// Principal identifies the authenticated requester of a report.
// It is carried opaquely through the filter specification so that a
// filter configurer can vary the masking policy per requester.
type Principal struct {
	Name     string
	Provider string
	Claims   map[string]any
}
