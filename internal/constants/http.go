// Package constants provides centralized constant definitions for env-report.
package constants

// ============================================================================
// HTTP Headers
// ============================================================================

const (
	// Request headers
	HeaderAuthorization = "Authorization"
)

// ============================================================================
// HTTP Response Messages
// ============================================================================

const (
	MsgEndpointDisabled = "Environment endpoint is disabled"
	MsgSourceNotFound   = "Property source not found"
	MsgInvalidToken     = "Invalid token"
	MsgInternalError    = "Internal error building environment report"
)

// ============================================================================
// HTTP Paths
// ============================================================================

const (
	PathEnv     = "/env"
	PathMetrics = "/metrics"
	PathHealth  = "/health"
	PathReady   = "/ready"
)

// ============================================================================
// Health Check
// ============================================================================

const (
	HealthOK = "ok"
)
