package constants

// ============================================================================
// Validation Error Messages
// ============================================================================

const (
	ErrRegistryRequired  = "registry is required"
	ErrSecretKeyRequired = "secretKey is required"
	ErrAlgorithmRequired = "algorithm is required"
)

// ============================================================================
// JWT Error Messages
// ============================================================================

const (
	ErrInvalidToken       = "invalid token: %w"
	ErrInvalidTokenClaims = "invalid token claims"
	ErrMissingClaimSub    = "missing required claim: sub"
	ErrInvalidIssuer      = "invalid issuer: %v"
	ErrInvalidAudience    = "invalid audience: %v"
)

// ============================================================================
// Filter Error Messages
// ============================================================================

const (
	ErrInvalidMaskPattern = "invalid mask pattern %q: %v"
)

// ============================================================================
// Redis Error Messages
// ============================================================================

const (
	ErrPoolOptionsRequired = "pool options is required"
	ErrRedisURLParse       = "failed to parse redis url: %w"
	ErrRedisConnect        = "failed to connect to redis: %w"
	ErrRedisClientNil      = "redis client is nil"
	ErrStoreNil            = "store is nil"
	ErrRedisOperation      = "redis error: %w"
)

// ============================================================================
// Property Source Error Messages
// ============================================================================

const (
	ErrSourceLoad     = "failed to load property source %q: %w"
	ErrPropertyLookup = "failed to read property %q from source %q: %w"
)
