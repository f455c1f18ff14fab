package constants

// ============================================================================
// Masking Configuration
// ============================================================================

const (
	// MaskValue replaces a masked property value in environment reports.
	// Keys classified as masked are still listed, only the value is redacted.
	MaskValue = "*****"

	// MaskPlaceholder is the string used to replace fully masked values in logs
	MaskPlaceholder = "***REDACTED***"

	// MaskPreserveLen is the number of characters to preserve at start/end
	MaskPreserveLen = 4

	// MaskMinLength is the minimum length for partial masking
	// Values shorter than this are fully masked
	MaskMinLength = 10

	// MaskSeparator is the separator between preserved prefix and suffix
	MaskSeparator = "..."
)

// ============================================================================
// Token Prefixes
// ============================================================================

const (
	BearerPrefix      = "Bearer "
	BearerPrefixLower = "bearer "
)

// ============================================================================
// Legacy Masking Vocabulary
// ============================================================================
//
// Property name fragments masked by the pre-policy default behavior.
// Kept for backward compatibility with reports produced before
// filter specifications existed.

var LegacyMaskWords = []string{
	"password",
	"credential",
	"certificate",
	"key",
	"secret",
	"token",
}
