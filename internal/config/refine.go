package config

import (
	"github.com/eco2-team/backend/domains/env-report/internal/props"
)

// Property keys the endpoint re-reads from the assembled sources. The
// "*" segment expands to the endpoint name, so the same key family can
// serve other management endpoints later.
const (
	KeyEndpointEnabled   = "endpoints.*.enabled"
	KeyEndpointSensitive = "endpoints.*.sensitive"
	KeyFilterMode        = "endpoints.*.filter.mode"
	KeyFilterPatterns    = "endpoints.*.filter.patterns"
)

// EndpointName names this endpoint in property keys.
const EndpointName = "env"

// Refine overlays endpoint settings resolved from the property sources
// on top of the static environment-variable config. A value held by
// any source (application file, dotenv, process env, remote hash)
// overrides the static one, so the endpoint can be enabled or its
// masking mode changed without redeploying.
func (c *Config) Refine(r *props.Resolver) {
	r = r.Named(EndpointName)

	c.EndpointEnabled = r.BoolOr(KeyEndpointEnabled, c.EndpointEnabled)
	c.AuthRequired = r.BoolOr(KeyEndpointSensitive, c.AuthRequired)
	c.FilterMode = r.StringOr(KeyFilterMode, c.FilterMode)
	if patterns, err := r.GetStrings(KeyFilterPatterns); err == nil {
		c.FilterPatterns = patterns
	}
}
