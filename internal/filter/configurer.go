package filter

import (
	"fmt"
	"regexp"
)

// Masking modes accepted by NewModeConfigurer.
const (
	ModeMaskAll  = "mask_all"
	ModeMaskNone = "mask_none"
	ModeLegacy   = "legacy"
)

// ModeConfigurer is a Configurer driven by static configuration:
// a masking mode plus optional extra mask patterns. Patterns are
// compiled once at construction so malformed configuration fails at
// startup, not per request.
type ModeConfigurer struct {
	mode     string
	patterns []*regexp.Regexp
}

// NewModeConfigurer validates the mode and compiles the extra patterns.
func NewModeConfigurer(mode string, exprs []string) (*ModeConfigurer, error) {
	switch mode {
	case ModeMaskAll, ModeMaskNone, ModeLegacy:
	default:
		return nil, fmt.Errorf("unknown masking mode %q", mode)
	}

	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		p, err := regexp.Compile(expr)
		if err != nil {
			return nil, &InvalidPatternError{Expr: expr, Err: err}
		}
		patterns = append(patterns, p)
	}

	return &ModeConfigurer{mode: mode, patterns: patterns}, nil
}

// SpecifyFiltering applies the configured mode and patterns to the
// per-request Spec.
func (c *ModeConfigurer) SpecifyFiltering(spec *Spec) {
	switch c.mode {
	case ModeMaskAll:
		spec.MaskAll()
	case ModeMaskNone:
		spec.MaskNone()
	case ModeLegacy:
		spec.LegacyMasking()
	}
	if len(c.patterns) > 0 {
		spec.MaskCompiled(c.patterns...)
	}
}
