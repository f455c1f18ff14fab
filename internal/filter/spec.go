// Package filter holds the per-request masking policy applied to
// environment reports. A fresh Spec is built for every inbound request,
// optionally customized by a Configurer, and consulted once per
// property key during report assembly.
package filter

import (
	"fmt"
	"regexp"

	"github.com/eco2-team/backend/domains/env-report/internal/auth"
	"github.com/eco2-team/backend/domains/env-report/internal/constants"
)

// Result is the classification of a single property key.
type Result int

const (
	// Hide omits the key from the report entirely. Classify never
	// produces it; a Configurer-driven extension may.
	Hide Result = iota
	// Mask includes the key with its value replaced by constants.MaskValue.
	Mask
	// Plain includes the key with its real value.
	Plain
)

func (r Result) String() string {
	switch r {
	case Hide:
		return "HIDE"
	case Mask:
		return "MASK"
	case Plain:
		return "PLAIN"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// InvalidPatternError reports a mask pattern that failed to compile.
type InvalidPatternError struct {
	Expr string
	Err  error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf(constants.ErrInvalidMaskPattern, e.Expr, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// Spec is the masking policy for one report request.
//
// With masking on (the default), every key is masked unless it matches
// one of the mask patterns. With masking off the meaning inverts: only
// keys matching a mask pattern are masked. Patterns must match the
// whole key; use ".*" wildcards to match fragments.
type Spec struct {
	principal      *auth.Principal
	allMasked      bool
	maskedPatterns []*regexp.Regexp
	// allowedPatterns is reserved for hide semantics and is not yet
	// consulted by Classify.
	allowedPatterns []*regexp.Regexp
}

// New creates a Spec for the given requester with the conservative
// default: everything masked, no exceptions.
func New(principal *auth.Principal) *Spec {
	return &Spec{
		principal: principal,
		allMasked: true,
	}
}

// Principal returns the requester this Spec was built for, if any.
func (s *Spec) Principal() *auth.Principal {
	return s.principal
}

// MaskAll turns on global masking. Keys can be exempted by adding
// their pattern via MaskPatterns.
func (s *Spec) MaskAll() *Spec {
	s.allMasked = true
	return s
}

// MaskNone turns off global masking. Keys can be masked by adding
// their pattern via MaskPatterns.
func (s *Spec) MaskNone() *Spec {
	s.allMasked = false
	return s
}

// MaskPatterns appends patterns to the list of known mask patterns.
// With MaskAll set, matching keys are the exceptions (clear-text).
// With MaskNone set, matching keys are the ones masked.
// A pattern that fails to compile returns an *InvalidPatternError and
// leaves the Spec unchanged.
func (s *Spec) MaskPatterns(exprs ...string) (*Spec, error) {
	compiled := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		p, err := compileFull(expr)
		if err != nil {
			return s, &InvalidPatternError{Expr: expr, Err: err}
		}
		compiled = append(compiled, p)
	}
	s.maskedPatterns = append(s.maskedPatterns, compiled...)
	return s, nil
}

// MaskCompiled appends pre-compiled patterns to the list of known mask
// patterns. The patterns are re-anchored to match whole keys.
func (s *Spec) MaskCompiled(patterns ...*regexp.Regexp) *Spec {
	for _, p := range patterns {
		anchored, err := compileFull(p.String())
		if err != nil {
			// The expression already compiled once; anchoring a valid
			// RE2 expression cannot fail.
			continue
		}
		s.maskedPatterns = append(s.maskedPatterns, anchored)
	}
	return s
}

// LegacyMasking applies the masking rules from before filter
// specifications existed: masking off, plus case-insensitive patterns
// for anything containing the words password, credential, certificate,
// key, secret or token. Additional MaskPatterns calls can be combined
// with it.
func (s *Spec) LegacyMasking() *Spec {
	s.allMasked = false
	for _, word := range constants.LegacyMaskWords {
		s.maskedPatterns = append(s.maskedPatterns, regexp.MustCompile(`(?i)\A.*`+word+`.*\z`))
	}
	return s
}

// Classify decides how the given property key appears in a report.
func (s *Spec) Classify(key string) Result {
	for _, p := range s.maskedPatterns {
		if p.MatchString(key) {
			if s.allMasked {
				return Plain
			}
			return Mask
		}
	}
	if s.allMasked {
		return Mask
	}
	return Plain
}

// compileFull compiles expr anchored so it must match the whole key,
// not a substring of it.
func compileFull(expr string) (*regexp.Regexp, error) {
	return regexp.Compile(`\A(?:` + expr + `)\z`)
}

// Configurer customizes the per-request Spec before any classification
// happens. Absence of a Configurer means the conservative default
// stands: mask everything.
type Configurer interface {
	SpecifyFiltering(spec *Spec)
}

// ConfigurerFunc adapts a function to the Configurer interface.
type ConfigurerFunc func(spec *Spec)

func (f ConfigurerFunc) SpecifyFiltering(spec *Spec) {
	f(spec)
}
