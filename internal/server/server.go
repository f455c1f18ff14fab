// Package server exposes the environment report over HTTP management
// endpoints: GET /env for the full report, GET /env/{source} for a
// single property source.
package server

import (
	"errors"
	"net/http"

	"github.com/eco2-team/backend/domains/env-report/internal/auth"
	"github.com/eco2-team/backend/domains/env-report/internal/constants"
	"github.com/eco2-team/backend/domains/env-report/internal/filter"
	"github.com/eco2-team/backend/domains/env-report/internal/logging"
	"github.com/eco2-team/backend/domains/env-report/internal/report"
	"github.com/eco2-team/backend/domains/env-report/internal/tracing"
)

// TokenVerifier resolves a bearer token into a Principal.
// Implemented by auth.Verifier.
type TokenVerifier interface {
	Verify(token string) (*auth.Principal, error)
}

// Options configures endpoint behavior.
type Options struct {
	// Enabled exposes /env. Off by default: the endpoint can leak
	// secrets when the masking policy is relaxed.
	Enabled bool

	// AuthRequired rejects requests without a valid bearer token.
	AuthRequired bool

	// Configurer customizes the per-request filter specification.
	// Nil means the conservative default: everything masked.
	Configurer filter.Configurer

	// Verifier parses bearer tokens. Nil means requests are anonymous.
	Verifier TokenVerifier

	Logger *logging.Logger
}

// Server handles environment report requests.
type Server struct {
	env        report.Environment
	enabled    bool
	authReq    bool
	configurer filter.Configurer
	verifier   TokenVerifier
	logger     *logging.Logger
}

func New(env report.Environment, opts Options) (*Server, error) {
	if env == nil {
		return nil, errors.New(constants.ErrRegistryRequired)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Server{
		env:        env,
		enabled:    opts.Enabled,
		authReq:    opts.AuthRequired,
		configurer: opts.Configurer,
		verifier:   opts.Verifier,
		logger:     logger,
	}, nil
}

// Handler returns the management mux wrapped with tracing.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+constants.PathEnv, s.handleFullReport)
	mux.HandleFunc("GET "+constants.PathEnv+"/{source}", s.handleSourceReport)
	return tracing.Middleware(mux)
}

// principal resolves the requester identity. A missing header yields
// an anonymous principal unless auth is required; a present but
// invalid token is always rejected.
func (s *Server) principal(r *http.Request) (*auth.Principal, error) {
	header := r.Header.Get(constants.HeaderAuthorization)
	if header == "" {
		if s.authReq {
			return nil, errors.New(constants.MsgInvalidToken)
		}
		return nil, nil
	}
	if s.verifier == nil {
		if s.authReq {
			return nil, errors.New(constants.MsgInvalidToken)
		}
		return nil, nil
	}
	return s.verifier.Verify(header)
}

// filterSpec builds the per-request masking policy.
func (s *Server) filterSpec(principal *auth.Principal) *filter.Spec {
	spec := filter.New(principal)
	if s.configurer != nil {
		s.configurer.SpecifyFiltering(spec)
	}
	return spec
}
