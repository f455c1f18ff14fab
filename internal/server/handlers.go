package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/eco2-team/backend/domains/env-report/internal/auth"
	"github.com/eco2-team/backend/domains/env-report/internal/constants"
	"github.com/eco2-team/backend/domains/env-report/internal/logging"
	"github.com/eco2-team/backend/domains/env-report/internal/metrics"
	"github.com/eco2-team/backend/domains/env-report/internal/report"
	"github.com/eco2-team/backend/domains/env-report/internal/tracing"
)

func (s *Server) handleFullReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	metrics.RequestsInFlight.Inc()
	defer metrics.RequestsInFlight.Dec()

	status := s.serveFullReport(w, r, start)
	recordRequest(metrics.EndpointFull, status, start)
}

func (s *Server) handleSourceReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	metrics.RequestsInFlight.Inc()
	defer metrics.RequestsInFlight.Dec()

	status := s.serveSourceReport(w, r, start)
	recordRequest(metrics.EndpointSource, status, start)
}

func (s *Server) serveFullReport(w http.ResponseWriter, r *http.Request, start time.Time) int {
	if !s.enabled {
		return s.fail(w, r, http.StatusNotFound, constants.MsgEndpointDisabled, start, nil)
	}

	principal, err := s.principal(r)
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues(metrics.ErrorTypeAuth).Inc()
		s.requestLogger(r).TokenRejected(r.Method, r.URL.Path, r.Host,
			r.Header.Get(constants.HeaderAuthorization), err)
		return s.fail(w, r, http.StatusUnauthorized, constants.MsgInvalidToken, start, err)
	}

	buildStart := time.Now()
	_, span := tracing.StartSpan(r.Context(), "env.report.build")
	full, err := report.BuildFullReport(s.env, s.filterSpec(principal))
	span.End()
	metrics.BuildDuration.Observe(time.Since(buildStart).Seconds())
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues(metrics.ErrorTypeBuild).Inc()
		tracing.RecordError(r.Context(), err)
		return s.fail(w, r, http.StatusInternalServerError, constants.MsgInternalError, start, err)
	}

	for _, entry := range full.PropertySources {
		countDispositions(entry)
	}

	s.requestLogger(r).ReportServed(r.Method, r.URL.Path, r.Host, principalName(principal),
		len(full.PropertySources), time.Since(start))
	return writeJSON(w, http.StatusOK, full)
}

func (s *Server) serveSourceReport(w http.ResponseWriter, r *http.Request, start time.Time) int {
	if !s.enabled {
		return s.fail(w, r, http.StatusNotFound, constants.MsgEndpointDisabled, start, nil)
	}

	principal, err := s.principal(r)
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues(metrics.ErrorTypeAuth).Inc()
		s.requestLogger(r).TokenRejected(r.Method, r.URL.Path, r.Host,
			r.Header.Get(constants.HeaderAuthorization), err)
		return s.fail(w, r, http.StatusUnauthorized, constants.MsgInvalidToken, start, err)
	}

	sourceName := r.PathValue("source")

	buildStart := time.Now()
	_, span := tracing.StartSpan(r.Context(), "env.report.build",
		attribute.String("envreport.source", sourceName))
	entry, err := report.BuildSourceReport(s.env, sourceName, s.filterSpec(principal))
	span.End()
	metrics.BuildDuration.Observe(time.Since(buildStart).Seconds())
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues(metrics.ErrorTypeBuild).Inc()
		tracing.RecordError(r.Context(), err)
		return s.fail(w, r, http.StatusInternalServerError, constants.MsgInternalError, start, err)
	}
	if entry == nil {
		// Unknown source is a normal outcome, not a server error.
		return s.fail(w, r, http.StatusNotFound, constants.MsgSourceNotFound, start, nil)
	}

	countDispositions(entry)

	s.requestLogger(r).ReportServed(r.Method, r.URL.Path, r.Host, principalName(principal),
		1, time.Since(start))
	return writeJSON(w, http.StatusOK, entry)
}

// fail writes a JSON error body and logs the failure.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, msg string, start time.Time, err error) int {
	s.requestLogger(r).ReportFailed(r.Method, r.URL.Path, r.Host, msg, time.Since(start), err)
	return writeJSON(w, status, map[string]string{"message": msg})
}

// requestLogger attaches the active trace context to the logger.
func (s *Server) requestLogger(r *http.Request) *logging.Logger {
	sc := tracing.SpanFromContext(r.Context()).SpanContext()
	if !sc.IsValid() {
		return s.logger
	}
	return s.logger.WithTrace(sc.TraceID().String(), sc.SpanID().String())
}

func writeJSON(w http.ResponseWriter, status int, body any) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
	return status
}

func recordRequest(endpoint string, status int, start time.Time) {
	label := strconv.Itoa(status)
	metrics.RequestDuration.WithLabelValues(endpoint, label).Observe(time.Since(start).Seconds())
	metrics.RequestsTotal.WithLabelValues(endpoint, label).Inc()
}

// countDispositions feeds the masked/plain key counters from a built
// entry. Values equal to the mask marker count as masked.
func countDispositions(entry *report.SourceEntry) {
	var masked, plain int
	for _, key := range entry.Properties.Keys() {
		if v, _ := entry.Properties.Get(key); v == constants.MaskValue {
			masked++
		} else {
			plain++
		}
	}
	if masked > 0 {
		metrics.KeysReported.WithLabelValues(metrics.DispositionMasked).Add(float64(masked))
	}
	if plain > 0 {
		metrics.KeysReported.WithLabelValues(metrics.DispositionPlain).Add(float64(plain))
	}
}

func principalName(p *auth.Principal) string {
	if p == nil {
		return ""
	}
	return p.Name
}
