// Package chi exposes the HTTP API: the search and listing routes, the
// admission middleware, and the wire envelopes shared with legacy clients.
package chi

import (
	"context"
	"net/http"
	"net/url"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/attorney-tools/codesearch/internal/domain"
	logpkg "github.com/attorney-tools/codesearch/internal/logger"
	"github.com/attorney-tools/codesearch/internal/usecase/health"
	"github.com/attorney-tools/codesearch/internal/version"
)

// SearchService executes a scoped full-text search.
type SearchService interface {
	Search(ctx context.Context, queryText, codeScope string) (*domain.SearchResult, error)
}

// CatalogService lists the configured codes with searchability flags.
type CatalogService interface {
	ListCodes(ctx context.Context) ([]domain.CodeDescriptor, error)
}

// HealthService aggregates component health checks.
type HealthService interface {
	Check(ctx context.Context) health.Report
}

// Server implements the HTTP API routes.
type Server struct {
	search  SearchService
	catalog CatalogService
	health  HealthService
	logger  *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(search SearchService, catalog CatalogService, healthSvc HealthService, logger *zap.Logger) *Server {
	return &Server{
		search:  search,
		catalog: catalog,
		health:  healthSvc,
		logger:  logger,
	}
}

// Mount registers all routes on r. Admission is enforced by middleware
// installed on the router, not here.
func (s *Server) Mount(r gochi.Router) {
	r.Get("/", s.Home)
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/codesearch/list", s.ListCodes)
	r.Get("/codesearch/search/{query}/{codelist}", s.Search)
}

// Home handles GET /. A signed-in no-op used by clients as a readiness and
// credential probe.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	writeOK(w)
}

// Search handles GET /codesearch/search/{query}/{codelist}.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	queryText := decodePathParam(gochi.URLParam(r, "query"))
	codeScope := decodePathParam(gochi.URLParam(r, "codelist"))

	result, err := s.search.Search(r.Context(), queryText, codeScope)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	docs := make([]sectionDocument, len(result.Documents))
	for i, d := range result.Documents {
		docs[i] = sectionDocument{Section: d, Version: version.Version}
	}

	writeJSON(w, http.StatusOK, searchEnvelope{
		QueryText: result.QueryText,
		Query:     result.Query,
		Count:     result.Count,
		Documents: docs,
		Version:   version.Version,
	})
}

// ListCodes handles GET /codesearch/list.
func (s *Server) ListCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := s.catalog.ListCodes(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, codes)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != health.Healthy {
		s.logger.Warn("health check degraded", zap.Any("checks", checks))
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// handleDomainError logs through the request-scoped logger so the line
// carries the request id, then renders the wire envelope.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logpkg.FromContext(r.Context()).Warn("domain error", zap.Error(err))
	writeDomainError(w, err)
}

// decodePathParam percent-decodes a raw path segment exactly twice, the
// first pass also folding "+" to space. Legacy clients double-encode these
// segments; single decoding would hand the index literal percent escapes.
func decodePathParam(raw string) string {
	once, err := url.QueryUnescape(raw)
	if err != nil {
		once = raw
	}
	twice, err := url.PathUnescape(once)
	if err != nil {
		twice = once
	}
	return twice
}
