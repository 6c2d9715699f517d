// Package chi wires the registry services to HTTP routes. It is thin
// adapter code: decode the request, call the service, wrap the output in
// the envelope, pick the status code.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cadastra/registryd/internal/agentcard"
	"github.com/cadastra/registryd/internal/config"
	"github.com/cadastra/registryd/internal/domain"
	"github.com/cadastra/registryd/internal/domain/envelope"
	"github.com/cadastra/registryd/internal/domain/query"
	healthuc "github.com/cadastra/registryd/internal/usecase/health"
	searchuc "github.com/cadastra/registryd/internal/usecase/search"
	"github.com/cadastra/registryd/internal/version"
)

// Server holds the HTTP handlers for the registry API.
type Server struct {
	search *searchuc.Service
	health *healthuc.Service
	card   agentcard.Card
	agent  config.AgentConfig
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	health *healthuc.Service,
	card agentcard.Card,
	agent config.AgentConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		search: search,
		health: health,
		card:   card,
		agent:  agent,
		logger: logger,
	}
}

// Mount registers all routes on the router. metadataEndpoint is the
// configurable agent-card path.
func (s *Server) Mount(r chi.Router, metadataEndpoint string) {
	r.Get("/", s.handleRoot)
	r.Get(metadataEndpoint, s.handleMetadata)
	r.Get("/health", s.handleHealth)
	r.Post("/search", s.handleSearch)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// handleSearch handles POST /search. The body is a flat JSON object of
// field→value predicates. Malformed input yields an error envelope with
// HTTP 400; zero matches is a success with count 0, never an error.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var params map[string]any
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		s.writeQueryError(w, err)
		return
	}

	q, err := query.FromAny(params)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}

	results := s.search.Search(r.Context(), q)
	writeJSON(w, http.StatusOK, envelope.Success(results))
}

// handleMetadata handles GET on the configured metadata endpoint.
func (s *Server) handleMetadata(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.card)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// handleRoot handles GET /: a human-oriented service summary carrying the
// agent identity and the field policy.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":              s.agent.Name,
		"description":       s.agent.Description,
		"version":           s.agent.Version,
		"server_version":    version.Version,
		"searchable_fields": s.search.SearchableFields(),
		"exposed_fields":    s.search.ExposedFields(),
		"endpoints": map[string]string{
			"search":  "POST /search",
			"health":  "GET /health",
			"metrics": "GET /metrics",
		},
	})
}

// writeQueryError converts a per-request error to the error envelope.
// Internals are not exposed unless the error is the query sentinel.
func (s *Server) writeQueryError(w http.ResponseWriter, err error) {
	s.logger.Warn("bad search request", zap.Error(err))
	if !errors.Is(err, domain.ErrInvalidQuery) {
		err = domain.ErrInvalidQuery
	}
	writeJSON(w, http.StatusBadRequest, envelope.Failure(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
