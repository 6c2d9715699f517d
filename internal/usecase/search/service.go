// Package search evaluates query predicates against the registry snapshot
// and projects matches through the exposed-field allow-list before they
// leave the process boundary.
package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/cadastra/registryd/internal/domain/fields"
	"github.com/cadastra/registryd/internal/domain/query"
	"github.com/cadastra/registryd/internal/domain/record"
	"github.com/cadastra/registryd/internal/logger"
	"github.com/cadastra/registryd/internal/metrics"
)

// Service matches queries against the record store under a field policy.
// Constructed once at startup and shared read-only across requests; each
// Search call is a pure function of (query, store snapshot, policy).
type Service struct {
	store  Store
	policy fields.Policy
}

// New creates a search service.
func New(store Store, policy fields.Policy) *Service {
	return &Service{store: store, policy: policy}
}

// Search returns records matching every query predicate, in store order,
// each projected to the exposed fields.
//
// Predicates on fields outside the searchable allow-list are dropped
// silently. A query with no surviving predicates matches nothing: AND over
// zero predicates would otherwise be vacuously true and disclose the full
// table, so the empty case is an explicit rule, not a fallthrough.
func (s *Service) Search(ctx context.Context, q query.Query) []record.Projected {
	q = q.Restrict(s.policy)
	if q.IsEmpty() {
		metrics.SearchesTotal.WithLabelValues(metrics.SearchOutcomeEmpty).Inc()
		metrics.SearchMatches.Observe(0)
		return []record.Projected{}
	}

	exposed := s.policy.Exposed()
	results := []record.Projected{}
	for _, r := range s.store.All() {
		if q.Matches(r) {
			results = append(results, record.Project(r, exposed))
		}
	}

	outcome := metrics.SearchOutcomeMatched
	if len(results) == 0 {
		outcome = metrics.SearchOutcomeNoMatch
	}
	metrics.SearchesTotal.WithLabelValues(outcome).Inc()
	metrics.SearchMatches.Observe(float64(len(results)))

	logger.FromContext(ctx).Debug("search executed",
		zap.Int("predicates", q.Len()),
		zap.Int("matches", len(results)),
	)
	return results
}

// SearchableFields returns the searchable field names in declaration order.
func (s *Service) SearchableFields() []string { return s.policy.Searchable() }

// ExposedFields returns the exposed field names in declaration order.
func (s *Service) ExposedFields() []string { return s.policy.Exposed() }
