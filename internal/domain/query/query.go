package query

import (
	"fmt"
	"strings"

	"github.com/cadastra/registryd/internal/domain"
	"github.com/cadastra/registryd/internal/domain/fields"
	"github.com/cadastra/registryd/internal/domain/record"
)

// Query is an ephemeral set of search predicates: field name → caller value.
// Constructed per request, consumed by the search service, discarded.
type Query struct {
	predicates map[string]string
}

// New builds a query from string predicates. Values are whitespace-trimmed;
// blank values are dropped.
func New(params map[string]string) Query {
	q := Query{predicates: make(map[string]string, len(params))}
	for k, v := range params {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		q.predicates[k] = v
	}
	return q
}

// FromAny builds a query from decoded JSON input. Every value must be a
// string; anything else is a per-request ErrInvalidQuery, never a crash.
func FromAny(params map[string]any) (Query, error) {
	strs := make(map[string]string, len(params))
	for k, v := range params {
		s, ok := v.(string)
		if !ok {
			return Query{}, fmt.Errorf("%w: field %q must be a string, got %T", domain.ErrInvalidQuery, k, v)
		}
		strs[k] = s
	}
	return New(strs), nil
}

// Restrict returns a copy of the query containing only predicates whose
// field is searchable under the policy. Unrecognized keys are dropped
// silently, not rejected.
func (q Query) Restrict(p fields.Policy) Query {
	out := Query{predicates: make(map[string]string, len(q.predicates))}
	for k, v := range q.predicates {
		if p.IsSearchable(k) {
			out.predicates[k] = v
		}
	}
	return out
}

// IsEmpty reports whether the query carries no predicates.
func (q Query) IsEmpty() bool { return len(q.predicates) == 0 }

// Len returns the number of predicates.
func (q Query) Len() int { return len(q.predicates) }

// Matches reports whether the record satisfies every predicate (logical
// AND). Each predicate is case-insensitive substring containment on the
// literal field value: "123.456.789" matches "123.456.789-00", while a
// punctuation-stripped "12345678900" does not. No normalization of
// punctuation or digits is performed.
func (q Query) Matches(r record.Record) bool {
	for field, want := range q.predicates {
		got, ok := r.Value(field)
		if !ok {
			return false
		}
		if !strings.Contains(strings.ToLower(got), strings.ToLower(want)) {
			return false
		}
	}
	return true
}
