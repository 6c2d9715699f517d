package fields

// Policy describes which record fields may appear as query predicates and
// which may appear in returned records. The two sets are independent: a
// field can be searchable-only (usable to find a record, never returned)
// or exposed-only. Immutable after construction.
type Policy struct {
	searchable    []string
	exposed       []string
	searchableSet map[string]struct{}
	exposedSet    map[string]struct{}
}

// NewPolicy creates a field policy. Declaration order of both lists is
// preserved: exposed order drives result projection, searchable order
// drives schema generation.
func NewPolicy(searchable, exposed []string) Policy {
	p := Policy{
		searchable:    append([]string(nil), searchable...),
		exposed:       append([]string(nil), exposed...),
		searchableSet: make(map[string]struct{}, len(searchable)),
		exposedSet:    make(map[string]struct{}, len(exposed)),
	}
	for _, f := range searchable {
		p.searchableSet[f] = struct{}{}
	}
	for _, f := range exposed {
		p.exposedSet[f] = struct{}{}
	}
	return p
}

// IsSearchable reports whether name may be used as a query predicate.
func (p Policy) IsSearchable(name string) bool {
	_, ok := p.searchableSet[name]
	return ok
}

// IsExposed reports whether name may appear in returned records.
func (p Policy) IsExposed(name string) bool {
	_, ok := p.exposedSet[name]
	return ok
}

// Searchable returns the searchable field names in declaration order.
func (p Policy) Searchable() []string {
	return append([]string(nil), p.searchable...)
}

// Exposed returns the exposed field names in declaration order.
func (p Policy) Exposed() []string {
	return append([]string(nil), p.exposed...)
}
