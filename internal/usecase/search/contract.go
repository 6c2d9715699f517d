package search

import "github.com/cadastra/registryd/internal/domain/record"

// Store provides read access to the loaded registry snapshot.
type Store interface {
	// All returns the full ordered record set. Order must be stable
	// across calls.
	All() []record.Record
}
