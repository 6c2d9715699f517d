package health

import "context"

// StoreChecker checks registry snapshot availability.
type StoreChecker interface {
	Check(ctx context.Context) error
}
