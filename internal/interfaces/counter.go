package interfaces

import (
	"context"

	"github.com/ternarybob/respondeo/internal/models"
)

// CounterService tracks how many queries have been answered. Implementations
// must provide atomic increment-and-return semantics; raw read-modify-write
// on shared state is not acceptable under concurrent writers.
type CounterService interface {
	// Increment adds one and returns the new value
	Increment(ctx context.Context) (int64, error)

	// Value returns the current count without mutating it
	Value(ctx context.Context) (int64, error)
}

// QueryLogger records answered queries for diagnostics. Recording is
// best-effort: implementations log failures and never propagate them.
type QueryLogger interface {
	Record(ctx context.Context, entry models.QueryLogEntry)

	// Prune removes entries older than the retention window, returning how
	// many were deleted
	Prune(ctx context.Context, keep int) (int, error)
}
