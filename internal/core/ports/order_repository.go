// Package ports defines the contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate and locks its row for the
	// duration of the current transaction. Concurrent callers block until the
	// holder commits or rolls back, which serializes competing claims on the
	// same order. Must be called inside an active unit of work.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetPendingCreatedBefore retrieves pending, unassigned orders created
	// before the given cutoff, oldest first. Used by the broadcast job to
	// re-announce orders no transporter has claimed yet.
	GetPendingCreatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error)
}
