package ports

import (
	"context"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user aggregates.
type UserRepository interface {
	// Add persists a new user aggregate to storage.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists changes to an existing user aggregate.
	Update(ctx context.Context, aggregate *user.User) error

	// Get retrieves a user aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetForUpdate retrieves a user aggregate and locks its row for the
	// duration of the current transaction, so the active order counter moves
	// atomically with the order state that justifies it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error)
}
