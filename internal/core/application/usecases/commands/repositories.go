// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, and post-commit notification.
package commands

import (
	"context"
	"errors"
	"fmt"

	"haulage/internal/core/ports"
)

// ErrNotAuthorized is returned when the acting user is not permitted to perform
// the requested operation on the order: they are not a party to it, or the
// operation is reserved for the assigned transporter.
var ErrNotAuthorized = errors.New("actor is not authorized for this order operation")

// ErrNotEligible is the unwrap target for TransporterNotEligibleError, usable
// with errors.Is.
var ErrNotEligible = errors.New("transporter is not eligible to claim orders")

// TransporterNotEligibleError indicates that a transporter's profile state
// blocks the claim: they are not verified yet, or they paused their
// availability. Unlike an authorization failure this clears on its own once
// the profile changes, so callers should treat it as a retryable conflict.
type TransporterNotEligibleError struct {
	Reason string
}

// NewTransporterNotEligibleError creates a TransporterNotEligibleError carrying
// the blocking profile condition.
func NewTransporterNotEligibleError(reason string) *TransporterNotEligibleError {
	return &TransporterNotEligibleError{Reason: reason}
}

func (e *TransporterNotEligibleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotEligible, e.Reason)
}

func (e *TransporterNotEligibleError) Unwrap() error {
	return ErrNotEligible
}

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// UserRepoFactory provides access to the user repository within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions across both order and user aggregates.
	// Used for commands that move the active order counter in lockstep with
	// the order state that justifies it.
	UoW interface {
		TxManager
		OrderRepoFactory
		UserRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
