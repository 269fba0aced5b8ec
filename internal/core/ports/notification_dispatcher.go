package ports

import (
	"context"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
)

// EventKind classifies the lifecycle events the marketplace announces.
type EventKind string

const (
	// EventOrderCreated is published when a new order enters the marketplace.
	EventOrderCreated EventKind = "order.created"
	// EventOrderAccepted is published when a transporter wins the claim on an order.
	EventOrderAccepted EventKind = "order.accepted"
	// EventOrderTaken is published alongside EventOrderAccepted to tell the
	// other transporters who had the order surfaced that it is gone.
	EventOrderTaken EventKind = "order.taken"
	// EventOrderStatusChanged is published on every in-transit status change.
	EventOrderStatusChanged EventKind = "order.status_changed"
	// EventOrderCancelled is published when an order is cancelled.
	EventOrderCancelled EventKind = "order.cancelled"
	// EventOrderBroadcast is published when a stale pending order is re-announced
	// to nearby transporters.
	EventOrderBroadcast EventKind = "order.broadcast"
)

// NotificationDispatcher publishes order lifecycle events to interested parties.
//
// Dispatch happens after the state change is durably committed; a delivery
// failure never affects the order itself. Implementations are expected to log
// failures and move on rather than propagate them.
type NotificationDispatcher interface {
	// Notify publishes an event about the given order to the listed recipients.
	Notify(ctx context.Context, kind EventKind, aggregate *order.Order, recipients []kernel.UUID) error
}
