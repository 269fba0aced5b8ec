package order

import (
	"errors"
	"fmt"
	"strings"

	"haulage/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct delivery workflow.
//
// State transitions:
//
//	pending ──┬──> accepted ──> pickup_scheduled ──> en_route_pickup ──> arrived_pickup
//	          │                                                              │      │
//	          │                          ┌── picked_up <─────────────────────┘   failed
//	          │                          v
//	          │             en_route_delivery ──> arrived_delivery ──┬──> delivered
//	          │                                                      └──> failed
//	          └──> cancelled
//
// cancelled is reachable from pending, accepted, pickup_scheduled, and failed.
// delivered and cancelled are terminal. failed may be retried back to pending
// or abandoned to cancelled.
type Status string

const (
	// StatusPending is the initial status: the order is waiting for a transporter to claim it.
	StatusPending Status = "pending"
	// StatusAccepted indicates a transporter has claimed the order.
	StatusAccepted Status = "accepted"
	// StatusPickupScheduled indicates the transporter has scheduled the pickup.
	StatusPickupScheduled Status = "pickup_scheduled"
	// StatusEnRoutePickup indicates the transporter is driving to the pickup location.
	StatusEnRoutePickup Status = "en_route_pickup"
	// StatusArrivedPickup indicates the transporter has arrived at the pickup location.
	StatusArrivedPickup Status = "arrived_pickup"
	// StatusPickedUp indicates the package has been collected.
	StatusPickedUp Status = "picked_up"
	// StatusEnRouteDelivery indicates the transporter is driving to the dropoff location.
	StatusEnRouteDelivery Status = "en_route_delivery"
	// StatusArrivedDelivery indicates the transporter has arrived at the dropoff location.
	StatusArrivedDelivery Status = "arrived_delivery"
	// StatusDelivered indicates the package has been handed over. Terminal.
	StatusDelivered Status = "delivered"
	// StatusCancelled indicates the order was cancelled by a party. Terminal.
	StatusCancelled Status = "cancelled"
	// StatusFailed indicates a pickup or delivery attempt failed.
	// Failed orders may be retried back to pending or abandoned to cancelled.
	StatusFailed Status = "failed"
)

// ErrInvalidTransition is the unwrap target for InvalidTransitionError,
// enabling classification via errors.Is.
var ErrInvalidTransition = errors.New("invalid status transition")

// allowedTransitions returns the adjacency of the order state machine.
// An empty entry means the status is terminal.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:         {StatusAccepted, StatusCancelled},
		StatusAccepted:        {StatusPickupScheduled, StatusCancelled},
		StatusPickupScheduled: {StatusEnRoutePickup, StatusCancelled},
		StatusEnRoutePickup:   {StatusArrivedPickup},
		StatusArrivedPickup:   {StatusPickedUp, StatusFailed},
		StatusPickedUp:        {StatusEnRouteDelivery},
		StatusEnRouteDelivery: {StatusArrivedDelivery},
		StatusArrivedDelivery: {StatusDelivered, StatusFailed},
		StatusDelivered:       {},
		StatusCancelled:       {},
		StatusFailed:          {StatusPending, StatusCancelled},
	}
}

// AllStatuses returns every valid status, in workflow order.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusAccepted,
		StatusPickupScheduled,
		StatusEnRoutePickup,
		StatusArrivedPickup,
		StatusPickedUp,
		StatusEnRouteDelivery,
		StatusArrivedDelivery,
		StatusDelivered,
		StatusCancelled,
		StatusFailed,
	}
}

// Validate checks if the Status value is one of the defined states.
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := allowedTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the wire representation of the status.
// This method implements the fmt.Stringer interface.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status permits no further transitions.
// Terminal statuses are delivered and cancelled.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsInTransit reports whether the status belongs to the in-transit family:
// a transporter is assigned and actively working the order. Tracking updates
// are only permitted while in this family.
func (s Status) IsInTransit() bool {
	switch s {
	case StatusAccepted, StatusPickupScheduled, StatusEnRoutePickup,
		StatusArrivedPickup, StatusPickedUp, StatusEnRouteDelivery, StatusArrivedDelivery:
		return true
	default:
		return false
	}
}

// AllowedTransitions returns the set of statuses reachable from s in one step.
// Returns an empty slice for terminal or unknown statuses.
func (s Status) AllowedTransitions() []Status {
	allowed := allowedTransitions()[s]
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates the transition from s to next and returns next on success.
//
// Returns:
//   - (next, nil) when the transition is permitted by the state machine
//   - (s, *InvalidTransitionError) otherwise; the error carries the current status,
//     the attempted status, and the full allowed set so callers can render valid
//     next actions
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return s, err
	}

	if !s.CanTransitionTo(next) {
		return s, NewInvalidTransitionError(s, next)
	}

	return next, nil
}

// InvalidTransitionError indicates that a status change was attempted that the
// state machine does not permit. It carries enough structured context for the
// caller to render an actionable message rather than a generic failure.
type InvalidTransitionError struct {
	From    Status
	To      Status
	Allowed []Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// attempted transition, capturing the allowed set of the originating status.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{
		From:    from,
		To:      to,
		Allowed: from.AllowedTransitions(),
	}
}

func (e *InvalidTransitionError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		allowed[i] = string(s)
	}
	if len(allowed) == 0 {
		return fmt.Sprintf("%s: %s -> %s (%s is terminal)",
			ErrInvalidTransition, e.From, e.To, e.From)
	}
	return fmt.Sprintf("%s: %s -> %s (allowed: %s)",
		ErrInvalidTransition, e.From, e.To, strings.Join(allowed, ", "))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
