package commands

import (
	"errors"
	"fmt"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a request to advance an order along its
// lifecycle: scheduling a pickup, reporting arrival, completing the delivery,
// marking an attempt failed, or reopening a failed order for another attempt.
//
// Claims and cancellations have dedicated commands because they carry extra
// records; this command rejects accepted and cancelled as targets.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorID   kernel.UUID
	newStatus order.Status
	note      string
	location  *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to move an order to a new status.
// The note is an optional free-text annotation recorded in the status history;
// a non-nil location records the transporter's position with the transition.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	actorID kernel.UUID,
	newStatus order.Status,
	note string,
	location *kernel.GeoPoint,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setNewStatus(newStatus),
		cmd.setLocation(location),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to advance.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the identifier of the user driving the transition.
func (c UpdateOrderStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// NewStatus returns the target status.
func (c UpdateOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// Note returns the optional history annotation.
func (c UpdateOrderStatusCommand) Note() string {
	return c.note
}

// Location returns the optional position reported with the transition, or nil.
func (c UpdateOrderStatusCommand) Location() *kernel.GeoPoint {
	return c.location
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}

func (c *UpdateOrderStatusCommand) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}

func (c *UpdateOrderStatusCommand) setNewStatus(newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	if newStatus == order.StatusAccepted || newStatus == order.StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s must go through its dedicated operation", newStatus))
	}
	c.newStatus = newStatus
	return nil
}
