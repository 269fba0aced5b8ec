package commands

import (
	"errors"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand represents a transporter's claim on a pending order.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	transporterID kernel.UUID

	estimatedPickupAt *time.Time

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command for a transporter to claim an order.
// The pickup estimate is optional advisory metadata.
func NewAcceptOrderCommand(
	orderID kernel.UUID,
	transporterID kernel.UUID,
	estimatedPickupAt *time.Time,
) (AcceptOrderCommand, error) {
	cmd := AcceptOrderCommand{
		estimatedPickupAt: estimatedPickupAt,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTransporterID(transporterID),
	); err != nil {
		return AcceptOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being claimed.
func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TransporterID returns the identifier of the claiming transporter.
func (c AcceptOrderCommand) TransporterID() kernel.UUID {
	return c.transporterID
}

// EstimatedPickupAt returns the transporter's optional pickup estimate.
func (c AcceptOrderCommand) EstimatedPickupAt() *time.Time {
	return c.estimatedPickupAt
}

func (c *AcceptOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AcceptOrderCommand) setTransporterID(transporterID kernel.UUID) error {
	if err := transporterID.Validate(); err != nil {
		return err
	}
	c.transporterID = transporterID
	return nil
}
