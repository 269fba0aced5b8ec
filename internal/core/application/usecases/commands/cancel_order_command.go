package commands

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to cancel an order before the package
// is picked up.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	actorID     kernel.UUID
	reason      string
	description string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
// The reason is required; the description is optional free text.
func NewCancelOrderCommand(
	orderID kernel.UUID,
	actorID kernel.UUID,
	reason string,
	description string,
) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setReason(reason),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the identifier of the cancelling user.
func (c CancelOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Reason returns the cancellation reason code.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

// Description returns the optional free-text detail.
func (c CancelOrderCommand) Description() string {
	return c.description
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}

func (c *CancelOrderCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}
