package commands

import (
	"errors"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to place a new delivery order.
// Encapsulates the customer, the service classification, both endpoints,
// and the package to move.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	customerID  kernel.UUID
	serviceType order.ServiceType
	priority    order.Priority
	pickup      kernel.Location
	dropoff     kernel.Location
	pkg         order.Package

	scheduledPickupAt *time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new delivery order.
// Validates identifiers, service classification, both locations, and the
// package. An empty priority defaults to normal. Returns an aggregated error
// if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	serviceType order.ServiceType,
	priority order.Priority,
	pickup kernel.Location,
	dropoff kernel.Location,
	pkg order.Package,
	scheduledPickupAt *time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		scheduledPickupAt: scheduledPickupAt,
		guard:             guard.NewConstructorGuard(),
	}

	if priority == "" {
		priority = order.PriorityNormal
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setServiceType(serviceType),
		cmd.setPriority(priority),
		cmd.setPickup(pickup),
		cmd.setDropoff(dropoff),
		cmd.setPackage(pkg),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ServiceType returns the requested service classification.
func (c CreateOrderCommand) ServiceType() order.ServiceType {
	return c.serviceType
}

// Priority returns the requested priority.
func (c CreateOrderCommand) Priority() order.Priority {
	return c.priority
}

// Pickup returns the pickup location.
func (c CreateOrderCommand) Pickup() kernel.Location {
	return c.pickup
}

// Dropoff returns the dropoff location.
func (c CreateOrderCommand) Dropoff() kernel.Location {
	return c.dropoff
}

// Package returns the package to move.
func (c CreateOrderCommand) Package() order.Package {
	return c.pkg
}

// ScheduledPickupAt returns the optional customer-requested pickup time.
func (c CreateOrderCommand) ScheduledPickupAt() *time.Time {
	return c.scheduledPickupAt
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setServiceType(serviceType order.ServiceType) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}
	c.serviceType = serviceType
	return nil
}

func (c *CreateOrderCommand) setPriority(priority order.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	c.priority = priority
	return nil
}

func (c *CreateOrderCommand) setPickup(pickup kernel.Location) error {
	if err := pickup.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("pickup", err)
	}
	c.pickup = pickup
	return nil
}

func (c *CreateOrderCommand) setDropoff(dropoff kernel.Location) error {
	if err := dropoff.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("dropoff", err)
	}
	c.dropoff = dropoff
	return nil
}

func (c *CreateOrderCommand) setPackage(pkg order.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}
	c.pkg = pkg
	return nil
}
