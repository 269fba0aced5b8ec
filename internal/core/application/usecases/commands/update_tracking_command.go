package commands

import (
	"errors"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/guard"
)

var ErrUpdateTrackingCommandIsNotConstructed = errors.New(
	"UpdateTrackingCommand must be created via NewUpdateTrackingCommand constructor",
)

// UpdateTrackingCommand represents a position report from the assigned transporter.
type UpdateTrackingCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	transporterID kernel.UUID
	point         kernel.GeoPoint

	accuracyMeters float64
	eta            *time.Time

	guard guard.ConstructorGuard
}

// NewUpdateTrackingCommand creates a command to record a transporter position
// report. The eta is an optional revised arrival estimate.
func NewUpdateTrackingCommand(
	orderID kernel.UUID,
	transporterID kernel.UUID,
	point kernel.GeoPoint,
	accuracyMeters float64,
	eta *time.Time,
) (UpdateTrackingCommand, error) {
	cmd := UpdateTrackingCommand{
		accuracyMeters: accuracyMeters,
		eta:            eta,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTransporterID(transporterID),
		cmd.setPoint(point),
	); err != nil {
		return UpdateTrackingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateTrackingCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTrackingCommandIsNotConstructed)
}

// OrderID returns the identifier of the tracked order.
func (c UpdateTrackingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TransporterID returns the identifier of the reporting transporter.
func (c UpdateTrackingCommand) TransporterID() kernel.UUID {
	return c.transporterID
}

// Point returns the reported position.
func (c UpdateTrackingCommand) Point() kernel.GeoPoint {
	return c.point
}

// AccuracyMeters returns the reported position accuracy.
func (c UpdateTrackingCommand) AccuracyMeters() float64 {
	return c.accuracyMeters
}

// ETA returns the optional revised arrival estimate.
func (c UpdateTrackingCommand) ETA() *time.Time {
	return c.eta
}

func (c *UpdateTrackingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateTrackingCommand) setTransporterID(transporterID kernel.UUID) error {
	if err := transporterID.Validate(); err != nil {
		return err
	}
	c.transporterID = transporterID
	return nil
}

func (c *UpdateTrackingCommand) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	c.point = point
	return nil
}
