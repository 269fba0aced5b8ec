package order

import (
	"fmt"

	"haulage/internal/pkg/errs"
)

// ServiceType classifies the kind of delivery service requested for an order.
type ServiceType string

const (
	// ServiceTypeExpress is a rush same-day delivery.
	ServiceTypeExpress ServiceType = "express"
	// ServiceTypeStandard is a regular delivery.
	ServiceTypeStandard ServiceType = "standard"
	// ServiceTypeMoving is a large-item or household move.
	ServiceTypeMoving ServiceType = "moving"
	// ServiceTypeStorage is a pickup into temporary storage.
	ServiceTypeStorage ServiceType = "storage"
)

// Validate checks if the ServiceType is one of the defined service kinds.
func (t ServiceType) Validate() error {
	switch t {
	case ServiceTypeExpress, ServiceTypeStandard, ServiceTypeMoving, ServiceTypeStorage:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("serviceType",
			fmt.Errorf("%q is not a valid service type", string(t)))
	}
}

// String returns the wire representation of the service type.
func (t ServiceType) String() string {
	return string(t)
}

// Priority indicates how urgently an order should be surfaced to transporters.
type Priority string

const (
	// PriorityNormal is the default priority.
	PriorityNormal Priority = "normal"
	// PriorityHigh marks the order for preferential broadcast to transporters.
	PriorityHigh Priority = "high"
)

// Validate checks if the Priority is one of the defined levels.
func (p Priority) Validate() error {
	switch p {
	case PriorityNormal, PriorityHigh:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("priority",
			fmt.Errorf("%q is not a valid priority", string(p)))
	}
}

// String returns the wire representation of the priority.
func (p Priority) String() string {
	return string(p)
}
