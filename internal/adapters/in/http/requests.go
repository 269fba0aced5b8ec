package http

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator adapts go-playground/validator to echo's Validator interface.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a validator for incoming request bodies.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks struct tags on the bound request body.
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// LocationRequest carries an address with its coordinates.
type LocationRequest struct {
	Address   string  `json:"address" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// PackageRequest describes the goods to move.
type PackageRequest struct {
	WeightKg    float64 `json:"weight_kg" validate:"required,gt=0"`
	LengthCm    float64 `json:"length_cm" validate:"required,gt=0"`
	WidthCm     float64 `json:"width_cm" validate:"required,gt=0"`
	HeightCm    float64 `json:"height_cm" validate:"required,gt=0"`
	Fragile     bool    `json:"fragile"`
	Description string  `json:"description"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerID        string          `json:"customer_id" validate:"required,uuid"`
	ServiceType       string          `json:"service_type" validate:"required"`
	Priority          string          `json:"priority"`
	Pickup            LocationRequest `json:"pickup" validate:"required"`
	Dropoff           LocationRequest `json:"dropoff" validate:"required"`
	Package           PackageRequest  `json:"package" validate:"required"`
	ScheduledPickupAt *time.Time      `json:"scheduled_pickup_at"`
}

// AcceptOrderRequest is the body of POST /api/v1/orders/:orderId/accept.
type AcceptOrderRequest struct {
	TransporterID     string     `json:"transporter_id" validate:"required,uuid"`
	EstimatedPickupAt *time.Time `json:"estimated_pickup_at"`
}

// PointRequest is a bare coordinate pair, used where no address is involved.
type PointRequest struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// UpdateStatusRequest is the body of POST /api/v1/orders/:orderId/status.
// The optional location records the transporter's position with the transition.
type UpdateStatusRequest struct {
	ActorID  string        `json:"actor_id" validate:"required,uuid"`
	Status   string        `json:"status" validate:"required"`
	Note     string        `json:"note"`
	Location *PointRequest `json:"location"`
}

// CancelOrderRequest is the body of POST /api/v1/orders/:orderId/cancel.
type CancelOrderRequest struct {
	ActorID     string `json:"actor_id" validate:"required,uuid"`
	Reason      string `json:"reason" validate:"required"`
	Description string `json:"description"`
}

// RateOrderRequest is the body of POST /api/v1/orders/:orderId/rating.
type RateOrderRequest struct {
	ActorID  string `json:"actor_id" validate:"required,uuid"`
	Score    int    `json:"score" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback"`
}

// UpdateTrackingRequest is the body of POST /api/v1/orders/:orderId/tracking.
type UpdateTrackingRequest struct {
	TransporterID  string     `json:"transporter_id" validate:"required,uuid"`
	Latitude       float64    `json:"latitude" validate:"min=-90,max=90"`
	Longitude      float64    `json:"longitude" validate:"min=-180,max=180"`
	AccuracyMeters float64    `json:"accuracy_meters" validate:"min=0"`
	ETA            *time.Time `json:"eta"`
}

func bindAndValidate(ctx echo.Context, req interface{}) error {
	if err := ctx.Bind(req); err != nil {
		return err
	}
	return ctx.Validate(req)
}
