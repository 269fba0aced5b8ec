package queries

import (
	"errors"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/guard"
)

var ErrOrderTrackingQueryIsNotConstructed = errors.New(
	"OrderTrackingQuery must be created via NewOrderTrackingQuery constructor",
)

// OrderTrackingQuery retrieves the live tracking view of one order on behalf
// of one of its parties.
type OrderTrackingQuery struct {
	orderID     kernel.UUID
	requesterID kernel.UUID

	guard guard.ConstructorGuard
}

// NewOrderTrackingQuery creates a query for an order's tracking view.
func NewOrderTrackingQuery(orderID, requesterID kernel.UUID) (OrderTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return OrderTrackingQuery{}, err
	}
	if err := requesterID.Validate(); err != nil {
		return OrderTrackingQuery{}, err
	}
	return OrderTrackingQuery{
		orderID:     orderID,
		requesterID: requesterID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q OrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrOrderTrackingQueryIsNotConstructed)
}

// OrderID returns the identifier of the tracked order.
func (q OrderTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

// RequesterID returns the identity of the reading party.
func (q OrderTrackingQuery) RequesterID() kernel.UUID {
	return q.requesterID
}

// TrackingPointResponse is the most recent reported transporter position.
type TrackingPointResponse struct {
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	AccuracyMeters float64   `json:"accuracy_meters"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// RoutePointResponse is one position in the reported route trail.
type RoutePointResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// OrderTrackingQueryResponse is the live tracking view of one order: current
// status, the latest reported position, the route trail, and the estimate.
type OrderTrackingQueryResponse struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`

	Tracking *TrackingPointResponse `json:"tracking,omitempty"`
	Route    []RoutePointResponse   `json:"route"`
	ETA      *time.Time             `json:"eta,omitempty"`

	EstimatedPickupAt *time.Time `json:"estimated_pickup_at,omitempty"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
