// Package queries contains read-only operations over the persistence model.
// Query handlers read the database directly and return plain response DTOs,
// bypassing the aggregate layer in line with the CQRS split.
package queries

import (
	"errors"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// ErrAccessDenied is returned when the requester is neither the customer nor
// the assigned transporter of the order they are reading.
var ErrAccessDenied = errors.New("requester is not a party to the order")

// GetOrderQuery retrieves the full detail of a single order on behalf of one
// of its parties.
type GetOrderQuery struct {
	orderID     kernel.UUID
	requesterID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order's detail.
func NewGetOrderQuery(orderID, requesterID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if err := requesterID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{
		orderID:     orderID,
		requesterID: requesterID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// RequesterID returns the identity of the reading party.
func (q GetOrderQuery) RequesterID() kernel.UUID {
	return q.requesterID
}

// LocationResponse is a point with its human-readable address.
type LocationResponse struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PackageResponse describes the transported package.
type PackageResponse struct {
	WeightKg    float64 `json:"weight_kg"`
	LengthCm    float64 `json:"length_cm"`
	WidthCm     float64 `json:"width_cm"`
	HeightCm    float64 `json:"height_cm"`
	Fragile     bool    `json:"fragile"`
	Description string  `json:"description,omitempty"`
}

// SurchargeResponse is one itemized extra fee on the price breakdown.
type SurchargeResponse struct {
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// PriceResponse is the itemized price breakdown of an order.
type PriceResponse struct {
	BaseFee     float64             `json:"base_fee"`
	DistanceKm  float64             `json:"distance_km"`
	DistanceFee float64             `json:"distance_fee"`
	Surcharges  []SurchargeResponse `json:"surcharges,omitempty"`
	Tax         float64             `json:"tax"`
	Total       float64             `json:"total"`
	Currency    string              `json:"currency"`
}

// HistoryEntryResponse is one line of the order's status history.
type HistoryEntryResponse struct {
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
	ActorID string    `json:"actor_id"`
	Note    string    `json:"note,omitempty"`
}

// RatingResponse is a post-delivery rating left by one party.
type RatingResponse struct {
	Score    int       `json:"score"`
	Feedback string    `json:"feedback,omitempty"`
	RatedBy  string    `json:"rated_by"`
	At       time.Time `json:"at"`
}

// CancellationResponse records who cancelled the order and why.
type CancellationResponse struct {
	ActorID     string    `json:"actor_id"`
	Reason      string    `json:"reason"`
	Description string    `json:"description,omitempty"`
	At          time.Time `json:"at"`
}

// GetOrderQueryResponse is the full detail view of one order.
type GetOrderQueryResponse struct {
	ID            string  `json:"id"`
	OrderNumber   string  `json:"order_number"`
	CustomerID    string  `json:"customer_id"`
	TransporterID *string `json:"transporter_id,omitempty"`

	ServiceType string `json:"service_type"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`

	Pickup  LocationResponse `json:"pickup"`
	Dropoff LocationResponse `json:"dropoff"`
	Package PackageResponse  `json:"package"`
	Price   PriceResponse    `json:"price"`

	History []HistoryEntryResponse `json:"history"`

	CustomerRating    *RatingResponse       `json:"customer_rating,omitempty"`
	TransporterRating *RatingResponse       `json:"transporter_rating,omitempty"`
	Cancellation      *CancellationResponse `json:"cancellation,omitempty"`

	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	AcceptedAt        *time.Time `json:"accepted_at,omitempty"`
	ScheduledPickupAt *time.Time `json:"scheduled_pickup_at,omitempty"`
	EstimatedPickupAt *time.Time `json:"estimated_pickup_at,omitempty"`
}
