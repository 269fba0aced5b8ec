package queries

import (
	"time"

	"github.com/google/uuid"
)

// orderRow is the read-side projection of one orders table row.
// The embedded collections are stored as jsonb and deserialized by gorm.
type orderRow struct {
	ID            uuid.UUID  `gorm:"column:id"`
	OrderNumber   string     `gorm:"column:order_number"`
	CustomerID    uuid.UUID  `gorm:"column:customer_id"`
	TransporterID *uuid.UUID `gorm:"column:transporter_id"`

	ServiceType string `gorm:"column:service_type"`
	Priority    string `gorm:"column:priority"`
	Status      string `gorm:"column:status"`

	PickupAddress   string  `gorm:"column:pickup_address"`
	PickupLatitude  float64 `gorm:"column:pickup_latitude"`
	PickupLongitude float64 `gorm:"column:pickup_longitude"`

	DropoffAddress   string  `gorm:"column:dropoff_address"`
	DropoffLatitude  float64 `gorm:"column:dropoff_latitude"`
	DropoffLongitude float64 `gorm:"column:dropoff_longitude"`

	WeightKg           float64 `gorm:"column:weight_kg"`
	LengthCm           float64 `gorm:"column:length_cm"`
	WidthCm            float64 `gorm:"column:width_cm"`
	HeightCm           float64 `gorm:"column:height_cm"`
	Fragile            bool    `gorm:"column:fragile"`
	PackageDescription string  `gorm:"column:package_description"`

	BaseFee     float64        `gorm:"column:base_fee"`
	DistanceKm  float64        `gorm:"column:distance_km"`
	DistanceFee float64        `gorm:"column:distance_fee"`
	Surcharges  []surchargeDoc `gorm:"column:surcharges;serializer:json"`
	Tax         float64        `gorm:"column:tax"`
	Total       float64        `gorm:"column:total"`
	Currency    string         `gorm:"column:currency"`

	History []historyDoc `gorm:"column:history;serializer:json"`

	Tracking *trackingDoc `gorm:"column:tracking;serializer:json"`
	Route    []pointDoc   `gorm:"column:route;serializer:json"`
	ETA      *time.Time   `gorm:"column:eta"`

	CustomerRating    *ratingDoc       `gorm:"column:customer_rating;serializer:json"`
	TransporterRating *ratingDoc       `gorm:"column:transporter_rating;serializer:json"`
	Cancellation      *cancellationDoc `gorm:"column:cancellation;serializer:json"`

	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
	AcceptedAt        *time.Time `gorm:"column:accepted_at"`
	ScheduledPickupAt *time.Time `gorm:"column:scheduled_pickup_at"`
	EstimatedPickupAt *time.Time `gorm:"column:estimated_pickup_at"`
}

func (orderRow) TableName() string { return "orders" }

// isParty reports whether the requester is the customer or the assigned
// transporter of this order.
func (r orderRow) isParty(requester uuid.UUID) bool {
	if r.CustomerID == requester {
		return true
	}
	return r.TransporterID != nil && *r.TransporterID == requester
}

// The jsonb document shapes, shared with the write side.

type surchargeDoc struct {
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type historyDoc struct {
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
	ActorID uuid.UUID `json:"actor_id"`
	Note    string    `json:"note,omitempty"`
}

type trackingDoc struct {
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	AccuracyMeters float64   `json:"accuracy_meters"`
	RecordedAt     time.Time `json:"recorded_at"`
}

type pointDoc struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ratingDoc struct {
	Score    int       `json:"score"`
	Feedback string    `json:"feedback,omitempty"`
	RatedBy  uuid.UUID `json:"rated_by"`
	At       time.Time `json:"at"`
}

type cancellationDoc struct {
	ActorID     uuid.UUID `json:"actor_id"`
	Reason      string    `json:"reason"`
	Description string    `json:"description,omitempty"`
	At          time.Time `json:"at"`
}

func (r orderRow) toDetailResponse() GetOrderQueryResponse {
	resp := GetOrderQueryResponse{
		ID:          r.ID.String(),
		OrderNumber: r.OrderNumber,
		CustomerID:  r.CustomerID.String(),
		ServiceType: r.ServiceType,
		Priority:    r.Priority,
		Status:      r.Status,
		Pickup: LocationResponse{
			Address:   r.PickupAddress,
			Latitude:  r.PickupLatitude,
			Longitude: r.PickupLongitude,
		},
		Dropoff: LocationResponse{
			Address:   r.DropoffAddress,
			Latitude:  r.DropoffLatitude,
			Longitude: r.DropoffLongitude,
		},
		Package: PackageResponse{
			WeightKg:    r.WeightKg,
			LengthCm:    r.LengthCm,
			WidthCm:     r.WidthCm,
			HeightCm:    r.HeightCm,
			Fragile:     r.Fragile,
			Description: r.PackageDescription,
		},
		Price: PriceResponse{
			BaseFee:     r.BaseFee,
			DistanceKm:  r.DistanceKm,
			DistanceFee: r.DistanceFee,
			Tax:         r.Tax,
			Total:       r.Total,
			Currency:    r.Currency,
		},
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		AcceptedAt:        r.AcceptedAt,
		ScheduledPickupAt: r.ScheduledPickupAt,
		EstimatedPickupAt: r.EstimatedPickupAt,
	}

	if r.TransporterID != nil {
		transporterID := r.TransporterID.String()
		resp.TransporterID = &transporterID
	}

	for _, s := range r.Surcharges {
		resp.Price.Surcharges = append(resp.Price.Surcharges, SurchargeResponse(s))
	}

	resp.History = make([]HistoryEntryResponse, 0, len(r.History))
	for _, h := range r.History {
		resp.History = append(resp.History, HistoryEntryResponse{
			Status:  h.Status,
			At:      h.At,
			ActorID: h.ActorID.String(),
			Note:    h.Note,
		})
	}

	resp.CustomerRating = toRatingResponse(r.CustomerRating)
	resp.TransporterRating = toRatingResponse(r.TransporterRating)

	if r.Cancellation != nil {
		resp.Cancellation = &CancellationResponse{
			ActorID:     r.Cancellation.ActorID.String(),
			Reason:      r.Cancellation.Reason,
			Description: r.Cancellation.Description,
			At:          r.Cancellation.At,
		}
	}

	return resp
}

func toRatingResponse(doc *ratingDoc) *RatingResponse {
	if doc == nil {
		return nil
	}
	return &RatingResponse{
		Score:    doc.Score,
		Feedback: doc.Feedback,
		RatedBy:  doc.RatedBy.String(),
		At:       doc.At,
	}
}

func (r orderRow) toSummaryResponse() OrderSummaryResponse {
	summary := OrderSummaryResponse{
		ID:          r.ID.String(),
		OrderNumber: r.OrderNumber,
		CustomerID:  r.CustomerID.String(),
		ServiceType: r.ServiceType,
		Priority:    r.Priority,
		Status:      r.Status,
		Pickup: LocationResponse{
			Address:   r.PickupAddress,
			Latitude:  r.PickupLatitude,
			Longitude: r.PickupLongitude,
		},
		Dropoff: LocationResponse{
			Address:   r.DropoffAddress,
			Latitude:  r.DropoffLatitude,
			Longitude: r.DropoffLongitude,
		},
		Total:     r.Total,
		Currency:  r.Currency,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.TransporterID != nil {
		transporterID := r.TransporterID.String()
		summary.TransporterID = &transporterID
	}
	return summary
}
