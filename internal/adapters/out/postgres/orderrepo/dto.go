// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. An order aggregate is stored as a single row; the
// append-only collections (history, route, ratings) travel with it as jsonb
// documents, so the whole aggregate is read and written atomically.
package orderrepo

import (
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed for the hot paths: claimable order scans (status + transporter),
// per-user listings, and the stale order broadcast (status + created_at).
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber   string     `gorm:"type:varchar(16);uniqueIndex"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;index"`
	TransporterID *uuid.UUID `gorm:"type:uuid;index"`

	ServiceType string `gorm:"type:varchar(16)"`
	Priority    string `gorm:"type:varchar(8)"`
	Status      string `gorm:"type:varchar(24);index:idx_orders_status_created"`

	Pickup  LocationDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff LocationDTO `gorm:"embedded;embeddedPrefix:dropoff_"`

	WeightKg           float64
	LengthCm           float64
	WidthCm            float64
	HeightCm           float64
	Fragile            bool
	PackageDescription string `gorm:"type:text"`

	BaseFee     float64
	DistanceKm  float64
	DistanceFee float64
	Surcharges  []SurchargeDoc `gorm:"type:jsonb;serializer:json"`
	Tax         float64
	Total       float64
	Currency    string `gorm:"type:varchar(3)"`

	History []HistoryDoc `gorm:"type:jsonb;serializer:json"`

	Tracking *TrackingDoc `gorm:"type:jsonb;serializer:json"`
	Route    []PointDoc   `gorm:"type:jsonb;serializer:json"`
	ETA      *time.Time   `gorm:"column:eta"`

	CustomerRating    *RatingDoc       `gorm:"type:jsonb;serializer:json"`
	TransporterRating *RatingDoc       `gorm:"type:jsonb;serializer:json"`
	Cancellation      *CancellationDoc `gorm:"type:jsonb;serializer:json"`

	// Timestamps come from the aggregate, never from gorm's auto-tracking.
	CreatedAt         time.Time `gorm:"autoCreateTime:false;index:idx_orders_status_created"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime:false"`
	AcceptedAt        *time.Time
	ScheduledPickupAt *time.Time
	EstimatedPickupAt *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO represents an embedded address with its coordinates.
type LocationDTO struct {
	Address   string  `gorm:"type:text"`
	Latitude  float64 `gorm:"type:double precision"`
	Longitude float64 `gorm:"type:double precision"`
}

// The jsonb document shapes. Field names are part of the stored format.

type SurchargeDoc struct {
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type HistoryDoc struct {
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
	ActorID uuid.UUID `json:"actor_id"`
	Note    string    `json:"note,omitempty"`
}

type TrackingDoc struct {
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	AccuracyMeters float64   `json:"accuracy_meters"`
	RecordedAt     time.Time `json:"recorded_at"`
}

type PointDoc struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type RatingDoc struct {
	Score    int       `json:"score"`
	Feedback string    `json:"feedback,omitempty"`
	RatedBy  uuid.UUID `json:"rated_by"`
	At       time.Time `json:"at"`
}

type CancellationDoc struct {
	ActorID     uuid.UUID `json:"actor_id"`
	Reason      string    `json:"reason"`
	Description string    `json:"description,omitempty"`
	At          time.Time `json:"at"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var transporterID *uuid.UUID
	if id := aggregate.TransporterID(); id != nil {
		raw := id.Bytes()
		transporterID = &raw
	}

	pkg := aggregate.Package()
	price := aggregate.Price()

	dto := OrderDTO{
		ID:            aggregate.ID().Bytes(),
		OrderNumber:   aggregate.OrderNumber(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		TransporterID: transporterID,

		ServiceType: aggregate.ServiceType().String(),
		Priority:    aggregate.Priority().String(),
		Status:      aggregate.Status().String(),

		Pickup:  locationToDTO(aggregate.Pickup()),
		Dropoff: locationToDTO(aggregate.Dropoff()),

		WeightKg:           pkg.WeightKg(),
		LengthCm:           pkg.Dimensions().LengthCm,
		WidthCm:            pkg.Dimensions().WidthCm,
		HeightCm:           pkg.Dimensions().HeightCm,
		Fragile:            pkg.Fragile(),
		PackageDescription: pkg.Description(),

		BaseFee:     price.BaseFee,
		DistanceKm:  price.DistanceKm,
		DistanceFee: price.DistanceFee,
		Tax:         price.Tax,
		Total:       price.Total,
		Currency:    price.Currency,

		ETA: aggregate.ETA(),

		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
		AcceptedAt:        aggregate.AcceptedAt(),
		ScheduledPickupAt: aggregate.ScheduledPickupAt(),
		EstimatedPickupAt: aggregate.EstimatedPickupAt(),
	}

	for _, s := range price.Surcharges {
		dto.Surcharges = append(dto.Surcharges, SurchargeDoc(s))
	}

	dto.History = make([]HistoryDoc, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		dto.History = append(dto.History, HistoryDoc{
			Status:  entry.Status.String(),
			At:      entry.At,
			ActorID: entry.ActorID.Bytes(),
			Note:    entry.Note,
		})
	}

	if tracking := aggregate.Tracking(); tracking != nil {
		dto.Tracking = &TrackingDoc{
			Latitude:       tracking.Point.Latitude(),
			Longitude:      tracking.Point.Longitude(),
			AccuracyMeters: tracking.AccuracyMeters,
			RecordedAt:     tracking.RecordedAt,
		}
	}

	for _, point := range aggregate.Route() {
		dto.Route = append(dto.Route, PointDoc{
			Latitude:  point.Latitude(),
			Longitude: point.Longitude(),
		})
	}

	dto.CustomerRating = ratingToDoc(aggregate.CustomerRating())
	dto.TransporterRating = ratingToDoc(aggregate.TransporterRating())

	if cancellation := aggregate.Cancellation(); cancellation != nil {
		dto.Cancellation = &CancellationDoc{
			ActorID:     cancellation.ActorID.Bytes(),
			Reason:      cancellation.Reason,
			Description: cancellation.Description,
			At:          cancellation.At,
		}
	}

	return dto
}

func locationToDTO(location kernel.Location) LocationDTO {
	return LocationDTO{
		Address:   location.Address(),
		Latitude:  location.Point().Latitude(),
		Longitude: location.Point().Longitude(),
	}
}

func ratingToDoc(rating *order.Rating) *RatingDoc {
	if rating == nil {
		return nil
	}
	return &RatingDoc{
		Score:    rating.Score,
		Feedback: rating.Feedback,
		RatedBy:  rating.RatedBy.Bytes(),
		At:       rating.At,
	}
}

// toDomain converts a database DTO back to an order domain aggregate,
// revalidating the invariants via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var transporterID *kernel.UUID
	if dto.TransporterID != nil {
		tID, transporterErr := kernel.UUIDFromBytes((*dto.TransporterID)[:])
		if transporterErr != nil {
			return nil, transporterErr
		}
		transporterID = &tID
	}

	pickup, err := locationFromDTO(dto.Pickup)
	if err != nil {
		return nil, err
	}
	dropoff, err := locationFromDTO(dto.Dropoff)
	if err != nil {
		return nil, err
	}

	pkg, err := order.NewPackage(dto.WeightKg, order.Dimensions{
		LengthCm: dto.LengthCm,
		WidthCm:  dto.WidthCm,
		HeightCm: dto.HeightCm,
	}, dto.Fragile, dto.PackageDescription)
	if err != nil {
		return nil, err
	}

	price := order.PriceBreakdown{
		BaseFee:     dto.BaseFee,
		DistanceKm:  dto.DistanceKm,
		DistanceFee: dto.DistanceFee,
		Tax:         dto.Tax,
		Total:       dto.Total,
		Currency:    dto.Currency,
	}
	for _, s := range dto.Surcharges {
		price.Surcharges = append(price.Surcharges, order.Surcharge(s))
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, doc := range dto.History {
		actorID, actorErr := kernel.UUIDFromBytes(doc.ActorID[:])
		if actorErr != nil {
			return nil, actorErr
		}
		history = append(history, order.HistoryEntry{
			Status:  order.Status(doc.Status),
			At:      doc.At,
			ActorID: actorID,
			Note:    doc.Note,
		})
	}

	var tracking *order.TrackingPoint
	if dto.Tracking != nil {
		point, pointErr := kernel.NewGeoPoint(dto.Tracking.Latitude, dto.Tracking.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		tracking = &order.TrackingPoint{
			Point:          point,
			AccuracyMeters: dto.Tracking.AccuracyMeters,
			RecordedAt:     dto.Tracking.RecordedAt,
		}
	}

	route := make([]kernel.GeoPoint, 0, len(dto.Route))
	for _, doc := range dto.Route {
		point, pointErr := kernel.NewGeoPoint(doc.Latitude, doc.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		route = append(route, point)
	}

	customerRating, err := ratingFromDoc(dto.CustomerRating)
	if err != nil {
		return nil, err
	}
	transporterRating, err := ratingFromDoc(dto.TransporterRating)
	if err != nil {
		return nil, err
	}

	var cancellation *order.Cancellation
	if dto.Cancellation != nil {
		actorID, actorErr := kernel.UUIDFromBytes(dto.Cancellation.ActorID[:])
		if actorErr != nil {
			return nil, actorErr
		}
		cancellation = &order.Cancellation{
			ActorID:     actorID,
			Reason:      dto.Cancellation.Reason,
			Description: dto.Cancellation.Description,
			At:          dto.Cancellation.At,
		}
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                id,
		OrderNumber:       dto.OrderNumber,
		CustomerID:        customerID,
		TransporterID:     transporterID,
		ServiceType:       order.ServiceType(dto.ServiceType),
		Priority:          order.Priority(dto.Priority),
		Pickup:            pickup,
		Dropoff:           dropoff,
		Package:           pkg,
		Price:             price,
		Status:            order.Status(dto.Status),
		History:           history,
		Tracking:          tracking,
		Route:             route,
		ETA:               dto.ETA,
		CustomerRating:    customerRating,
		TransporterRating: transporterRating,
		Cancellation:      cancellation,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
		AcceptedAt:        dto.AcceptedAt,
		ScheduledPickupAt: dto.ScheduledPickupAt,
		EstimatedPickupAt: dto.EstimatedPickupAt,
	})
}

func locationFromDTO(dto LocationDTO) (kernel.Location, error) {
	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return kernel.Location{}, err
	}
	return kernel.NewLocation(dto.Address, point)
}

func ratingFromDoc(doc *RatingDoc) (*order.Rating, error) {
	if doc == nil {
		return nil, nil
	}
	ratedBy, err := kernel.UUIDFromBytes(doc.RatedBy[:])
	if err != nil {
		return nil, err
	}
	return &order.Rating{
		Score:    doc.Score,
		Feedback: doc.Feedback,
		RatedBy:  ratedBy,
		At:       doc.At,
	}, nil
}
