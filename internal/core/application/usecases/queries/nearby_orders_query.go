package queries

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

var ErrNearbyOrdersQueryIsNotConstructed = errors.New(
	"NearbyOrdersQuery must be created via NewNearbyOrdersQuery constructor",
)

const (
	nearbyOrdersDefaultRadiusKm = 10.0
	nearbyOrdersMaxRadiusKm     = 100.0
	nearbyOrdersDefaultLimit    = 20
	nearbyOrdersMaxLimit        = 100
)

// NearbyOrdersQuery finds unclaimed pending orders whose pickup point lies
// within a radius of the transporter's position, closest first, optionally
// restricted to one service type.
type NearbyOrdersQuery struct {
	transporterID kernel.UUID
	center        kernel.GeoPoint
	radiusKm      float64
	serviceType   *order.ServiceType
	limit         int

	guard guard.ConstructorGuard
}

// NewNearbyOrdersQuery creates a query for claimable orders around a position.
// A nil service type means all service types. A non-positive radius falls back
// to the default; both radius and limit are capped at their maximums.
func NewNearbyOrdersQuery(
	transporterID kernel.UUID,
	center kernel.GeoPoint,
	radiusKm float64,
	serviceType *order.ServiceType,
	limit int,
) (NearbyOrdersQuery, error) {
	if err := transporterID.Validate(); err != nil {
		return NearbyOrdersQuery{}, err
	}
	if err := center.Validate(); err != nil {
		return NearbyOrdersQuery{}, err
	}
	if serviceType != nil {
		if err := serviceType.Validate(); err != nil {
			return NearbyOrdersQuery{}, err
		}
	}
	if radiusKm < 0 {
		return NearbyOrdersQuery{}, errs.NewValueIsInvalidError("radiusKm")
	}

	if radiusKm == 0 {
		radiusKm = nearbyOrdersDefaultRadiusKm
	}
	if radiusKm > nearbyOrdersMaxRadiusKm {
		radiusKm = nearbyOrdersMaxRadiusKm
	}
	if limit <= 0 {
		limit = nearbyOrdersDefaultLimit
	}
	if limit > nearbyOrdersMaxLimit {
		limit = nearbyOrdersMaxLimit
	}

	return NearbyOrdersQuery{
		transporterID: transporterID,
		center:        center,
		radiusKm:      radiusKm,
		serviceType:   serviceType,
		limit:         limit,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q NearbyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrNearbyOrdersQueryIsNotConstructed)
}

// TransporterID returns the identifier of the searching transporter.
func (q NearbyOrdersQuery) TransporterID() kernel.UUID {
	return q.transporterID
}

// Center returns the transporter's position.
func (q NearbyOrdersQuery) Center() kernel.GeoPoint {
	return q.center
}

// RadiusKm returns the search radius in kilometers.
func (q NearbyOrdersQuery) RadiusKm() float64 {
	return q.radiusKm
}

// ServiceType returns the optional service type filter.
func (q NearbyOrdersQuery) ServiceType() *order.ServiceType {
	return q.serviceType
}

// Limit returns the maximum number of results.
func (q NearbyOrdersQuery) Limit() int {
	return q.limit
}

// NearbyOrderResponse is one claimable order near the transporter, annotated
// with the straight-line distance from the transporter to the pickup point.
type NearbyOrderResponse struct {
	OrderSummaryResponse

	PickupDistanceKm float64 `json:"pickup_distance_km"`
}
