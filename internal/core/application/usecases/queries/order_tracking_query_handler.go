package queries

import (
	"context"
	"errors"

	"haulage/internal/pkg/errs"

	"gorm.io/gorm"
)

// OrderTrackingQueryHandler retrieves the live tracking view of one order.
type OrderTrackingQueryHandler struct {
	db *gorm.DB
}

// NewOrderTrackingQueryHandler creates a handler for tracking queries.
func NewOrderTrackingQueryHandler(db *gorm.DB) OrderTrackingQueryHandler {
	return OrderTrackingQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound if no order with
// the given identifier exists and ErrAccessDenied when the requester is not a
// party to it.
func (h OrderTrackingQueryHandler) Handle(
	ctx context.Context, query OrderTrackingQuery,
) (OrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderTrackingQueryResponse{}, err
	}

	var row orderRow
	err := h.db.WithContext(ctx).
		Select("id", "order_number", "customer_id", "transporter_id", "status",
			"tracking", "route", "eta", "estimated_pickup_at", "updated_at").
		Where("id = ?", query.OrderID().Bytes()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderTrackingQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
		}
		return OrderTrackingQueryResponse{}, err
	}

	if !row.isParty(query.RequesterID().Bytes()) {
		return OrderTrackingQueryResponse{}, ErrAccessDenied
	}

	resp := OrderTrackingQueryResponse{
		OrderID:           row.ID.String(),
		OrderNumber:       row.OrderNumber,
		Status:            row.Status,
		ETA:               row.ETA,
		EstimatedPickupAt: row.EstimatedPickupAt,
		UpdatedAt:         row.UpdatedAt,
	}

	if row.Tracking != nil {
		resp.Tracking = &TrackingPointResponse{
			Latitude:       row.Tracking.Latitude,
			Longitude:      row.Tracking.Longitude,
			AccuracyMeters: row.Tracking.AccuracyMeters,
			RecordedAt:     row.Tracking.RecordedAt,
		}
	}

	resp.Route = make([]RoutePointResponse, 0, len(row.Route))
	for _, point := range row.Route {
		resp.Route = append(resp.Route, RoutePointResponse(point))
	}

	return resp, nil
}
