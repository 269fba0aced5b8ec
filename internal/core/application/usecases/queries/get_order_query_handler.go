package queries

import (
	"context"
	"errors"

	"haulage/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves the full detail view of one order.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order detail queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound if no order with
// the given identifier exists and ErrAccessDenied when the requester is not a
// party to it.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var row orderRow
	err := h.db.WithContext(ctx).
		Where("id = ?", query.OrderID().Bytes()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
		}
		return GetOrderQueryResponse{}, err
	}

	if !row.isParty(query.RequesterID().Bytes()) {
		return GetOrderQueryResponse{}, ErrAccessDenied
	}

	return row.toDetailResponse(), nil
}
