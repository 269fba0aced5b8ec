package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler lists the orders a user participates in.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order list queries.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the query and returns order summaries, newest first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	userID := query.UserID().Bytes()
	tx := h.db.WithContext(ctx).
		Model(&orderRow{}).
		Where("customer_id = ? OR transporter_id = ?", userID, userID)

	if status := query.Status(); status != nil {
		tx = tx.Where("status = ?", status.String())
	}
	if serviceType := query.ServiceType(); serviceType != nil {
		tx = tx.Where("service_type = ?", serviceType.String())
	}

	var rows []orderRow
	err := tx.Order("created_at DESC").
		Limit(query.Limit()).
		Offset(query.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]OrderSummaryResponse, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, row.toSummaryResponse())
	}

	return summaries, nil
}
