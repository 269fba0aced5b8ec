package queries

import (
	"errors"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

const (
	listOrdersDefaultLimit = 20
	listOrdersMaxLimit     = 100
)

// ListOrdersQuery retrieves the orders a user participates in, newest first.
// The user sees orders where they are the customer or the assigned transporter,
// optionally filtered by status and service type.
type ListOrdersQuery struct {
	userID      kernel.UUID
	status      *order.Status
	serviceType *order.ServiceType
	limit       int
	offset      int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query for a user's orders.
// Nil filters mean all statuses / all service types. A non-positive limit
// falls back to the default page size; the limit is capped at the maximum
// page size.
func NewListOrdersQuery(
	userID kernel.UUID, status *order.Status, serviceType *order.ServiceType, limit, offset int,
) (ListOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if serviceType != nil {
		if err := serviceType.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if offset < 0 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("offset")
	}

	if limit <= 0 {
		limit = listOrdersDefaultLimit
	}
	if limit > listOrdersMaxLimit {
		limit = listOrdersMaxLimit
	}

	return ListOrdersQuery{
		userID:      userID,
		status:      status,
		serviceType: serviceType,
		limit:       limit,
		offset:      offset,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// UserID returns the identifier of the user whose orders are listed.
func (q ListOrdersQuery) UserID() kernel.UUID {
	return q.userID
}

// Status returns the optional status filter.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

// ServiceType returns the optional service type filter.
func (q ListOrdersQuery) ServiceType() *order.ServiceType {
	return q.serviceType
}

// Limit returns the page size.
func (q ListOrdersQuery) Limit() int {
	return q.limit
}

// Offset returns the page offset.
func (q ListOrdersQuery) Offset() int {
	return q.offset
}

// OrderSummaryResponse is the list view of one order.
type OrderSummaryResponse struct {
	ID            string           `json:"id"`
	OrderNumber   string           `json:"order_number"`
	CustomerID    string           `json:"customer_id"`
	TransporterID *string          `json:"transporter_id,omitempty"`
	ServiceType   string           `json:"service_type"`
	Priority      string           `json:"priority"`
	Status        string           `json:"status"`
	Pickup        LocationResponse `json:"pickup"`
	Dropoff       LocationResponse `json:"dropoff"`
	Total         float64          `json:"total"`
	Currency      string           `json:"currency"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
