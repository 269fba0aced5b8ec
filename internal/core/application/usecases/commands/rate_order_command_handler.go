package commands

import (
	"context"
	"fmt"
	"time"

	"haulage/internal/core/domain/model/order"
)

// RateOrderCommandHandler handles post-delivery ratings.
//
// The acting user's side of the order determines which rating slot is written:
// the customer rates the transporter's work and the transporter rates the
// customer. Each slot is write-once, enforced by the aggregate.
type RateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRateOrderCommandHandler creates a handler for rating submissions.
func NewRateOrderCommandHandler(uowFactory OrderUoWFactory) RateOrderCommandHandler {
	return RateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes a rating command and returns the updated order.
func (h *RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch {
	case aggregate.CustomerID().IsEqual(cmd.ActorID()):
		err = aggregate.RateByCustomer(cmd.Score(), cmd.Feedback(), now)
	case aggregate.IsAssignedTransporter(cmd.ActorID()):
		err = aggregate.RateByTransporter(cmd.Score(), cmd.Feedback(), now)
	default:
		err = fmt.Errorf("%w: only a party may rate the order", ErrNotAuthorized)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
