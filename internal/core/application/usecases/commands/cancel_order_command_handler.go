package commands

import (
	"context"
	"fmt"
	"time"

	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/ports"
)

// CancelOrderCommandHandler handles order cancellations.
//
// Only a party to the order may cancel it, and only while the state machine
// still permits cancelling. If a transporter was already assigned, their active
// order counter is released in the same transaction.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewCancelOrderCommandHandler creates a handler for order cancellations.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	dispatcher ports.NotificationDispatcher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes a cancellation command and returns the cancelled order.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	if !aggregate.IsParty(cmd.ActorID()) {
		return nil, fmt.Errorf("%w: only a party may cancel the order", ErrNotAuthorized)
	}

	assignedTransporter := aggregate.TransporterID()

	now := time.Now().UTC()
	if err = aggregate.Cancel(cmd.ActorID(), cmd.Reason(), cmd.Description(), now); err != nil {
		return nil, err
	}

	if assignedTransporter != nil {
		if err = releaseActiveOrder(ctx, uow, *assignedTransporter, now); err != nil {
			return nil, err
		}
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	_ = h.dispatcher.Notify(ctx, ports.EventOrderCancelled, aggregate, notifyParties(aggregate))

	return aggregate, nil
}
