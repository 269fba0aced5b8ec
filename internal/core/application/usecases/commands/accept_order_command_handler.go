package commands

import (
	"context"
	"fmt"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/ports"
)

// AcceptOrderCommandHandler coordinates the single-winner claim on a pending order.
//
// Competing transporters race for the same order; exactly one claim may succeed.
// The handler serializes the race by locking the order row for the duration of
// the transaction: the first transaction to lock it applies the claim and
// commits, every later one observes the committed accepted state and fails with
// order.ErrNoLongerAvailable. The transporter's active order counter moves in
// the same transaction, so a crash between the two writes cannot leave them
// inconsistent.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewAcceptOrderCommandHandler creates a handler for order claims.
func NewAcceptOrderCommandHandler(
	uowFactory UoWFactory,
	dispatcher ports.NotificationDispatcher,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes a transporter's claim on a pending order.
//
// The claiming user must hold the transporter role; an unverified or paused
// transporter is rejected with a *TransporterNotEligibleError. On success the
// accepted order is returned; if the order was already claimed or cancelled,
// the error unwraps to order.ErrNoLongerAvailable.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
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

	transporter, err := uow.UserRepository().GetForUpdate(ctx, cmd.TransporterID())
	if err != nil {
		return nil, err
	}
	if !transporter.IsTransporter() {
		return nil, fmt.Errorf("%w: user %s is not a transporter", ErrNotAuthorized, transporter.ID())
	}
	if !transporter.IsVerified() {
		return nil, NewTransporterNotEligibleError("transporter is not verified")
	}
	if !transporter.IsAvailable() {
		return nil, NewTransporterNotEligibleError("transporter is not available")
	}

	aggregate, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err = aggregate.Accept(cmd.TransporterID(), cmd.EstimatedPickupAt(), now); err != nil {
		return nil, err
	}

	if err = transporter.IncrementActiveOrders(now); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}
	if err = uow.UserRepository().Update(ctx, transporter); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	_ = h.dispatcher.Notify(ctx, ports.EventOrderAccepted, aggregate,
		[]kernel.UUID{aggregate.CustomerID(), cmd.TransporterID()})
	// No recipient list: the taken announcement fans out to every transporter
	// still watching the order.
	_ = h.dispatcher.Notify(ctx, ports.EventOrderTaken, aggregate, nil)

	return aggregate, nil
}
