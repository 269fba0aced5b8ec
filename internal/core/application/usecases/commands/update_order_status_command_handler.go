package commands

import (
	"context"
	"fmt"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/ports"
)

// UpdateOrderStatusCommandHandler handles lifecycle transitions on claimed orders.
//
// Authorization:
//   - forward transitions are reserved for the assigned transporter
//   - the failed -> pending retry may be driven by the customer or the
//     assigned transporter
//
// When an order leaves the transporter's hands (delivered, or reopened for
// another attempt), the transporter's active order counter is released in the
// same transaction.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewUpdateOrderStatusCommandHandler creates a handler for lifecycle transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	dispatcher ports.NotificationDispatcher,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes a status transition command and returns the updated order.
func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context, cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
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

	if err = authorizeTransition(aggregate, cmd.ActorID(), cmd.NewStatus()); err != nil {
		return nil, err
	}

	// The retry transition clears the assignment, so capture it first.
	assignedTransporter := aggregate.TransporterID()

	now := time.Now().UTC()
	if err = aggregate.TransitionTo(cmd.NewStatus(), cmd.ActorID(), cmd.Note(), cmd.Location(), now); err != nil {
		return nil, err
	}

	if releasesTransporter(cmd.NewStatus()) && assignedTransporter != nil {
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

	_ = h.dispatcher.Notify(ctx, ports.EventOrderStatusChanged, aggregate, notifyParties(aggregate))

	return aggregate, nil
}

func authorizeTransition(aggregate *order.Order, actorID kernel.UUID, newStatus order.Status) error {
	if newStatus == order.StatusPending {
		if !aggregate.CustomerID().IsEqual(actorID) && !aggregate.IsAssignedTransporter(actorID) {
			return fmt.Errorf("%w: only a party may reopen a failed order", ErrNotAuthorized)
		}
		return nil
	}

	if !aggregate.IsAssignedTransporter(actorID) {
		return fmt.Errorf("%w: only the assigned transporter may advance the order", ErrNotAuthorized)
	}
	return nil
}

// releasesTransporter reports whether the transition frees the assigned
// transporter: the delivery completed, or the order was reopened for claiming.
func releasesTransporter(newStatus order.Status) bool {
	return newStatus == order.StatusDelivered || newStatus == order.StatusPending
}

func releaseActiveOrder(ctx context.Context, uow UoW, transporterID kernel.UUID, now time.Time) error {
	transporter, err := uow.UserRepository().GetForUpdate(ctx, transporterID)
	if err != nil {
		return err
	}
	if err = transporter.DecrementActiveOrders(now); err != nil {
		return err
	}
	return uow.UserRepository().Update(ctx, transporter)
}

func notifyParties(aggregate *order.Order) []kernel.UUID {
	recipients := []kernel.UUID{aggregate.CustomerID()}
	if transporterID := aggregate.TransporterID(); transporterID != nil {
		recipients = append(recipients, *transporterID)
	}
	return recipients
}
