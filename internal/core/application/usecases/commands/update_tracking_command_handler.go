package commands

import (
	"context"
	"fmt"
	"time"

	"haulage/internal/core/domain/model/order"
)

// UpdateTrackingCommandHandler handles transporter position reports.
// Only the assigned transporter may report, and only while the order is in
// the in-transit family of statuses.
type UpdateTrackingCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateTrackingCommandHandler creates a handler for position reports.
func NewUpdateTrackingCommandHandler(uowFactory OrderUoWFactory) UpdateTrackingCommandHandler {
	return UpdateTrackingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes a position report and returns the updated order.
func (h *UpdateTrackingCommandHandler) Handle(ctx context.Context, cmd UpdateTrackingCommand) (*order.Order, error) {
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

	if !aggregate.IsAssignedTransporter(cmd.TransporterID()) {
		return nil, fmt.Errorf("%w: only the assigned transporter may report positions", ErrNotAuthorized)
	}

	if err = aggregate.UpdateTracking(cmd.Point(), cmd.AccuracyMeters(), cmd.ETA(), time.Now().UTC()); err != nil {
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
