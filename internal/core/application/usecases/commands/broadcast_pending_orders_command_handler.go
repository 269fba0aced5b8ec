package commands

import (
	"context"
	"time"

	"haulage/internal/core/ports"
)

// BroadcastPendingOrdersCommandHandler re-announces stale pending orders to the
// marketplace so transporters who missed the original announcement get another
// chance to claim them.
//
// The read and the announcements are deliberately not atomic: an order claimed
// between the two produces a harmless duplicate announcement, and claim
// correctness is enforced at acceptance time anyway.
type BroadcastPendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewBroadcastPendingOrdersCommandHandler creates a handler for stale order
// re-announcement.
func NewBroadcastPendingOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
) BroadcastPendingOrdersCommandHandler {
	return BroadcastPendingOrdersCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle re-announces up to the command's limit of stale pending orders and
// returns how many were announced.
func (h *BroadcastPendingOrdersCommandHandler) Handle(
	ctx context.Context, cmd BroadcastPendingOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().UTC().Add(-cmd.StaleAfter())
	stale, err := uow.OrderRepository().GetPendingCreatedBefore(ctx, cutoff, cmd.Limit())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, aggregate := range stale {
		// Broadcast announcements carry no recipient list; subscribers filter
		// by their own area of interest.
		_ = h.dispatcher.Notify(ctx, ports.EventOrderBroadcast, aggregate, nil)
	}

	return len(stale), nil
}
