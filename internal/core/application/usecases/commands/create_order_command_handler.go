package commands

import (
	"context"
	"fmt"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/domain/services"
	"haulage/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for placing orders.
//
// The handler prices the delivery deterministically from the straight-line
// distance between the endpoints, creates the order in pending status, and
// announces it to the marketplace after the transaction commits.
type CreateOrderCommandHandler struct {
	uowFactory    UoWFactory
	pricingEngine services.PricingEngine
	dispatcher    ports.NotificationDispatcher
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	pricingEngine services.PricingEngine,
	dispatcher ports.NotificationDispatcher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		pricingEngine: pricingEngine,
		dispatcher:    dispatcher,
	}
}

// Handle processes the order placement command.
// Verifies the acting user exists and holds the customer role, prices the
// order, and persists it in pending status. The created order with its price
// breakdown is returned to the caller.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	distanceKm, err := cmd.Pickup().Point().DistanceKmTo(cmd.Dropoff().Point())
	if err != nil {
		return nil, err
	}

	price, err := h.pricingEngine.Quote(cmd.ServiceType(), distanceKm, cmd.Package())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.ServiceType(),
		cmd.Priority(),
		cmd.Pickup(),
		cmd.Dropoff(),
		cmd.Package(),
		price,
		cmd.ScheduledPickupAt(),
		now,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customer, err := uow.UserRepository().Get(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}
	if !customer.IsCustomer() {
		return nil, fmt.Errorf("%w: user %s has role %s, orders are placed by customers",
			ErrNotAuthorized, customer.ID(), customer.Type())
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// Notification failures are the dispatcher's problem, not the order's.
	_ = h.dispatcher.Notify(ctx, ports.EventOrderCreated, aggregate, []kernel.UUID{cmd.CustomerID()})

	return aggregate, nil
}
