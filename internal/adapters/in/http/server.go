// Package http exposes the order marketplace over a JSON REST API.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"haulage/internal/core/application/usecases/commands"
	"haulage/internal/core/application/usecases/queries"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderResponse is the JSON view of an order returned by command endpoints.
type OrderResponse struct {
	ID            string     `json:"id"`
	OrderNumber   string     `json:"order_number"`
	Status        string     `json:"status"`
	CustomerID    string     `json:"customer_id"`
	TransporterID *string    `json:"transporter_id,omitempty"`
	Total         float64    `json:"total"`
	Currency      string     `json:"currency"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	AcceptedAt    *time.Time `json:"accepted_at,omitempty"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	acceptOrderHandler       commands.AcceptOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	rateOrderHandler         commands.RateOrderCommandHandler
	updateTrackingHandler    commands.UpdateTrackingCommandHandler

	// Query handlers
	getOrderHandler      queries.GetOrderQueryHandler
	listOrdersHandler    queries.ListOrdersQueryHandler
	nearbyOrdersHandler  queries.NearbyOrdersQueryHandler
	orderTrackingHandler queries.OrderTrackingQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	rateOrderHandler commands.RateOrderCommandHandler,
	updateTrackingHandler commands.UpdateTrackingCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	nearbyOrdersHandler queries.NearbyOrdersQueryHandler,
	orderTrackingHandler queries.OrderTrackingQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		acceptOrderHandler:       acceptOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		cancelOrderHandler:       cancelOrderHandler,
		rateOrderHandler:         rateOrderHandler,
		updateTrackingHandler:    updateTrackingHandler,
		getOrderHandler:          getOrderHandler,
		listOrdersHandler:        listOrdersHandler,
		nearbyOrdersHandler:      nearbyOrdersHandler,
		orderTrackingHandler:     orderTrackingHandler,
	}
}

// RegisterRoutes attaches all order endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/nearby", s.GetNearbyOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/accept", s.AcceptOrder)
	api.POST("/orders/:orderId/status", s.UpdateOrderStatus)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.POST("/orders/:orderId/rating", s.RateOrder)
	api.POST("/orders/:orderId/tracking", s.UpdateTracking)
	api.GET("/orders/:orderId/tracking", s.GetOrderTracking)
}

// CreateOrder handles POST /api/v1/orders - places a new delivery order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return badRequest(ctx, "Invalid request body: "+err.Error())
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	pickup, err := locationFromRequest(req.Pickup)
	if err != nil {
		return badRequest(ctx, "Invalid pickup location: "+err.Error())
	}
	dropoff, err := locationFromRequest(req.Dropoff)
	if err != nil {
		return badRequest(ctx, "Invalid dropoff location: "+err.Error())
	}

	pkg, err := order.NewPackage(
		req.Package.WeightKg,
		order.Dimensions{
			LengthCm: req.Package.LengthCm,
			WidthCm:  req.Package.WidthCm,
			HeightCm: req.Package.HeightCm,
		},
		req.Package.Fragile,
		req.Package.Description,
	)
	if err != nil {
		return badRequest(ctx, "Invalid package: "+err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		customerID,
		order.ServiceType(req.ServiceType),
		order.Priority(req.Priority),
		pickup,
		dropoff,
		pkg,
		req.ScheduledPickupAt,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	aggregate, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(aggregate))
}

// GetOrder handles GET /api/v1/orders/:orderId - retrieves full order detail.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	requesterID, err := kernel.UUIDFromString(ctx.QueryParam("requester_id"))
	if err != nil {
		return badRequest(ctx, "Invalid requester id")
	}

	query, err := queries.NewGetOrderQuery(orderID, requesterID)
	if err != nil {
		return badRequest(ctx, "Invalid query parameters: "+err.Error())
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListOrders handles GET /api/v1/orders - lists orders a user participates in.
func (s *Server) ListOrders(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.QueryParam("user_id"))
	if err != nil {
		return badRequest(ctx, "Invalid user id")
	}

	var status *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		s := order.Status(raw)
		if validateErr := s.Validate(); validateErr != nil {
			return badRequest(ctx, "Invalid status filter")
		}
		status = &s
	}

	serviceType, err := serviceTypeParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid service type filter")
	}

	query, err := queries.NewListOrdersQuery(userID, status, serviceType, intParam(ctx, "limit"), intParam(ctx, "offset"))
	if err != nil {
		return badRequest(ctx, "Invalid query parameters: "+err.Error())
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetNearbyOrders handles GET /api/v1/orders/nearby - finds pending orders
// within a radius of the transporter's position.
func (s *Server) GetNearbyOrders(ctx echo.Context) error {
	transporterID, err := kernel.UUIDFromString(ctx.QueryParam("transporter_id"))
	if err != nil {
		return badRequest(ctx, "Invalid transporter id")
	}

	latitude, err := strconv.ParseFloat(ctx.QueryParam("latitude"), 64)
	if err != nil {
		return badRequest(ctx, "Invalid latitude")
	}
	longitude, err := strconv.ParseFloat(ctx.QueryParam("longitude"), 64)
	if err != nil {
		return badRequest(ctx, "Invalid longitude")
	}

	center, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return badRequest(ctx, "Invalid coordinates: "+err.Error())
	}

	radiusKm := 0.0
	if raw := ctx.QueryParam("radius_km"); raw != "" {
		if radiusKm, err = strconv.ParseFloat(raw, 64); err != nil {
			return badRequest(ctx, "Invalid radius")
		}
	}

	serviceType, err := serviceTypeParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid service type filter")
	}

	query, err := queries.NewNearbyOrdersQuery(transporterID, center, radiusKm, serviceType, intParam(ctx, "limit"))
	if err != nil {
		return badRequest(ctx, "Invalid query parameters: "+err.Error())
	}

	orders, err := s.nearbyOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// AcceptOrder handles POST /api/v1/orders/:orderId/accept - claims a pending
// order for a transporter. Exactly one concurrent claimant succeeds; the rest
// receive a conflict.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req AcceptOrderRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return badRequest(ctx, "Invalid request body: "+err.Error())
	}

	transporterID, err := kernel.UUIDFromString(req.TransporterID)
	if err != nil {
		return badRequest(ctx, "Invalid transporter id")
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, transporterID, req.EstimatedPickupAt)
	if err != nil {
		return badRequest(ctx, "Invalid claim data: "+err.Error())
	}

	aggregate, err := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(aggregate))
}

// UpdateOrderStatus handles POST /api/v1/orders/:orderId/status - moves the
// order along its lifecycle. Claiming and cancelling have dedicated endpoints.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req UpdateStatusRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return badRequest(ctx, "Invalid request body: "+err.Error())
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id")
	}

	var location *kernel.GeoPoint
	if req.Location != nil {
		point, pointErr := kernel.NewGeoPoint(req.Location.Latitude, req.Location.Longitude)
		if pointErr != nil {
			return badRequest(ctx, "Invalid location: "+pointErr.Error())
		}
		location = &point
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, actorID, order.Status(req.Status), req.Note, location)
	if err != nil {
		return badRequest(ctx, "Invalid status data: "+err.Error())
	}

	aggregate, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(aggregate))
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req CancelOrderRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return badRequest(ctx, "Invalid request body: "+err.Error())
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actorID, req.Reason, req.Description)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation data: "+err.Error())
	}

	aggregate, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(aggregate))
}

// RateOrder handles POST /api/v1/orders/:orderId/rating.
func (s *Server) RateOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req RateOrderRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return badRequest(ctx, "Invalid request body: "+err.Error())
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id")
	}

	cmd, err := commands.NewRateOrderCommand(orderID, actorID, req.Score, req.Feedback)
	if err != nil {
		return badRequest(ctx, "Invalid rating data: "+err.Error())
	}

	aggregate, err := s.rateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(aggregate))
}

// UpdateTracking handles POST /api/v1/orders/:orderId/tracking - records the
// transporter's position report.
func (s *Server) UpdateTracking(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req UpdateTrackingRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return badRequest(ctx, "Invalid request body: "+err.Error())
	}

	transporterID, err := kernel.UUIDFromString(req.TransporterID)
	if err != nil {
		return badRequest(ctx, "Invalid transporter id")
	}

	point, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid coordinates: "+err.Error())
	}

	cmd, err := commands.NewUpdateTrackingCommand(orderID, transporterID, point, req.AccuracyMeters, req.ETA)
	if err != nil {
		return badRequest(ctx, "Invalid tracking data: "+err.Error())
	}

	aggregate, err := s.updateTrackingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(aggregate))
}

// GetOrderTracking handles GET /api/v1/orders/:orderId/tracking.
func (s *Server) GetOrderTracking(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	requesterID, err := kernel.UUIDFromString(ctx.QueryParam("requester_id"))
	if err != nil {
		return badRequest(ctx, "Invalid requester id")
	}

	query, err := queries.NewOrderTrackingQuery(orderID, requesterID)
	if err != nil {
		return badRequest(ctx, "Invalid query parameters: "+err.Error())
	}

	response, err := s.orderTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

func intParam(ctx echo.Context, name string) int {
	value, err := strconv.Atoi(ctx.QueryParam(name))
	if err != nil {
		return 0
	}
	return value
}

func serviceTypeParam(ctx echo.Context) (*order.ServiceType, error) {
	raw := ctx.QueryParam("service_type")
	if raw == "" {
		return nil, nil
	}
	serviceType := order.ServiceType(raw)
	if err := serviceType.Validate(); err != nil {
		return nil, err
	}
	return &serviceType, nil
}

func locationFromRequest(req LocationRequest) (kernel.Location, error) {
	point, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return kernel.Location{}, err
	}
	return kernel.NewLocation(req.Address, point)
}

func orderToResponse(aggregate *order.Order) OrderResponse {
	response := OrderResponse{
		ID:          aggregate.ID().String(),
		OrderNumber: aggregate.OrderNumber(),
		Status:      aggregate.Status().String(),
		CustomerID:  aggregate.CustomerID().String(),
		Total:       aggregate.Price().Total,
		Currency:    aggregate.Price().Currency,
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
		AcceptedAt:  aggregate.AcceptedAt(),
	}
	if transporterID := aggregate.TransporterID(); transporterID != nil {
		s := transporterID.String()
		response.TransporterID = &s
	}
	return response
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeDomainError maps application errors onto HTTP status codes. Losing a
// claim race and stale lifecycle transitions are conflicts, not server faults.
func writeDomainError(ctx echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, commands.ErrNotAuthorized),
		errors.Is(err, queries.ErrAccessDenied):
		status = http.StatusForbidden
	case errors.Is(err, commands.ErrNotEligible),
		errors.Is(err, order.ErrNoLongerAvailable),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrAlreadyRated),
		errors.Is(err, order.ErrOrderNotDelivered),
		errors.Is(err, order.ErrTrackingNotAllowed):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
