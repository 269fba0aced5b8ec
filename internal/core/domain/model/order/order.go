package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"
)

const (
	// RatingMin is the lowest permitted rating score.
	RatingMin = 1
	// RatingMax is the highest permitted rating score.
	RatingMax = 5
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrNoLongerAvailable is the unwrap target for NoLongerAvailableError,
	// enabling classification via errors.Is.
	ErrNoLongerAvailable = errors.New("order is no longer available")

	// ErrOrderNotDelivered is returned when a rating is attempted before the order
	// reached the delivered status.
	ErrOrderNotDelivered = errors.New("order must be delivered before rating")

	// ErrAlreadyRated is returned when a party attempts to rate an order a second time.
	ErrAlreadyRated = errors.New("rating has already been submitted by this party")

	// ErrTrackingNotAllowed is returned when a tracking update is attempted while the
	// order is not in the in-transit family of statuses.
	ErrTrackingNotAllowed = errors.New("tracking can only be updated while the order is in transit")
)

// NoLongerAvailableError indicates that an order could not be claimed because it is
// not pending anymore: another transporter took it, or it was cancelled. CurrentStatus
// lets the caller distinguish the two.
type NoLongerAvailableError struct {
	CurrentStatus Status
}

// NewNoLongerAvailableError creates a NoLongerAvailableError carrying the order's
// observed current status.
func NewNoLongerAvailableError(currentStatus Status) *NoLongerAvailableError {
	return &NoLongerAvailableError{CurrentStatus: currentStatus}
}

func (e *NoLongerAvailableError) Error() string {
	return fmt.Sprintf("%s: current status is %s", ErrNoLongerAvailable, e.CurrentStatus)
}

func (e *NoLongerAvailableError) Unwrap() error {
	return ErrNoLongerAvailable
}

// Order represents a delivery order in the marketplace. It is the aggregate root that
// manages the order lifecycle from creation through acceptance to a terminal outcome.
//
// Order follows these invariants:
//   - A transporter is assigned if and only if the status has progressed past pending
//     (orders cancelled while still pending keep no transporter)
//   - Status history is append-only and each entry is a permitted transition from its
//     predecessor
//   - Pricing is computed once at creation and never recomputed
//   - Each party's rating may be written at most once, and only after delivery
//   - Terminal orders (delivered, cancelled) never re-enter a non-terminal status;
//     the only reopening path is the explicit failed -> pending retry
//
// The Order struct uses private fields to ensure encapsulation; every mutation flows
// through a validated method that appends to the history and bumps updatedAt.
type Order struct {
	id            kernel.UUID
	orderNumber   string
	customerID    kernel.UUID
	transporterID *kernel.UUID

	serviceType ServiceType
	priority    Priority

	pickup  kernel.Location
	dropoff kernel.Location
	pkg     Package
	price   PriceBreakdown

	status  Status
	history []HistoryEntry

	tracking *TrackingPoint
	route    []kernel.GeoPoint
	eta      *time.Time

	customerRating    *Rating
	transporterRating *Rating
	cancellation      *Cancellation

	createdAt         time.Time
	updatedAt         time.Time
	acceptedAt        *time.Time
	scheduledPickupAt *time.Time
	estimatedPickupAt *time.Time

	isConstructed bool
}

// NewOrder creates a new Order in pending status with a one-entry history.
// This is the only way to create a fresh order; RestoreOrder reconstructs
// persisted ones.
//
// Parameters:
//   - id: unique identifier for the order
//   - customerID: the requesting customer (immutable after creation)
//   - serviceType: delivery classification (express, standard, moving, storage)
//   - priority: normal or high; an empty value defaults to normal
//   - pickup, dropoff: validated locations (immutable after creation)
//   - pkg: package attributes
//   - price: the breakdown computed by the pricing engine for exactly this order
//   - scheduledPickupAt: optional customer-requested pickup time
//   - now: creation timestamp
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	serviceType ServiceType,
	priority Priority,
	pickup kernel.Location,
	dropoff kernel.Location,
	pkg Package,
	price PriceBreakdown,
	scheduledPickupAt *time.Time,
	now time.Time,
) (*Order, error) {
	if priority == "" {
		priority = PriorityNormal
	}

	o := &Order{
		status:            StatusPending,
		scheduledPickupAt: scheduledPickupAt,
		createdAt:         now,
		updatedAt:         now,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setServiceType(serviceType),
		o.setPriority(priority),
		o.setPickup(pickup),
		o.setDropoff(dropoff),
		o.setPackage(pkg),
		o.setPrice(price),
	); err != nil {
		return nil, err
	}

	o.orderNumber = orderNumberFor(id)
	o.history = []HistoryEntry{{
		Status:  StatusPending,
		At:      now,
		ActorID: customerID,
		Note:    "order created",
	}}

	return o, nil
}

// RestoreOrderParams carries the persisted state needed to reconstruct an Order.
type RestoreOrderParams struct {
	ID                kernel.UUID
	OrderNumber       string
	CustomerID        kernel.UUID
	TransporterID     *kernel.UUID
	ServiceType       ServiceType
	Priority          Priority
	Pickup            kernel.Location
	Dropoff           kernel.Location
	Package           Package
	Price             PriceBreakdown
	Status            Status
	History           []HistoryEntry
	Tracking          *TrackingPoint
	Route             []kernel.GeoPoint
	ETA               *time.Time
	CustomerRating    *Rating
	TransporterRating *Rating
	Cancellation      *Cancellation
	CreatedAt         time.Time
	UpdatedAt         time.Time
	AcceptedAt        *time.Time
	ScheduledPickupAt *time.Time
	EstimatedPickupAt *time.Time
}

// RestoreOrder reconstructs an Order aggregate from persistence.
// It revalidates the core invariants (valid status, transporter-status consistency)
// but does not replay the history: the stored record is trusted to have been written
// through the aggregate in the first place.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o := &Order{
		orderNumber:       params.OrderNumber,
		transporterID:     params.TransporterID,
		history:           params.History,
		tracking:          params.Tracking,
		route:             params.Route,
		eta:               params.ETA,
		customerRating:    params.CustomerRating,
		transporterRating: params.TransporterRating,
		cancellation:      params.Cancellation,
		createdAt:         params.CreatedAt,
		updatedAt:         params.UpdatedAt,
		acceptedAt:        params.AcceptedAt,
		scheduledPickupAt: params.ScheduledPickupAt,
		estimatedPickupAt: params.EstimatedPickupAt,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setCustomerID(params.CustomerID),
		o.setServiceType(params.ServiceType),
		o.setPriority(params.Priority),
		o.setPickup(params.Pickup),
		o.setDropoff(params.Dropoff),
		o.setPackage(params.Package),
		o.setPrice(params.Price),
		params.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := validateTransporterAssignment(params.Status, params.TransporterID != nil); err != nil {
		return nil, err
	}

	o.status = params.Status
	if o.orderNumber == "" {
		o.orderNumber = orderNumberFor(params.ID)
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// CustomerID returns the requesting customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// TransporterID returns the assigned transporter's identifier.
// Returns nil while the order is unclaimed.
func (o *Order) TransporterID() *kernel.UUID {
	return o.transporterID
}

// ServiceType returns the order's service classification.
func (o *Order) ServiceType() ServiceType {
	return o.serviceType
}

// Priority returns the order's priority.
func (o *Order) Priority() Priority {
	return o.priority
}

// Pickup returns the pickup location.
func (o *Order) Pickup() kernel.Location {
	return o.pickup
}

// Dropoff returns the dropoff location.
func (o *Order) Dropoff() kernel.Location {
	return o.dropoff
}

// Package returns the package attributes.
func (o *Order) Package() Package {
	return o.pkg
}

// Price returns the immutable price breakdown computed at creation.
func (o *Order) Price() PriceBreakdown {
	return o.price
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the append-only status history.
func (o *Order) History() []HistoryEntry {
	out := make([]HistoryEntry, len(o.history))
	copy(out, o.history)
	return out
}

// Tracking returns the latest tracking point, or nil if none was reported.
func (o *Order) Tracking() *TrackingPoint {
	if o.tracking == nil {
		return nil
	}
	tp := *o.tracking
	return &tp
}

// Route returns a copy of the trail of reported tracking positions.
func (o *Order) Route() []kernel.GeoPoint {
	out := make([]kernel.GeoPoint, len(o.route))
	copy(out, o.route)
	return out
}

// ETA returns the transporter-reported estimated arrival time, or nil.
func (o *Order) ETA() *time.Time {
	return o.eta
}

// CustomerRating returns the customer's rating, or nil if not yet submitted.
func (o *Order) CustomerRating() *Rating {
	if o.customerRating == nil {
		return nil
	}
	r := *o.customerRating
	return &r
}

// TransporterRating returns the transporter's rating, or nil if not yet submitted.
func (o *Order) TransporterRating() *Rating {
	if o.transporterRating == nil {
		return nil
	}
	r := *o.transporterRating
	return &r
}

// Cancellation returns the cancellation record, or nil if the order was not cancelled.
func (o *Order) Cancellation() *Cancellation {
	if o.cancellation == nil {
		return nil
	}
	c := *o.cancellation
	return &c
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AcceptedAt returns the acceptance timestamp, or nil while unclaimed.
func (o *Order) AcceptedAt() *time.Time {
	return o.acceptedAt
}

// ScheduledPickupAt returns the customer-requested pickup time, or nil.
func (o *Order) ScheduledPickupAt() *time.Time {
	return o.scheduledPickupAt
}

// EstimatedPickupAt returns the transporter's estimated pickup time, or nil.
// This is advisory metadata only; it drives no automatic state transition.
func (o *Order) EstimatedPickupAt() *time.Time {
	return o.estimatedPickupAt
}

// IsParty reports whether the given actor is the order's customer or its
// assigned transporter.
func (o *Order) IsParty(actorID kernel.UUID) bool {
	if o.customerID.IsEqual(actorID) {
		return true
	}
	return o.transporterID != nil && o.transporterID.IsEqual(actorID)
}

// IsAssignedTransporter reports whether the given actor is the assigned transporter.
func (o *Order) IsAssignedTransporter(actorID kernel.UUID) bool {
	return o.transporterID != nil && o.transporterID.IsEqual(actorID)
}

// Accept claims a pending order for the given transporter.
//
// The claim succeeds only while the order is pending with no transporter assigned;
// otherwise a NoLongerAvailableError carrying the current status is returned so the
// caller can distinguish "someone else took it" from "it was cancelled".
//
// On success the transporter is assigned, acceptedAt is set, the status moves to
// accepted, and exactly one history entry is appended. Callers coordinating
// concurrent claims must invoke this inside an atomic unit of work keyed by the
// order record.
func (o *Order) Accept(transporterID kernel.UUID, estimatedPickupAt *time.Time, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := transporterID.Validate(); err != nil {
		return err
	}

	if o.status != StatusPending || o.transporterID != nil {
		return NewNoLongerAvailableError(o.status)
	}

	acceptedAt := now
	o.transporterID = &transporterID
	o.acceptedAt = &acceptedAt
	o.estimatedPickupAt = estimatedPickupAt
	o.status = StatusAccepted
	o.appendHistory(StatusAccepted, transporterID, "order accepted", now)
	o.touch(now)

	return nil
}

// TransitionTo applies a status transition driven by the given actor.
//
// The transition must be permitted by the state machine; otherwise an
// *InvalidTransitionError is returned and the order is left unmodified.
// Who may invoke which transition is a caller concern - the machine itself
// stays pure and independently testable.
//
// A non-nil location records the transporter's position as part of the same
// transition: it becomes the current tracking point and is appended to the
// route trail, so reporting "arrived at pickup" does not take a second call.
//
// The failed -> pending retry reopens the order for claiming: the transporter
// assignment and acceptance metadata are cleared.
//
// Transitions into accepted or cancelled must go through Accept or Cancel
// respectively, which maintain the assignment and cancellation records.
func (o *Order) TransitionTo(
	newStatus Status, actorID kernel.UUID, note string, location *kernel.GeoPoint, now time.Time,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actorID.Validate(); err != nil {
		return err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}

	next, err := o.status.TransitionTo(newStatus)
	if err != nil {
		return err
	}

	if next == StatusAccepted && o.transporterID == nil {
		return errs.NewValueIsRequiredErrorWithCause("transporter",
			fmt.Errorf("transition to %s requires a claim via Accept", StatusAccepted))
	}
	if next == StatusCancelled && o.cancellation == nil {
		return errs.NewValueIsRequiredErrorWithCause("cancellation",
			fmt.Errorf("transition to %s requires a cancellation record via Cancel", StatusCancelled))
	}

	if next == StatusPending {
		o.transporterID = nil
		o.acceptedAt = nil
		o.estimatedPickupAt = nil
	}

	o.status = next
	o.appendHistory(next, actorID, note, now)
	if location != nil {
		o.tracking = &TrackingPoint{
			Point:      *location,
			RecordedAt: now,
		}
		o.route = append(o.route, *location)
	}
	o.touch(now)

	return nil
}

// Cancel sets the immutable cancellation record and transitions the order to cancelled.
// Permitted only from statuses the state machine allows to cancel; terminal orders
// are rejected with an *InvalidTransitionError.
func (o *Order) Cancel(actorID kernel.UUID, reason, description string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actorID.Validate(); err != nil {
		return err
	}

	next, err := o.status.TransitionTo(StatusCancelled)
	if err != nil {
		return err
	}

	note := "order cancelled"
	if reason != "" {
		note = fmt.Sprintf("order cancelled: %s", reason)
	}

	o.cancellation = &Cancellation{
		ActorID:     actorID,
		Reason:      reason,
		Description: description,
		At:          now,
	}
	o.status = next
	o.appendHistory(next, actorID, note, now)
	o.touch(now)

	return nil
}

// RateByCustomer records the customer's post-delivery rating.
// Permitted only once, and only after the order reached delivered status.
func (o *Order) RateByCustomer(score int, feedback string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	rating, err := o.buildRating(o.customerID, score, feedback, now, o.customerRating)
	if err != nil {
		return err
	}

	o.customerRating = rating
	o.touch(now)
	return nil
}

// RateByTransporter records the assigned transporter's post-delivery rating.
// Permitted only once, and only after the order reached delivered status.
func (o *Order) RateByTransporter(score int, feedback string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.transporterID == nil {
		return errs.NewValueIsRequiredError("transporter")
	}

	rating, err := o.buildRating(*o.transporterID, score, feedback, now, o.transporterRating)
	if err != nil {
		return err
	}

	o.transporterRating = rating
	o.touch(now)
	return nil
}

// UpdateTracking records a position report from the assigned transporter.
// Permitted only while the status is in the in-transit family. Each accepted
// report becomes the current tracking point and is appended to the route trail;
// a non-nil eta replaces the previous estimate.
func (o *Order) UpdateTracking(point kernel.GeoPoint, accuracyMeters float64, eta *time.Time, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := point.Validate(); err != nil {
		return err
	}

	if !o.status.IsInTransit() {
		return fmt.Errorf("%w: status is %s", ErrTrackingNotAllowed, o.status)
	}

	o.tracking = &TrackingPoint{
		Point:          point,
		AccuracyMeters: accuracyMeters,
		RecordedAt:     now,
	}
	o.route = append(o.route, point)
	if eta != nil {
		o.eta = eta
	}
	o.touch(now)

	return nil
}

func (o *Order) buildRating(
	ratedBy kernel.UUID, score int, feedback string, now time.Time, existing *Rating,
) (*Rating, error) {
	if o.status != StatusDelivered {
		return nil, fmt.Errorf("%w: status is %s", ErrOrderNotDelivered, o.status)
	}
	if existing != nil {
		return nil, ErrAlreadyRated
	}
	if score < RatingMin || score > RatingMax {
		return nil, errs.NewValueIsOutOfRangeError("rating", score, RatingMin, RatingMax)
	}

	return &Rating{
		Score:    score,
		Feedback: feedback,
		RatedBy:  ratedBy,
		At:       now,
	}, nil
}

func (o *Order) appendHistory(status Status, actorID kernel.UUID, note string, now time.Time) {
	o.history = append(o.history, HistoryEntry{
		Status:  status,
		At:      now,
		ActorID: actorID,
		Note:    note,
	})
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setServiceType(serviceType ServiceType) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}
	o.serviceType = serviceType
	return nil
}

func (o *Order) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}

func (o *Order) setPickup(pickup kernel.Location) error {
	if err := pickup.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("pickup", err)
	}
	o.pickup = pickup
	return nil
}

func (o *Order) setDropoff(dropoff kernel.Location) error {
	if err := dropoff.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("dropoff", err)
	}
	o.dropoff = dropoff
	return nil
}

func (o *Order) setPackage(pkg Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}
	o.pkg = pkg
	return nil
}

func (o *Order) setPrice(price PriceBreakdown) error {
	if price.Currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	if price.Total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%g is negative", price.Total))
	}
	o.price = price
	return nil
}

// validateTransporterAssignment enforces the consistency between order status and
// transporter assignment on reconstruction:
//   - pending orders must have no transporter
//   - in-transit, delivered, and failed orders must have one
//   - cancelled orders may have either (cancelled-before-accept keeps none)
func validateTransporterAssignment(status Status, hasTransporter bool) error {
	switch {
	case status == StatusPending && hasTransporter:
		return errs.NewValueIsInvalidErrorWithCause("transporter",
			fmt.Errorf("%s order must not have a transporter", status))
	case !hasTransporter && (status.IsInTransit() || status == StatusDelivered || status == StatusFailed):
		return errs.NewValueIsInvalidErrorWithCause("transporter",
			fmt.Errorf("%s order must have a transporter", status))
	default:
		return nil
	}
}

func orderNumberFor(id kernel.UUID) string {
	return "ORD-" + strings.ToUpper(id.String()[:8])
}
