package order

import (
	"time"

	"haulage/internal/core/domain/model/kernel"
)

// HistoryEntry is a single line of an order's append-only status history.
// History is the audit trail and the sole source of truth for how an order
// reached its current status. Entries are never rewritten or reordered.
type HistoryEntry struct {
	Status  Status
	At      time.Time
	ActorID kernel.UUID
	Note    string
}

// TrackingPoint is the most recent position report from the assigned transporter.
type TrackingPoint struct {
	Point          kernel.GeoPoint
	AccuracyMeters float64
	RecordedAt     time.Time
}

// Rating is a post-delivery score and feedback left by one party of the order.
// Each party may rate at most once.
type Rating struct {
	Score    int
	Feedback string
	RatedBy  kernel.UUID
	At       time.Time
}

// Cancellation records who cancelled an order, why, and when.
// It is set exactly once and immutable thereafter.
type Cancellation struct {
	ActorID     kernel.UUID
	Reason      string
	Description string
	At          time.Time
}
