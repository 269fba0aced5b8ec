package queries

import (
	"context"
	"errors"

	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/domain/model/user"
	"haulage/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// userRow is the read-side projection of one users table row.
type userRow struct {
	ID          uuid.UUID `gorm:"column:id"`
	UserType    string    `gorm:"column:user_type"`
	IsVerified  bool      `gorm:"column:is_verified"`
	IsAvailable bool      `gorm:"column:is_available"`
}

func (userRow) TableName() string { return "users" }

// nearbyRow is an order row annotated with the haversine distance to the
// transporter's position, computed in SQL.
type nearbyRow struct {
	orderRow `gorm:"embedded"`

	PickupDistanceKm float64 `gorm:"column:pickup_distance_km"`
}

// NearbyOrdersQueryHandler finds unclaimed pending orders around a transporter.
//
// The distance is the straight-line haversine distance from the transporter to
// the pickup point, computed in SQL so filtering and ordering happen in the
// database. Results are closest first.
type NearbyOrdersQueryHandler struct {
	db *gorm.DB
}

// NewNearbyOrdersQueryHandler creates a handler for nearby order searches.
func NewNearbyOrdersQueryHandler(db *gorm.DB) NearbyOrdersQueryHandler {
	return NearbyOrdersQueryHandler{db: db}
}

// Handle executes the search. The searching user must be a transporter; a
// transporter who has paused their availability gets an empty result rather
// than an error.
func (h NearbyOrdersQueryHandler) Handle(ctx context.Context, query NearbyOrdersQuery) ([]NearbyOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var searcher userRow
	err := h.db.WithContext(ctx).
		Where("id = ?", query.TransporterID().Bytes()).
		First(&searcher).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transporterId", query.TransporterID())
		}
		return nil, err
	}
	if searcher.UserType != user.UserTypeTransporter.String() {
		return nil, errs.NewValueIsInvalidError("transporterId")
	}
	if !searcher.IsAvailable {
		return []NearbyOrderResponse{}, nil
	}

	lat := query.Center().Latitude()
	lng := query.Center().Longitude()

	serviceFilter := ""
	args := []any{lat, lng, lat, order.StatusPending.String()}
	if serviceType := query.ServiceType(); serviceType != nil {
		serviceFilter = " AND o.service_type = ?"
		args = append(args, serviceType.String())
	}
	args = append(args, query.RadiusKm(), query.Limit())

	var rows []nearbyRow
	err = h.db.WithContext(ctx).Raw(`
		SELECT *
		FROM (
			SELECT o.*,
				(6371.0 * acos(least(1.0,
					cos(radians(?)) * cos(radians(o.pickup_latitude)) *
					cos(radians(o.pickup_longitude) - radians(?)) +
					sin(radians(?)) * sin(radians(o.pickup_latitude))
				))) AS pickup_distance_km
			FROM orders o
			WHERE o.status = ? AND o.transporter_id IS NULL`+serviceFilter+`
		) nearby
		WHERE pickup_distance_km <= ?
		ORDER BY pickup_distance_km ASC
		LIMIT ?
	`, args...).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	responses := make([]NearbyOrderResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, NearbyOrderResponse{
			OrderSummaryResponse: row.toSummaryResponse(),
			PickupDistanceKm:     order.Round2(row.PickupDistanceKm),
		})
	}

	return responses, nil
}
