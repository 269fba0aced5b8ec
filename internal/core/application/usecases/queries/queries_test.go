package queries_test

import (
	"testing"

	"haulage/internal/core/application/usecases/queries"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery(kernel.NewUUID(), kernel.NewUUID())

		require.NoError(t, err)
		require.NoError(t, query.Validate())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		err := queries.GetOrderQuery{}.Validate()

		require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
	})

	t.Run("unconstructed order id is rejected", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(kernel.UUID{}, kernel.NewUUID())

		require.Error(t, err)
	})

	t.Run("unconstructed requester id is rejected", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(kernel.NewUUID(), kernel.UUID{})

		require.Error(t, err)
	})
}

func TestNewListOrdersQuery(t *testing.T) {
	t.Run("defaults and caps the page size", func(t *testing.T) {
		query, err := queries.NewListOrdersQuery(kernel.NewUUID(), nil, nil, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 20, query.Limit())

		query, err = queries.NewListOrdersQuery(kernel.NewUUID(), nil, nil, 5000, 0)
		require.NoError(t, err)
		assert.Equal(t, 100, query.Limit())
	})

	t.Run("accepts status and service type filters", func(t *testing.T) {
		status := order.StatusPending
		serviceType := order.ServiceTypeExpress
		query, err := queries.NewListOrdersQuery(kernel.NewUUID(), &status, &serviceType, 10, 0)

		require.NoError(t, err)
		require.NotNil(t, query.Status())
		assert.Equal(t, order.StatusPending, *query.Status())
		require.NotNil(t, query.ServiceType())
		assert.Equal(t, order.ServiceTypeExpress, *query.ServiceType())
	})

	t.Run("rejects an unknown status filter", func(t *testing.T) {
		status := order.Status("teleported")
		_, err := queries.NewListOrdersQuery(kernel.NewUUID(), &status, nil, 10, 0)

		require.Error(t, err)
	})

	t.Run("rejects an unknown service type filter", func(t *testing.T) {
		serviceType := order.ServiceType("drone")
		_, err := queries.NewListOrdersQuery(kernel.NewUUID(), nil, &serviceType, 10, 0)

		require.Error(t, err)
	})

	t.Run("rejects a negative offset", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(kernel.NewUUID(), nil, nil, 10, -1)

		require.Error(t, err)
	})
}

func TestNewNearbyOrdersQuery(t *testing.T) {
	center, err := kernel.NewGeoPoint(40.7128, -74.0060)
	require.NoError(t, err)

	t.Run("defaults and caps radius and limit", func(t *testing.T) {
		query, err := queries.NewNearbyOrdersQuery(kernel.NewUUID(), center, 0, nil, 0)
		require.NoError(t, err)
		assert.Equal(t, 10.0, query.RadiusKm())
		assert.Equal(t, 20, query.Limit())

		query, err = queries.NewNearbyOrdersQuery(kernel.NewUUID(), center, 5000, nil, 5000)
		require.NoError(t, err)
		assert.Equal(t, 100.0, query.RadiusKm())
		assert.Equal(t, 100, query.Limit())
	})

	t.Run("accepts a service type filter", func(t *testing.T) {
		serviceType := order.ServiceTypeMoving
		query, err := queries.NewNearbyOrdersQuery(kernel.NewUUID(), center, 5, &serviceType, 10)

		require.NoError(t, err)
		require.NotNil(t, query.ServiceType())
		assert.Equal(t, order.ServiceTypeMoving, *query.ServiceType())
	})

	t.Run("rejects an unknown service type filter", func(t *testing.T) {
		serviceType := order.ServiceType("drone")
		_, err := queries.NewNearbyOrdersQuery(kernel.NewUUID(), center, 5, &serviceType, 10)

		require.Error(t, err)
	})

	t.Run("rejects a negative radius", func(t *testing.T) {
		_, err := queries.NewNearbyOrdersQuery(kernel.NewUUID(), center, -1, nil, 10)

		require.Error(t, err)
	})

	t.Run("rejects an unconstructed center", func(t *testing.T) {
		_, err := queries.NewNearbyOrdersQuery(kernel.NewUUID(), kernel.GeoPoint{}, 5, nil, 10)

		require.Error(t, err)
	})
}

func TestNewOrderTrackingQuery(t *testing.T) {
	query, err := queries.NewOrderTrackingQuery(kernel.NewUUID(), kernel.NewUUID())

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	require.Error(t, queries.OrderTrackingQuery{}.Validate())
}
