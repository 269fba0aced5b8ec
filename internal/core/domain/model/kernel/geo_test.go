package kernel_test

import (
	"testing"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("should create valid point with valid coordinates", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(40.7128, -74.0060)

		require.NoError(t, err)
		require.NoError(t, point.Validate())
		assert.InDelta(t, 40.7128, point.Latitude(), 1e-9)
		assert.InDelta(t, -74.0060, point.Longitude(), 1e-9)
	})

	t.Run("should accept boundary coordinates", func(t *testing.T) {
		testCases := []struct {
			name string
			lat  float64
			lng  float64
		}{
			{"south pole", -90, 0},
			{"north pole", 90, 0},
			{"antimeridian west", 0, -180},
			{"antimeridian east", 0, 180},
			{"origin", 0, 0},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				point, err := kernel.NewGeoPoint(tc.lat, tc.lng)
				require.NoError(t, err)
				require.NoError(t, point.Validate())
			})
		}
	})

	t.Run("should fail with latitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(90.0001, 0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "latitude")
	})

	t.Run("should fail with longitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -180.5)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "longitude")
	})

	t.Run("should collect both coordinate errors", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(120, 200)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var point kernel.GeoPoint

		err := point.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "geo point must be created")
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("equal coordinates are equal", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(40.7128, -74.0060)
		p2, _ := kernel.NewGeoPoint(40.7128, -74.0060)

		equal, err := p1.IsEqual(p2)

		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different coordinates are not equal", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(40.7128, -74.0060)
		p2, _ := kernel.NewGeoPoint(34.0522, -118.2437)

		equal, err := p1.IsEqual(p2)

		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("comparison with zero value fails", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(40.7128, -74.0060)
		var p2 kernel.GeoPoint

		_, err := p1.IsEqual(p2)

		require.Error(t, err)
	})
}

func TestGeoPoint_DistanceKmTo(t *testing.T) {
	t.Run("distance to self is zero", func(t *testing.T) {
		point, _ := kernel.NewGeoPoint(40.7128, -74.0060)

		km, err := point.DistanceKmTo(point)

		require.NoError(t, err)
		assert.InDelta(t, 0, km, 1e-9)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(40.7128, -74.0060)
		p2, _ := kernel.NewGeoPoint(40.7484, -73.9857)

		d1, err := p1.DistanceKmTo(p2)
		require.NoError(t, err)
		d2, err := p2.DistanceKmTo(p1)
		require.NoError(t, err)

		assert.InDelta(t, d1, d2, 1e-9)
	})

	t.Run("known distance between city centers", func(t *testing.T) {
		// New York City Hall to the Empire State Building, roughly 4.3 km.
		p1, _ := kernel.NewGeoPoint(40.7128, -74.0060)
		p2, _ := kernel.NewGeoPoint(40.7484, -73.9857)

		km, err := p1.DistanceKmTo(p2)

		require.NoError(t, err)
		assert.InDelta(t, 4.31, km, 0.1)
	})

	t.Run("one degree of latitude is about 111 km", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(10, 20)
		p2, _ := kernel.NewGeoPoint(11, 20)

		km, err := p1.DistanceKmTo(p2)

		require.NoError(t, err)
		assert.InDelta(t, 111.19, km, 0.5)
	})

	t.Run("distance from zero value fails", func(t *testing.T) {
		var p1 kernel.GeoPoint
		p2, _ := kernel.NewGeoPoint(40.7128, -74.0060)

		_, err := p1.DistanceKmTo(p2)

		require.Error(t, err)
	})
}

func TestNewLocation(t *testing.T) {
	validPoint, _ := kernel.NewGeoPoint(40.7128, -74.0060)

	t.Run("should create valid location", func(t *testing.T) {
		loc, err := kernel.NewLocation("1 Centre St, New York, NY", validPoint)

		require.NoError(t, err)
		require.NoError(t, loc.Validate())
		assert.Equal(t, "1 Centre St, New York, NY", loc.Address())
		assert.Equal(t, validPoint, loc.Point())
	})

	t.Run("should fail with empty address", func(t *testing.T) {
		_, err := kernel.NewLocation("", validPoint)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with blank address", func(t *testing.T) {
		_, err := kernel.NewLocation("   ", validPoint)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with zero value point", func(t *testing.T) {
		var point kernel.GeoPoint

		_, err := kernel.NewLocation("1 Centre St", point)

		require.Error(t, err)
	})

	t.Run("zero value location fails validation", func(t *testing.T) {
		var loc kernel.Location

		err := loc.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "location must be created")
	})
}
