package kernel

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

const (
	// GeoPointMinLatitude is the minimum valid latitude in degrees.
	GeoPointMinLatitude = -90.0
	// GeoPointMaxLatitude is the maximum valid latitude in degrees.
	GeoPointMaxLatitude = 90.0
	// GeoPointMinLongitude is the minimum valid longitude in degrees.
	GeoPointMinLongitude = -180.0
	// GeoPointMaxLongitude is the maximum valid longitude in degrees.
	GeoPointMaxLongitude = 180.0

	// earthRadiusKm is the mean Earth radius used for great-circle distance.
	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// ErrLocationIsNotConstructed is returned when attempting to use an improperly
// initialized Location. Locations must be created via NewLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// GeoPoint is an immutable value object representing a WGS84 coordinate pair.
// The zero value of GeoPoint is invalid and fails validation - use NewGeoPoint.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(40.7128, -74.0060)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(point) // Output: GeoPoint(40.712800,-74.006000)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given latitude and longitude in degrees.
// Latitude must be within [-90, 90] and longitude within [-180, 180].
// Returns an error if either coordinate is outside its valid bounds.
func NewGeoPoint(latitude float64, longitude float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLatitude(latitude), point.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks if the GeoPoint was properly constructed via NewGeoPoint.
// The zero value fails this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String returns a human-readable representation in the form "GeoPoint(lat,lng)".
// This method implements the fmt.Stringer interface.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.latitude, p.longitude)
}

// IsEqual compares two geo points for coordinate equality.
// Both points must be properly constructed for the comparison to succeed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.latitude == other.latitude && p.longitude == other.longitude, nil
}

// DistanceKmTo calculates the great-circle (haversine) distance to another point
// in kilometers. Road network routing is deliberately not modelled: straight-line
// distance is the defined behavior for both pricing and proximity matching.
//
// Example:
//
//	pickup, _ := kernel.NewGeoPoint(40.7128, -74.0060)
//	dropoff, _ := kernel.NewGeoPoint(40.7484, -73.9857)
//	km, err := pickup.DistanceKmTo(dropoff)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("%.2f km apart", km)
func (p GeoPoint) DistanceKmTo(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := p.latitude * math.Pi / 180
	lat2 := other.latitude * math.Pi / 180
	dLat := (other.latitude - p.latitude) * math.Pi / 180
	dLng := (other.longitude - p.longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < GeoPointMinLatitude || latitude > GeoPointMaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, GeoPointMinLatitude, GeoPointMaxLatitude)
	}
	p.latitude = latitude
	return nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < GeoPointMinLongitude || longitude > GeoPointMaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, GeoPointMinLongitude, GeoPointMaxLongitude)
	}
	p.longitude = longitude
	return nil
}

// Location is an immutable value object combining a street address with its
// geographic coordinates. Both parts are required: orders are matched to
// transporters by coordinates and rendered to people by address.
//
// Example:
//
//	point, _ := kernel.NewGeoPoint(40.7128, -74.0060)
//	loc, err := kernel.NewLocation("1 Centre St, New York, NY", point)
//	if err != nil {
//	    // Handle validation error
//	}
type Location struct { //nolint:recvcheck //using for validation
	address string
	point   GeoPoint
	guard   guard.ConstructorGuard
}

// NewLocation creates a Location from a non-empty street address and a valid GeoPoint.
func NewLocation(address string, point GeoPoint) (Location, error) {
	location := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(location.setAddress(address), location.setPoint(point)); err != nil {
		return Location{}, err
	}

	return location, nil
}

// Validate checks if the Location was properly constructed via NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Address returns the street address of the location.
func (l Location) Address() string {
	return l.address
}

// Point returns the geographic coordinates of the location.
func (l Location) Point() GeoPoint {
	return l.point
}

// String returns a human-readable representation of the location.
// This method implements the fmt.Stringer interface.
func (l Location) String() string {
	return fmt.Sprintf("%s %s", l.address, l.point)
}

func (l *Location) setAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("address")
	}
	l.address = address
	return nil
}

func (l *Location) setPoint(point GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	l.point = point
	return nil
}
