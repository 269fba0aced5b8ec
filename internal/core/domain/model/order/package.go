package order

import (
	"errors"
	"fmt"

	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

// ErrPackageIsNotConstructed is returned when a Package instance was not created
// through the NewPackage factory method.
var ErrPackageIsNotConstructed = errs.NewValueIsRequiredError(
	"package must be created via NewPackage constructor")

// Dimensions describes the physical size of a package in centimeters.
type Dimensions struct {
	LengthCm float64
	WidthCm  float64
	HeightCm float64
}

// Package is an immutable value object describing what is being shipped:
// weight, dimensions, fragility, and a free-text description.
//
// Example:
//
//	pkg, err := order.NewPackage(4.5, order.Dimensions{LengthCm: 30, WidthCm: 20, HeightCm: 15},
//	    false, "books")
//	if err != nil {
//	    // Handle validation error
//	}
type Package struct { //nolint:recvcheck //using for validation
	weightKg    float64
	dimensions  Dimensions
	fragile     bool
	description string
	guard       guard.ConstructorGuard
}

// NewPackage creates a Package with the given attributes.
// Weight must be positive; dimensions must be non-negative.
func NewPackage(weightKg float64, dimensions Dimensions, fragile bool, description string) (Package, error) {
	pkg := Package{
		fragile:     fragile,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(pkg.setWeight(weightKg), pkg.setDimensions(dimensions)); err != nil {
		return Package{}, err
	}

	return pkg, nil
}

// Validate ensures the Package was properly constructed through NewPackage.
func (p Package) Validate() error {
	return p.guard.Validate(ErrPackageIsNotConstructed)
}

// WeightKg returns the package weight in kilograms.
func (p Package) WeightKg() float64 {
	return p.weightKg
}

// Dimensions returns the package dimensions in centimeters.
func (p Package) Dimensions() Dimensions {
	return p.dimensions
}

// Fragile reports whether the package requires fragile handling.
func (p Package) Fragile() bool {
	return p.fragile
}

// Description returns the free-text description of the contents.
func (p Package) Description() string {
	return p.description
}

func (p *Package) setWeight(weightKg float64) error {
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%g is not greater than 0", weightKg))
	}
	p.weightKg = weightKg
	return nil
}

func (p *Package) setDimensions(dimensions Dimensions) error {
	if dimensions.LengthCm < 0 || dimensions.WidthCm < 0 || dimensions.HeightCm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("dimensions",
			fmt.Errorf("dimensions must be non-negative, got %+v", dimensions))
	}
	p.dimensions = dimensions
	return nil
}
