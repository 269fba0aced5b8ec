package services

import (
	"fmt"

	"haulage/internal/core/domain/model/order"
)

// Pricing constants. All amounts are in the engine's currency.
const (
	pricingCurrency = "USD"

	baseFeeExpress  = 15.0
	baseFeeStandard = 10.0
	baseFeeMoving   = 25.0
	baseFeeStorage  = 20.0

	// Distance beyond the included radius is billed per kilometer.
	includedDistanceKm = 5.0
	perKmFee           = 1.5

	fragileSurcharge = 5.0

	heavySurcharge         = 10.0
	heavyWeightThresholdKg = 20.0

	taxRate = 0.08
)

// PricingEngine is a domain service that computes the immutable price breakdown
// attached to an order at creation.
//
// Pricing is deterministic: the same service type, distance, and package always
// produce the same breakdown. The engine never reads clocks, rates, or any other
// external state, so a quote can be recomputed and verified at any time.
//
// The formula:
//   - base fee by service type
//   - distance fee for kilometers beyond the included radius
//   - itemized surcharges for fragile handling and heavy packages
//   - tax on the subtotal
//
// Every monetary component is rounded to 2 decimals before it enters the total,
// so the breakdown lines always sum exactly to the total.
type PricingEngine struct{}

// NewPricingEngine creates a new PricingEngine instance.
func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// Quote computes the price breakdown for a delivery of the given service type,
// straight-line distance, and package.
//
// A service type the engine does not recognize is priced at the standard base
// fee; rejecting unknown service types is the order model's concern, not the
// price formula's.
//
// Returns an error if the distance is negative or the package was not properly
// constructed.
func (PricingEngine) Quote(serviceType order.ServiceType, distanceKm float64, pkg order.Package) (order.PriceBreakdown, error) {
	if distanceKm < 0 {
		return order.PriceBreakdown{}, fmt.Errorf("distance must not be negative: %g", distanceKm)
	}
	if err := pkg.Validate(); err != nil {
		return order.PriceBreakdown{}, err
	}

	baseFee := baseFeeFor(serviceType)

	distanceFee := 0.0
	if distanceKm > includedDistanceKm {
		distanceFee = order.Round2((distanceKm - includedDistanceKm) * perKmFee)
	}

	var surcharges []order.Surcharge
	if pkg.Fragile() {
		surcharges = append(surcharges, order.Surcharge{
			Kind:        "fragile",
			Description: "fragile handling",
			Amount:      fragileSurcharge,
		})
	}
	if pkg.WeightKg() > heavyWeightThresholdKg {
		surcharges = append(surcharges, order.Surcharge{
			Kind:        "heavy",
			Description: fmt.Sprintf("package over %g kg", heavyWeightThresholdKg),
			Amount:      heavySurcharge,
		})
	}

	breakdown := order.PriceBreakdown{
		BaseFee:     baseFee,
		DistanceKm:  distanceKm,
		DistanceFee: distanceFee,
		Surcharges:  surcharges,
		Currency:    pricingCurrency,
	}

	subtotal := order.Round2(baseFee + distanceFee + breakdown.SurchargeTotal())
	breakdown.Tax = order.Round2(subtotal * taxRate)
	breakdown.Total = order.Round2(subtotal + breakdown.Tax)

	return breakdown, nil
}

func baseFeeFor(serviceType order.ServiceType) float64 {
	switch serviceType {
	case order.ServiceTypeExpress:
		return baseFeeExpress
	case order.ServiceTypeMoving:
		return baseFeeMoving
	case order.ServiceTypeStorage:
		return baseFeeStorage
	default:
		return baseFeeStandard
	}
}
