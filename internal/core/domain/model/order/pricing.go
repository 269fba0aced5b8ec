package order

import "math"

// Surcharge is a named extra fee itemized on a price breakdown so downstream
// consumers can render a receipt line by line.
type Surcharge struct {
	Kind        string
	Description string
	Amount      float64
}

// PriceBreakdown is the immutable pricing record attached to an order at creation.
// All amounts are in the breakdown's currency, rounded to 2 decimals.
// Pricing is computed exactly once and never recomputed afterwards.
type PriceBreakdown struct {
	BaseFee     float64
	DistanceKm  float64
	DistanceFee float64
	Surcharges  []Surcharge
	Tax         float64
	Total       float64
	Currency    string
}

// SurchargeTotal returns the sum of all itemized surcharges.
func (b PriceBreakdown) SurchargeTotal() float64 {
	var total float64
	for _, s := range b.Surcharges {
		total += s.Amount
	}
	return Round2(total)
}

// Round2 rounds a monetary amount half-up to 2 decimal places.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
