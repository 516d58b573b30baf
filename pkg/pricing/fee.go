package pricing

import "github.com/shopspring/decimal"

// QuoteFee evaluates a merchant's delivery fee curve at the given distance.
//
// raw = baseFee + distanceKm * perKmRate, then the optional floor and ceiling
// are applied in that order: the minimum first, the maximum last. A maximum
// configured below the minimum therefore wins — intentional configuration
// behavior, kept deterministic rather than rejected here. The result is
// rounded to two decimals.
func QuoteFee(distanceKm float64, baseFee, perKmRate decimal.Decimal, minFee, maxFee *decimal.Decimal) decimal.Decimal {
	fee := baseFee.Add(decimal.NewFromFloat(distanceKm).Mul(perKmRate))
	if minFee != nil && fee.LessThan(*minFee) {
		fee = *minFee
	}
	if maxFee != nil && fee.GreaterThan(*maxFee) {
		fee = *maxFee
	}
	return fee.Round(2)
}
