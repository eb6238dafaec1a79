// Package simulate projects the impact of a hypothetical CTR lift on a
// single query. This is a deterministic point estimate, not a statistical
// test: no confidence interval, no significance computation.
package simulate

import (
	"searchpulse/internal/types"
)

// Params are the inputs to one projection.
type Params struct {
	Impressions    int
	CTR            float64
	Lift           float64 // relative: 0.15 means +15%
	ConversionRate float64 // conversions per incremental click
	AvgOrderValue  float64 // monetary units per conversion
}

// Run computes the projection:
//
//	newCTR    = min(ctr * (1 + lift), 1.0)
//	incClicks = impressions * (newCTR - ctr)
//	incConv   = incClicks * conversionRate
//	incRev    = incConv * avgOrderValue
//
// A lift at or below -100% would drive CTR negative and is rejected.
func Run(p Params) (types.SimulationResult, error) {
	var zero types.SimulationResult

	if p.Lift <= -1.0 {
		return zero, types.NewInvalidParameter("lift", p.Lift, "lift must be greater than -100%")
	}
	if p.Impressions < 0 {
		return zero, types.NewInvalidParameter("impressions", p.Impressions, "impressions must not be negative")
	}
	if p.CTR < 0 || p.CTR > 1 {
		return zero, types.NewInvalidParameter("ctr", p.CTR, "CTR must lie in [0,1]")
	}
	if p.ConversionRate < 0 || p.ConversionRate > 1 {
		return zero, types.NewInvalidParameter("conversion_rate", p.ConversionRate, "conversion rate must lie in [0,1]")
	}
	if p.AvgOrderValue < 0 {
		return zero, types.NewInvalidParameter("avg_order_value", p.AvgOrderValue, "average order value must not be negative")
	}

	newCTR := p.CTR * (1 + p.Lift)
	if newCTR > 1.0 {
		newCTR = 1.0
	}

	impressions := float64(p.Impressions)
	incClicks := impressions * (newCTR - p.CTR)
	incConversions := incClicks * p.ConversionRate
	incRevenue := incConversions * p.AvgOrderValue

	return types.SimulationResult{
		BaselineClicks:         impressions * p.CTR,
		CurrentCTR:             p.CTR,
		ProjectedCTR:           newCTR,
		IncrementalClicks:      incClicks,
		IncrementalConversions: incConversions,
		IncrementalRevenue:     incRevenue,
	}, nil
}
