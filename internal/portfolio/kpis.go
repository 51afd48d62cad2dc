package portfolio

import (
	"github.com/montanaflynn/stats"

	"proplens/domain/portfolio"
	"proplens/domain/property"
)

// unknownCategory buckets records whose categorical value was not reported
const unknownCategory = "Unknown"

// Aggregator computes the KPI set over a filtered collection. Recomputed
// from scratch on every call - aggregates are never mutated incrementally.
type Aggregator struct {
	bands portfolio.PriceBands
}

// NewAggregator creates an aggregator with the given price-band boundaries
func NewAggregator(bands portfolio.PriceBands) *Aggregator {
	return &Aggregator{bands: bands}
}

// KPIs computes the portfolio aggregate. An empty collection yields the
// all-zero KPISet with Count 0: zero properties is a fact, not a missing
// measurement, so the single-record null-propagation rule does not apply
// here. Unknown numeric fields contribute 0 to sums and averages; unknown
// categorical fields count under "Unknown".
func (a *Aggregator) KPIs(views []property.ChartProperty) portfolio.KPISet {
	if len(views) == 0 {
		return portfolio.KPISet{
			Risk: portfolio.RiskKPIs{
				FloodRisk:     map[string]int{},
				HurricaneRisk: map[string]int{},
			},
			Inventory: portfolio.Inventory{
				ByType:   map[string]int{},
				ByStatus: map[string]int{},
			},
		}
	}

	return portfolio.KPISet{
		PortfolioValue: portfolio.PortfolioValue{
			ListPrice:      sumOf(views, func(v property.ChartProperty) *float64 { return v.ListPrice }),
			MarketEstimate: sumOf(views, func(v property.ChartProperty) *float64 { return v.MarketEstimate }),
			RedfinEstimate: sumOf(views, func(v property.ChartProperty) *float64 { return v.RedfinEstimate }),
			AssessedValue:  sumOf(views, func(v property.ChartProperty) *float64 { return v.AssessedValue }),
		},
		Performance: portfolio.Performance{
			Appreciation5yr: avgOf(views, func(v property.ChartProperty) *float64 { return v.ROI.Appreciation5yr }),
			CapRate:         avgOf(views, func(v property.ChartProperty) *float64 { return v.ROI.CapRate }),
			RentalYield:     avgOf(views, func(v property.ChartProperty) *float64 { return v.ROI.RentalYield }),
			PricePerSqft:    avgOf(views, func(v property.ChartProperty) *float64 { return v.PricePerSqft }),
			DaysOnMarket:    avgOf(views, func(v property.ChartProperty) *float64 { return v.DaysOnMarket }),
		},
		Risk: portfolio.RiskKPIs{
			SafetyScore:   avgOf(views, func(v property.ChartProperty) *float64 { return v.Risk.SafetyScore }),
			FloodRisk:     distributionOf(views, func(v property.ChartProperty) *string { return v.Risk.FloodRisk }),
			HurricaneRisk: distributionOf(views, func(v property.ChartProperty) *string { return v.Risk.HurricaneRisk }),
		},
		Lifestyle: portfolio.LifestyleKPIs{
			WalkScore:    avgOf(views, func(v property.ChartProperty) *float64 { return v.Lifestyle.WalkScore }),
			TransitScore: avgOf(views, func(v property.ChartProperty) *float64 { return v.Lifestyle.TransitScore }),
			BikeScore:    avgOf(views, func(v property.ChartProperty) *float64 { return v.Lifestyle.BikeScore }),
		},
		Inventory: portfolio.Inventory{
			Total:      len(views),
			ByType:     distributionOf(views, func(v property.ChartProperty) *string { return v.PropertyType }),
			ByStatus:   distributionOf(views, func(v property.ChartProperty) *string { return v.ListingStatus }),
			PriceBands: a.priceBands(views),
		},
		Count: len(views),
	}
}

// priceBands counts list prices in the four fixed half-open bands. Records
// with an unknown list price fall in no band.
func (a *Aggregator) priceBands(views []property.ChartProperty) portfolio.PriceBandCount {
	var bands portfolio.PriceBandCount
	for _, v := range views {
		if v.ListPrice == nil {
			continue
		}
		switch p := *v.ListPrice; {
		case p < a.bands.Low:
			bands.Under2M++
		case p < a.bands.Mid:
			bands.From2to3M++
		case p < a.bands.High:
			bands.From3to4M++
		default:
			bands.Over4M++
		}
	}
	return bands
}

// sumOf totals a nullable metric, counting unknowns as 0
func sumOf(views []property.ChartProperty, metric func(property.ChartProperty) *float64) float64 {
	total, _ := stats.Sum(collect(views, metric))
	return total
}

// avgOf averages a nullable metric over the whole collection, counting
// unknowns as 0. The empty collection averages to 0 by definition.
func avgOf(views []property.ChartProperty, metric func(property.ChartProperty) *float64) float64 {
	if len(views) == 0 {
		return 0
	}
	mean, err := stats.Mean(collect(views, metric))
	if err != nil {
		return 0
	}
	return mean
}

func collect(views []property.ChartProperty, metric func(property.ChartProperty) *float64) []float64 {
	data := make([]float64, len(views))
	for i, v := range views {
		if value := metric(v); value != nil {
			data[i] = *value
		}
	}
	return data
}

// distributionOf counts records by raw categorical value
func distributionOf(views []property.ChartProperty, category func(property.ChartProperty) *string) map[string]int {
	dist := make(map[string]int)
	for _, v := range views {
		key := unknownCategory
		if c := category(v); c != nil && *c != "" {
			key = *c
		}
		dist[key]++
	}
	return dist
}
