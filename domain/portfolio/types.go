package portfolio

import "proplens/domain/property"

// Filters carries the user-specified portfolio constraints. A nil/empty
// field means "no constraint", never "match nothing". All present
// constraints combine with logical AND.
type Filters struct {
	Region        string   `json:"region,omitempty" form:"region"`
	MinPrice      *float64 `json:"min_price,omitempty" form:"min_price"`
	MaxPrice      *float64 `json:"max_price,omitempty" form:"max_price"`
	PropertyTypes []string `json:"property_types,omitempty" form:"property_types"`
	MinBedrooms   *float64 `json:"min_bedrooms,omitempty" form:"min_bedrooms"`
	MaxBedrooms   *float64 `json:"max_bedrooms,omitempty" form:"max_bedrooms"`
}

// IsZero reports whether no constraint is set
func (f Filters) IsZero() bool {
	return f.Region == "" && f.MinPrice == nil && f.MaxPrice == nil &&
		len(f.PropertyTypes) == 0 && f.MinBedrooms == nil && f.MaxBedrooms == nil
}

// KPISet is the portfolio aggregate recomputed from scratch on every filter
// change. Unlike fields inside a single record, averages over an empty
// portfolio are 0, not nil: "zero properties" is a fact, not a missing
// measurement.
type KPISet struct {
	PortfolioValue PortfolioValue `json:"portfolio_value"`
	Performance    Performance    `json:"performance"`
	Risk           RiskKPIs       `json:"risk"`
	Lifestyle      LifestyleKPIs  `json:"lifestyle"`
	Inventory      Inventory      `json:"inventory"`
	Count          int            `json:"count"`
}

// PortfolioValue sums the four valuation bases across the portfolio
type PortfolioValue struct {
	ListPrice      float64 `json:"list_price"`
	MarketEstimate float64 `json:"market_estimate"`
	RedfinEstimate float64 `json:"redfin_estimate"`
	AssessedValue  float64 `json:"assessed_value"`
}

// Performance averages the five performance metrics
type Performance struct {
	Appreciation5yr float64 `json:"appreciation_5yr"`
	CapRate         float64 `json:"cap_rate"`
	RentalYield     float64 `json:"rental_yield"`
	PricePerSqft    float64 `json:"price_per_sqft"`
	DaysOnMarket    float64 `json:"days_on_market"`
}

// RiskKPIs holds the average safety score and categorical risk distributions
type RiskKPIs struct {
	SafetyScore   float64        `json:"safety_score"`
	FloodRisk     map[string]int `json:"flood_risk"`
	HurricaneRisk map[string]int `json:"hurricane_risk"`
}

// LifestyleKPIs averages the three mobility scores
type LifestyleKPIs struct {
	WalkScore    float64 `json:"walk_score"`
	TransitScore float64 `json:"transit_score"`
	BikeScore    float64 `json:"bike_score"`
}

// Inventory counts the portfolio by type, listing status and price band
type Inventory struct {
	Total      int            `json:"total"`
	ByType     map[string]int `json:"by_type"`
	ByStatus   map[string]int `json:"by_status"`
	PriceBands PriceBandCount `json:"price_bands"`
}

// PriceBandCount counts list prices in four fixed, non-overlapping,
// half-open bands. Records with an unknown list price fall in no band, so
// the bands may sum to less than Inventory.Total.
type PriceBandCount struct {
	Under2M   int `json:"under_2m"`
	From2to3M int `json:"2to3m"`
	From3to4M int `json:"3to4m"`
	Over4M    int `json:"over_4m"`
}

// PriceBands holds the configurable band boundaries (half-open intervals:
// <Low, [Low,Mid), [Mid,High), >=High)
type PriceBands struct {
	Low  float64 `json:"low"`
	Mid  float64 `json:"mid"`
	High float64 `json:"high"`
}

// DefaultPriceBands returns the standard 2M/3M/4M boundaries
func DefaultPriceBands() PriceBands {
	return PriceBands{Low: 2_000_000, Mid: 3_000_000, High: 4_000_000}
}

// Rankings holds the best pick per investment criterion. A slot is nil only
// when the filtered collection is empty.
type Rankings struct {
	BestCashflow     *property.ChartProperty `json:"best_cashflow"`
	BestAppreciation *property.ChartProperty `json:"best_appreciation"`
	BestLifestyle    *property.ChartProperty `json:"best_lifestyle"`
	BestLowRisk      *property.ChartProperty `json:"best_low_risk"`
}

// DashboardData is the full response envelope produced for the dashboard:
// filtered collection plus the aggregates and rankings computed over it.
type DashboardData struct {
	Filters         Filters                  `json:"filters"`
	KPIs            KPISet                   `json:"kpis"`
	Rankings        Rankings                 `json:"rankings"`
	Properties      []property.ChartProperty `json:"properties"`
	TotalUnfiltered int                      `json:"total_unfiltered"`
	TotalFiltered   int                      `json:"total_filtered"`
}
