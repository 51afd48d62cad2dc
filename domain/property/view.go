package property

import "proplens/domain/core"

// ChartProperty is the flat, chart-ready view of one property record.
// Every field is nullable: a non-nil value is traceable to non-nil source
// leaves, and any derivation with a missing input stays nil. Nothing here is
// ever defaulted to zero - rendering a nil distinctly from zero is the
// presentation layer's job. Immutable after construction.
type ChartProperty struct {
	ID      core.PropertyID `json:"id"`
	Address string          `json:"address"`

	// Pricing history
	SalePrice      *float64 `json:"sale_price"`
	ListPrice      *float64 `json:"list_price"`
	AssessedValue  *float64 `json:"assessed_value"`
	MarketEstimate *float64 `json:"market_estimate"`
	RedfinEstimate *float64 `json:"redfin_estimate"`
	LastSalePrice  *float64 `json:"last_sale_price"`
	LastSaleDate   *string  `json:"last_sale_date"`
	PricePerSqft   *float64 `json:"price_per_sqft"`

	// Monthly carrying costs (annual figures divided by 12, unrounded)
	MonthlyPropertyTax *float64 `json:"monthly_property_tax"`
	MonthlyInsurance   *float64 `json:"monthly_insurance"`
	MonthlyHOA         *float64 `json:"monthly_hoa"`
	MonthlyUtilities   *float64 `json:"monthly_utilities"`

	InvestmentScore InvestmentScore `json:"investment_score"`
	LocationScore   LocationScore   `json:"location_score"`
	Condition       ConditionScores `json:"condition"`
	Features        FeatureFlags    `json:"features"`

	// Space distribution
	Sqft          *float64 `json:"sqft"`
	LivingSpace   *float64 `json:"living_space"`
	GarageStorage *float64 `json:"garage_storage"`
	CoveredAreas  *float64 `json:"covered_areas"`
	LotSize       *float64 `json:"lot_size"`

	Schools           SchoolMetrics      `json:"schools"`
	Commute           CommuteMinutes     `json:"commute"`
	NeighborhoodPulse *NeighborhoodPulse `json:"neighborhood_pulse"`
	Risk              RiskProfile        `json:"risk"`
	ROI               ROIMetrics         `json:"roi"`
	Lifestyle         LifestyleScores    `json:"lifestyle"`

	// Basic facts
	Bedrooms      *float64 `json:"bedrooms"`
	Bathrooms     *float64 `json:"bathrooms"`
	YearBuilt     *float64 `json:"year_built"`
	PropertyType  *string  `json:"property_type"`
	ListingStatus *string  `json:"listing_status"`
	DaysOnMarket  *float64 `json:"days_on_market"`

	// Bookkeeping
	DataCompleteness int      `json:"data_completeness"`
	MissingFields    []string `json:"missing_fields"`
}

// InvestmentScore holds the 0-100 investment sub-scores
type InvestmentScore struct {
	FinancialHealth   *float64 `json:"financial_health"`
	LocationValue     *float64 `json:"location_value"`
	PropertyCondition *float64 `json:"property_condition"`
	RiskProfile       *float64 `json:"risk_profile"`
	MarketPosition    *float64 `json:"market_position"`
	GrowthPotential   *float64 `json:"growth_potential"`
}

// LocationScore holds the 0-100 location sub-scores
type LocationScore struct {
	BeachAccess     *float64 `json:"beach_access"`
	SchoolProximity *float64 `json:"school_proximity"`
	TransitAccess   *float64 `json:"transit_access"`
	SafetyScore     *float64 `json:"safety_score"`
	Walkability     *float64 `json:"walkability"`
	CommuteScore    *float64 `json:"commute_score"`
	AirQuality      *float64 `json:"air_quality"`
}

// ConditionScores holds ages and 0-100 condition scores
type ConditionScores struct {
	RoofAge          *float64 `json:"roof_age"`
	HVACAge          *float64 `json:"hvac_age"`
	KitchenCondition *float64 `json:"kitchen_condition"`
	OverallCondition *float64 `json:"overall_condition"`
}

// FeatureFlags holds binary amenity indicators. Nil means "not reported",
// which presentation must not collapse into false.
type FeatureFlags struct {
	Pool        *bool `json:"pool"`
	Deck        *bool `json:"deck"`
	SmartHome   *bool `json:"smart_home"`
	Fireplace   *bool `json:"fireplace"`
	EVCharging  *bool `json:"ev_charging"`
	BeachAccess *bool `json:"beach_access"`
}

// SchoolMetrics holds distances (miles) and the district rating (0-10)
type SchoolMetrics struct {
	ElementaryDistance *float64 `json:"elementary_distance"`
	MiddleDistance     *float64 `json:"middle_distance"`
	HighDistance       *float64 `json:"high_distance"`
	DistrictRating     *float64 `json:"district_rating"`
}

// CommuteMinutes holds estimated travel times in minutes
type CommuteMinutes struct {
	CityCenter *float64 `json:"city_center"`
	Elementary *float64 `json:"elementary"`
	TransitHub *float64 `json:"transit_hub"`
	Emergency  *float64 `json:"emergency"`
}

// NeighborhoodPulse holds estimated median prices by year, back-projected
// from the current neighborhood median. The whole cluster is nil when the
// median is unknown.
type NeighborhoodPulse struct {
	Year2020 float64 `json:"year_2020"`
	Year2021 float64 `json:"year_2021"`
	Year2022 float64 `json:"year_2022"`
	Year2023 float64 `json:"year_2023"`
	Year2024 float64 `json:"year_2024"`
	Year2025 float64 `json:"year_2025"`
}

// RiskProfile holds categorical risk levels as reported plus the 0-100
// safety score
type RiskProfile struct {
	FloodRisk      *string  `json:"flood_risk"`
	HurricaneRisk  *string  `json:"hurricane_risk"`
	WildfireRisk   *string  `json:"wildfire_risk"`
	EarthquakeRisk *string  `json:"earthquake_risk"`
	SeaLevelRisk   *string  `json:"sea_level_risk"`
	CrimeViolent   *string  `json:"crime_violent"`
	CrimeProperty  *string  `json:"crime_property"`
	SafetyScore    *float64 `json:"safety_score"`
}

// ROIMetrics holds investment return figures
type ROIMetrics struct {
	CapRate          *float64 `json:"cap_rate"`
	RentalYield      *float64 `json:"rental_yield"`
	PriceToRentRatio *float64 `json:"price_to_rent_ratio"`
	Appreciation5yr  *float64 `json:"appreciation_5yr"`
	RentalEstimate   *float64 `json:"rental_estimate"`
}

// LifestyleScores holds the three mobility scores (0-100)
type LifestyleScores struct {
	WalkScore    *float64 `json:"walk_score"`
	TransitScore *float64 `json:"transit_score"`
	BikeScore    *float64 `json:"bike_score"`
}
