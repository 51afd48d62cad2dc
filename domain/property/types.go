package property

import (
	"strings"
	"time"

	"proplens/domain/core"
)

// SourceRecord is the raw multi-provider property record. Each leaf is
// independently sourced (MLS feed, geocoder, climate-risk API, school-rating
// service) and therefore independently nullable. Grouping mirrors the
// upstream feed sections.
type SourceRecord struct {
	ID        core.PropertyID `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Address    AddressData       `json:"address"`
	Details    PropertyDetails   `json:"details"`
	Structural StructuralDetails `json:"structural"`
	Location   LocationData      `json:"location"`
	Financial  FinancialData     `json:"financial"`
	Utilities  UtilitiesData     `json:"utilities"`
}

// AddressData covers identity and listing attributes
type AddressData struct {
	FullAddress   core.Field[string]  `json:"full_address"`
	MLSPrimary    core.Field[string]  `json:"mls_primary"`
	ListingStatus core.Field[string]  `json:"listing_status"`
	ListingDate   core.Field[string]  `json:"listing_date"`
	ListingPrice  core.Field[float64] `json:"listing_price"`
	PricePerSqft  core.Field[float64] `json:"price_per_sqft"`
	StreetAddress core.Field[string]  `json:"street_address"`
	City          core.Field[string]  `json:"city"`
	State         core.Field[string]  `json:"state"`
	ZipCode       core.Field[string]  `json:"zip_code"`
	County        core.Field[string]  `json:"county"`
	Latitude      core.Field[float64] `json:"latitude"`
	Longitude     core.Field[float64] `json:"longitude"`
}

// PropertyDetails covers physical and transactional facts
type PropertyDetails struct {
	Bedrooms            core.Field[float64] `json:"bedrooms"`
	FullBathrooms       core.Field[float64] `json:"full_bathrooms"`
	HalfBathrooms       core.Field[float64] `json:"half_bathrooms"`
	TotalBathrooms      core.Field[float64] `json:"total_bathrooms"`
	LivingSqft          core.Field[float64] `json:"living_sqft"`
	TotalSqftUnderRoof  core.Field[float64] `json:"total_sqft_under_roof"`
	LotSizeSqft         core.Field[float64] `json:"lot_size_sqft"`
	LotSizeAcres        core.Field[float64] `json:"lot_size_acres"`
	YearBuilt           core.Field[float64] `json:"year_built"`
	PropertyType        core.Field[string]  `json:"property_type"`
	Stories             core.Field[float64] `json:"stories"`
	GarageSpaces        core.Field[float64] `json:"garage_spaces"`
	HOAFeeAnnual        core.Field[float64] `json:"hoa_fee_annual"`
	AnnualTaxes         core.Field[float64] `json:"annual_taxes"`
	TaxYear             core.Field[float64] `json:"tax_year"`
	AssessedValue       core.Field[float64] `json:"assessed_value"`
	MarketValueEstimate core.Field[float64] `json:"market_value_estimate"`
	LastSaleDate        core.Field[string]  `json:"last_sale_date"`
	LastSalePrice       core.Field[float64] `json:"last_sale_price"`
	OwnershipType       core.Field[string]  `json:"ownership_type"`
	ParcelID            core.Field[string]  `json:"parcel_id"`
}

// StructuralDetails covers construction, systems and amenities
type StructuralDetails struct {
	RoofType          core.Field[string] `json:"roof_type"`
	RoofAgeEst        core.Field[string] `json:"roof_age_est"`
	ExteriorMaterial  core.Field[string] `json:"exterior_material"`
	Foundation        core.Field[string] `json:"foundation"`
	HVACType          core.Field[string] `json:"hvac_type"`
	HVACAge           core.Field[string] `json:"hvac_age"`
	FlooringType      core.Field[string] `json:"flooring_type"`
	KitchenFeatures   core.Field[string] `json:"kitchen_features"`
	FireplaceYN       core.Field[bool]   `json:"fireplace_yn"`
	PoolYN            core.Field[bool]   `json:"pool_yn"`
	PoolType          core.Field[string] `json:"pool_type"`
	DeckPatio         core.Field[string] `json:"deck_patio"`
	Fence             core.Field[string] `json:"fence"`
	RecentRenovations core.Field[string] `json:"recent_renovations"`
	InteriorCondition core.Field[string] `json:"interior_condition"`
}

// LocationData covers schools, mobility and neighborhood character
type LocationData struct {
	AssignedElementary       core.Field[string]  `json:"assigned_elementary"`
	ElementaryRating         core.Field[string]  `json:"elementary_rating"`
	ElementaryDistanceMiles  core.Field[float64] `json:"elementary_distance_miles"`
	AssignedMiddle           core.Field[string]  `json:"assigned_middle"`
	MiddleRating             core.Field[string]  `json:"middle_rating"`
	MiddleDistanceMiles      core.Field[float64] `json:"middle_distance_miles"`
	AssignedHigh             core.Field[string]  `json:"assigned_high"`
	HighRating               core.Field[string]  `json:"high_rating"`
	HighDistanceMiles        core.Field[float64] `json:"high_distance_miles"`
	WalkScore                core.Field[float64] `json:"walk_score"`
	TransitScore             core.Field[float64] `json:"transit_score"`
	BikeScore                core.Field[float64] `json:"bike_score"`
	DistanceGroceryMiles     core.Field[float64] `json:"distance_grocery_miles"`
	DistanceHospitalMiles    core.Field[float64] `json:"distance_hospital_miles"`
	DistanceAirportMiles     core.Field[float64] `json:"distance_airport_miles"`
	DistanceParkMiles        core.Field[float64] `json:"distance_park_miles"`
	DistanceBeachMiles       core.Field[float64] `json:"distance_beach_miles"`
	CrimeIndexViolent        core.Field[string]  `json:"crime_index_violent"`
	CrimeIndexProperty       core.Field[string]  `json:"crime_index_property"`
	NeighborhoodSafetyRating core.Field[string]  `json:"neighborhood_safety_rating"`
	NoiseLevel               core.Field[string]  `json:"noise_level"`
	TrafficLevel             core.Field[string]  `json:"traffic_level"`
	WalkabilityDescription   core.Field[string]  `json:"walkability_description"`
	CommuteTimeCityCenter    core.Field[string]  `json:"commute_time_city_center"`
	PublicTransitAccess      core.Field[string]  `json:"public_transit_access"`
}

// FinancialData covers taxes, market context and investment estimates
type FinancialData struct {
	AnnualPropertyTax           core.Field[float64] `json:"annual_property_tax"`
	TaxExemptions               core.Field[string]  `json:"tax_exemptions"`
	PropertyTaxRate             core.Field[float64] `json:"property_tax_rate"`
	MedianHomePriceNeighborhood core.Field[float64] `json:"median_home_price_neighborhood"`
	PricePerSqftRecentAvg       core.Field[float64] `json:"price_per_sqft_recent_avg"`
	DaysOnMarketAvg             core.Field[float64] `json:"days_on_market_avg"`
	InventorySurplus            core.Field[string]  `json:"inventory_surplus"`
	RentalEstimateMonthly       core.Field[float64] `json:"rental_estimate_monthly"`
	RentalYieldEst              core.Field[float64] `json:"rental_yield_est"`
	VacancyRateNeighborhood     core.Field[float64] `json:"vacancy_rate_neighborhood"`
	CapRateEst                  core.Field[float64] `json:"cap_rate_est"`
	Appreciation5yrPct          core.Field[float64] `json:"appreciation_5yr_pct"`
	InsuranceEstAnnual          core.Field[float64] `json:"insurance_est_annual"`
	RedfinEstimate              core.Field[float64] `json:"redfin_estimate"`
	FinancingTerms              core.Field[string]  `json:"financing_terms"`
}

// UtilitiesData covers providers, environment and risk
type UtilitiesData struct {
	ElectricProvider          core.Field[string] `json:"electric_provider"`
	WaterProvider             core.Field[string] `json:"water_provider"`
	SewerProvider             core.Field[string] `json:"sewer_provider"`
	NaturalGas                core.Field[string] `json:"natural_gas"`
	MaxInternetSpeed          core.Field[string] `json:"max_internet_speed"`
	AirQualityIndexCurrent    core.Field[string] `json:"air_quality_index_current"`
	FloodZone                 core.Field[string] `json:"flood_zone"`
	FloodRiskLevel            core.Field[string] `json:"flood_risk_level"`
	HurricaneRisk             core.Field[string] `json:"hurricane_risk"`
	WildfireRisk              core.Field[string] `json:"wildfire_risk"`
	EarthquakeRisk            core.Field[string] `json:"earthquake_risk"`
	SeaLevelRiskLevel         core.Field[string] `json:"sea_level_risk_level"`
	NoiseLevelDbEst           core.Field[string] `json:"noise_level_db_est"`
	SolarPotential            core.Field[string] `json:"solar_potential"`
	EVChargingYN              core.Field[string] `json:"ev_charging_yn"`
	SmartHomeFeatures         core.Field[string] `json:"smart_home_features"`
	EmergencyServicesDistance core.Field[string] `json:"emergency_services_distance"`
	PetPolicy                 core.Field[string] `json:"pet_policy"`
	AgeRestrictions           core.Field[string] `json:"age_restrictions"`
	SpecialAssessments        core.Field[string] `json:"special_assessments"`
}

// DisplayAddress returns the best available address line for the record:
// the full address leaf when known, else street/city/state/zip joined, else
// a fixed placeholder so downstream matching never sees an empty string.
func (r *SourceRecord) DisplayAddress() string {
	if full := r.Address.FullAddress.Get(); full != nil && *full != "" {
		return *full
	}
	parts := make([]string, 0, 4)
	for _, f := range []core.Field[string]{
		r.Address.StreetAddress, r.Address.City, r.Address.State, r.Address.ZipCode,
	} {
		if v := f.Get(); v != nil && *v != "" {
			parts = append(parts, *v)
		}
	}
	if len(parts) == 0 {
		return "Unknown Address"
	}
	return strings.Join(parts, ", ")
}
