package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proplens/domain/core"
	"proplens/domain/property"
)

func fullRecord() *property.SourceRecord {
	return &property.SourceRecord{
		ID: core.PropertyID("prop-001"),
		Address: property.AddressData{
			FullAddress:   core.FieldOf("123 Gulf Shore Blvd, Naples, FL", "mls"),
			ListingStatus: core.FieldOf("Active", "mls"),
			ListingPrice:  core.FieldOf(2_400_000.0, "mls"),
		},
		Details: property.PropertyDetails{
			Bedrooms:            core.FieldOf(4.0, "mls"),
			TotalBathrooms:      core.FieldOf(3.0, "mls"),
			LivingSqft:          core.FieldOf(3_000.0, "mls"),
			LotSizeSqft:         core.FieldOf(12_000.0, "county"),
			YearBuilt:           core.FieldOf(2005.0, "county"),
			PropertyType:        core.FieldOf("Single Family", "mls"),
			GarageSpaces:        core.FieldOf(2.0, "mls"),
			HOAFeeAnnual:        core.FieldOf(6_000.0, "mls"),
			AssessedValue:       core.FieldOf(2_000_000.0, "county"),
			MarketValueEstimate: core.FieldOf(2_450_000.0, "avm"),
			LastSalePrice:       core.FieldOf(1_700_000.0, "county"),
			LastSaleDate:        core.FieldOf("2019-06-15", "county"),
		},
		Structural: property.StructuralDetails{
			RoofAgeEst:        core.FieldOf("10 years", "inspection"),
			HVACAge:           core.FieldOf("4 years", "inspection"),
			InteriorCondition: core.FieldOf("8/10", "inspection"),
			PoolYN:            core.FieldOf(true, "mls"),
			DeckPatio:         core.FieldOf("Screened lanai", "mls"),
		},
		Location: property.LocationData{
			ElementaryRating:         core.FieldOf("9/10", "schools"),
			MiddleRating:             core.FieldOf("8/10", "schools"),
			HighRating:               core.FieldOf("A", "schools"),
			ElementaryDistanceMiles:  core.FieldOf(1.5, "schools"),
			MiddleDistanceMiles:      core.FieldOf(2.0, "schools"),
			HighDistanceMiles:        core.FieldOf(3.0, "schools"),
			WalkScore:                core.FieldOf(62.0, "walkscore"),
			TransitScore:             core.FieldOf(40.0, "walkscore"),
			BikeScore:                core.FieldOf(55.0, "walkscore"),
			DistanceBeachMiles:       core.FieldOf(0.4, "geocoder"),
			NeighborhoodSafetyRating: core.FieldOf("8/10", "crime"),
			CommuteTimeCityCenter:    core.FieldOf("15 min", "geocoder"),
		},
		Financial: property.FinancialData{
			AnnualPropertyTax:           core.FieldOf(24_000.0, "county"),
			InsuranceEstAnnual:          core.FieldOf(9_000.0, "insurer"),
			MedianHomePriceNeighborhood: core.FieldOf(1_000_000.0, "market"),
			DaysOnMarketAvg:             core.FieldOf(45.0, "market"),
			RentalEstimateMonthly:       core.FieldOf(10_000.0, "rental"),
			RentalYieldEst:              core.FieldOf(5.0, "rental"),
			CapRateEst:                  core.FieldOf(4.0, "rental"),
			Appreciation5yrPct:          core.FieldOf(7.5, "market"),
			RedfinEstimate:              core.FieldOf(2_420_000.0, "redfin"),
		},
		Utilities: property.UtilitiesData{
			AirQualityIndexCurrent: core.FieldOf("42", "epa"),
			FloodRiskLevel:         core.FieldOf("Moderate", "fema"),
			HurricaneRisk:          core.FieldOf("High", "noaa"),
			SeaLevelRiskLevel:      core.FieldOf("Low", "noaa"),
		},
	}
}

func TestNormalizeFullRecord(t *testing.T) {
	n := NewNormalizer()
	view := n.Normalize(fullRecord())

	assert.Equal(t, "123 Gulf Shore Blvd, Naples, FL", view.Address)

	// Monthly costs are exact twelfths, unrounded
	require.NotNil(t, view.MonthlyPropertyTax)
	assert.InDelta(t, 2000, *view.MonthlyPropertyTax, 1e-9)
	require.NotNil(t, view.MonthlyInsurance)
	assert.InDelta(t, 750, *view.MonthlyInsurance, 1e-9)
	require.NotNil(t, view.MonthlyHOA)
	assert.InDelta(t, 500, *view.MonthlyHOA, 1e-9)

	// District rating averages the three parsed school ratings: (9+8+10)/3 = 9
	require.NotNil(t, view.Schools.DistrictRating)
	assert.Equal(t, 9.0, *view.Schools.DistrictRating)

	// Safety: 8/10 scaled to 0-100
	require.NotNil(t, view.Risk.SafetyScore)
	assert.Equal(t, 80.0, *view.Risk.SafetyScore)

	// Condition: 100 - 4*roofAge and 100 - 5*hvacAge, averaged
	require.NotNil(t, view.Condition.RoofAge)
	assert.Equal(t, 10.0, *view.Condition.RoofAge)
	require.NotNil(t, view.Condition.OverallCondition)
	assert.Equal(t, 70.0, *view.Condition.OverallCondition)

	// Kitchen from "8/10" on the 0-100 scale
	require.NotNil(t, view.Condition.KitchenCondition)
	assert.Equal(t, 80.0, *view.Condition.KitchenCondition)

	// Commute estimates
	require.NotNil(t, view.Commute.CityCenter)
	assert.Equal(t, 15.0, *view.Commute.CityCenter)
	require.NotNil(t, view.Commute.Elementary)
	assert.Equal(t, 5.0, *view.Commute.Elementary) // round(1.5mi * 3min)
	require.NotNil(t, view.Commute.TransitHub)
	assert.Equal(t, 20.0, *view.Commute.TransitHub) // round(30 - 0.25*40)

	// Beach: 100 - 10*0.4, and within the 0.5mi access threshold
	require.NotNil(t, view.LocationScore.BeachAccess)
	assert.Equal(t, 96.0, *view.LocationScore.BeachAccess)
	require.NotNil(t, view.Features.BeachAccess)
	assert.True(t, *view.Features.BeachAccess)

	// Financial health: (capRate*10 + rentalYield*5)/2, rounded
	require.NotNil(t, view.InvestmentScore.FinancialHealth)
	assert.Equal(t, 33.0, *view.InvestmentScore.FinancialHealth)

	// Price-to-rent: 2.4M / (10k * 12)
	require.NotNil(t, view.ROI.PriceToRentRatio)
	assert.Equal(t, 20.0, *view.ROI.PriceToRentRatio)

	// Space estimates from living sqft
	require.NotNil(t, view.LivingSpace)
	assert.Equal(t, 2550.0, *view.LivingSpace)
	require.NotNil(t, view.GarageStorage)
	assert.Equal(t, 800.0, *view.GarageStorage)

	// AQI 42 scores the top band, measured, not assumed
	require.NotNil(t, view.LocationScore.AirQuality)
	assert.Equal(t, 100.0, *view.LocationScore.AirQuality)
	assert.NotContains(t, view.MissingFields, "airQuality (assumed)")

	assert.Greater(t, view.DataCompleteness, 80)
}

func TestNormalizeNeighborhoodPulse(t *testing.T) {
	n := NewNormalizer()
	view := n.Normalize(fullRecord())

	require.NotNil(t, view.NeighborhoodPulse)
	assert.Equal(t, 1_000_000.0, view.NeighborhoodPulse.Year2025)
	assert.Equal(t, 680272.0, view.NeighborhoodPulse.Year2020)
	assert.Equal(t, 925926.0, view.NeighborhoodPulse.Year2024)

	// Without a median the whole cluster stays nil
	rec := fullRecord()
	rec.Financial.MedianHomePriceNeighborhood = core.Field[float64]{}
	assert.Nil(t, n.Normalize(rec).NeighborhoodPulse)
}

func TestNormalizeNullPropagation(t *testing.T) {
	n := NewNormalizer()

	rec := fullRecord()
	rec.Financial.CapRateEst = core.Field[float64]{}
	view := n.Normalize(rec)

	// A composite with any missing input stays nil
	assert.Nil(t, view.InvestmentScore.FinancialHealth)
	assert.Nil(t, view.ROI.CapRate)
	assert.Contains(t, view.MissingFields, "capRate")
	assert.Contains(t, view.MissingFields, "financialHealth")

	// District rating needs all three school ratings
	rec = fullRecord()
	rec.Location.MiddleRating = core.Field[string]{}
	view = n.Normalize(rec)
	assert.Nil(t, view.Schools.DistrictRating)
	assert.Contains(t, view.MissingFields, "districtRating")
}

func TestNormalizeFallbackChains(t *testing.T) {
	n := NewNormalizer()

	// Living sqft falls back to total under roof
	rec := fullRecord()
	rec.Details.LivingSqft = core.Field[float64]{}
	rec.Details.TotalSqftUnderRoof = core.FieldOf(3_400.0, "county")
	view := n.Normalize(rec)
	require.NotNil(t, view.Sqft)
	assert.Equal(t, 3400.0, *view.Sqft)

	// Lot size falls back to acreage converted to sqft
	rec = fullRecord()
	rec.Details.LotSizeSqft = core.Field[float64]{}
	rec.Details.LotSizeAcres = core.FieldOf(0.5, "county")
	view = n.Normalize(rec)
	require.NotNil(t, view.LotSize)
	assert.Equal(t, 21780.0, *view.LotSize)

	// Price per sqft derives from list price when not reported
	rec = fullRecord()
	view = n.Normalize(rec)
	require.NotNil(t, view.PricePerSqft)
	assert.Equal(t, 800.0, *view.PricePerSqft)
}

func TestNormalizeKitchenConditionAssumed(t *testing.T) {
	n := NewNormalizer()

	// An uninterpretable condition string falls to the neutral default and
	// must be ledgered as an assumption, like the AQI default
	rec := fullRecord()
	rec.Structural.InteriorCondition = core.FieldOf("Mystery condition", "inspection")
	view := n.Normalize(rec)
	require.NotNil(t, view.Condition.KitchenCondition)
	assert.Equal(t, 50.0, *view.Condition.KitchenCondition)
	assert.Contains(t, view.MissingFields, "kitchenCondition (assumed)")

	// Interpretable encodings are measured, never flagged
	rec = fullRecord()
	rec.Structural.InteriorCondition = core.FieldOf("Good", "inspection")
	view = n.Normalize(rec)
	require.NotNil(t, view.Condition.KitchenCondition)
	assert.Equal(t, 70.0, *view.Condition.KitchenCondition)
	assert.NotContains(t, view.MissingFields, "kitchenCondition (assumed)")

	// An absent leaf stays nil with no assumption to flag
	rec = fullRecord()
	rec.Structural.InteriorCondition = core.Field[string]{}
	view = n.Normalize(rec)
	assert.Nil(t, view.Condition.KitchenCondition)
	assert.NotContains(t, view.MissingFields, "kitchenCondition (assumed)")
}

func TestNormalizeSafetyFromCrimeIndexes(t *testing.T) {
	n := NewNormalizer()

	// Without the neighborhood rating, safety derives from both crime indexes
	rec := fullRecord()
	rec.Location.NeighborhoodSafetyRating = core.Field[string]{}
	rec.Location.CrimeIndexViolent = core.FieldOf("Low", "crime")
	rec.Location.CrimeIndexProperty = core.FieldOf("Moderate", "crime")
	view := n.Normalize(rec)
	require.NotNil(t, view.Risk.SafetyScore)
	assert.Equal(t, 70.0, *view.Risk.SafetyScore) // (85+55)/2

	// The fallback needs both indexes
	rec.Location.CrimeIndexProperty = core.Field[string]{}
	view = n.Normalize(rec)
	assert.Nil(t, view.Risk.SafetyScore)
	assert.Contains(t, view.MissingFields, "safetyScore")

	// An uninterpretable index never launders its neutral default through
	rec.Location.CrimeIndexProperty = core.FieldOf("index 42", "crime")
	view = n.Normalize(rec)
	assert.Nil(t, view.Risk.SafetyScore)

	// The reported rating still wins over the crime fallback
	rec = fullRecord()
	rec.Location.CrimeIndexViolent = core.FieldOf("Very High", "crime")
	rec.Location.CrimeIndexProperty = core.FieldOf("Very High", "crime")
	view = n.Normalize(rec)
	require.NotNil(t, view.Risk.SafetyScore)
	assert.Equal(t, 80.0, *view.Risk.SafetyScore)
}

func TestNormalizeEmptyRecord(t *testing.T) {
	n := NewNormalizer()
	view := n.Normalize(&property.SourceRecord{ID: core.PropertyID("empty-001")})

	assert.Equal(t, "Unknown Address", view.Address)
	assert.Nil(t, view.ListPrice)
	assert.Nil(t, view.Schools.DistrictRating)
	assert.Nil(t, view.NeighborhoodPulse)
	assert.Nil(t, view.Features.Pool)

	// Air quality is the documented exception: neutral score, flagged
	require.NotNil(t, view.LocationScore.AirQuality)
	assert.Equal(t, 50.0, *view.LocationScore.AirQuality)
	assert.Contains(t, view.MissingFields, "airQuality (assumed)")

	assert.NotEmpty(t, view.MissingFields)
	assert.GreaterOrEqual(t, view.DataCompleteness, 0)
	assert.LessOrEqual(t, view.DataCompleteness, 100)
}

func TestNormalizeDeterministic(t *testing.T) {
	n := NewNormalizer()
	rec := fullRecord()
	first := n.Normalize(rec)
	second := n.Normalize(rec)
	assert.Equal(t, first, second)
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	n := NewNormalizer()
	records := []*property.SourceRecord{
		{ID: core.PropertyID("a")},
		{ID: core.PropertyID("b")},
		{ID: core.PropertyID("c")},
	}
	views := n.NormalizeAll(records)
	require.Len(t, views, 3)
	for i, rec := range records {
		assert.Equal(t, rec.ID, views[i].ID)
	}
}
