package normalize

import (
	"math"

	"proplens/domain/core"
	"proplens/domain/property"
)

// Fixed derivation constants. These produce estimates, not measurements,
// and downstream presentation labels them as such.
const (
	// minutesPerMile converts a road distance into an estimated drive time
	minutesPerMile = 3.0
	// sqftPerGarageCar estimates storage area per garage space
	sqftPerGarageCar = 400.0
	// sqftPerAcre converts lot acreage to square feet
	sqftPerAcre = 43560.0
	// livingSpaceShare estimates heated living area as a share of total sqft
	livingSpaceShare = 0.85
	// coveredAreaShare estimates porches/lanais as a share of total sqft
	coveredAreaShare = 0.05
)

// Back-projection divisors for the neighborhood price history, assuming the
// recent ~8%/yr coastal growth trend
var pulseDivisors = [...]float64{1.47, 1.36, 1.26, 1.17, 1.08}

// Normalizer walks one SourceRecord and produces the flat ChartProperty
// plus its missing-field ledger. Construction is all-or-nothing: the
// returned view is complete and immutable. Pure - no I/O, no shared state.
type Normalizer struct {
	checklistSize int
}

// NewNormalizer creates a Normalizer scoring completeness against the
// standard checklist
func NewNormalizer() *Normalizer {
	return &Normalizer{checklistSize: ChecklistSize}
}

// ledger records, in encounter order, the output fields that could not be
// resolved from any source path
type ledger struct {
	missing []string
}

func track[T any](l *ledger, name string, v *T) *T {
	if v == nil {
		l.missing = append(l.missing, name)
	}
	return v
}

// assume flags a non-nil default as an assumption rather than measured data
func (l *ledger) assume(name string) {
	l.missing = append(l.missing, name+" (assumed)")
}

// Normalize maps one source record to its chart-ready view. Every output
// field resolves through the field accessor chained with the text parsers
// and zero or more fallback source paths; a field whose every path yields
// nil stays nil and lands in the ledger. Composites require all inputs -
// partial-input averaging would launder an estimate as fact.
func (n *Normalizer) Normalize(rec *property.SourceRecord) property.ChartProperty {
	led := &ledger{}

	// Pricing
	listPrice := rec.Address.ListingPrice.Get()
	assessedValue := rec.Details.AssessedValue.Get()
	marketEstimate := rec.Details.MarketValueEstimate.Get()
	redfinEstimate := rec.Financial.RedfinEstimate.Get()
	lastSalePrice := rec.Details.LastSalePrice.Get()

	// Space, with the under-roof fallback for living sqft
	sqft := firstNonNil(rec.Details.LivingSqft.Get(), rec.Details.TotalSqftUnderRoof.Get())
	lotSize := firstNonNil(rec.Details.LotSizeSqft.Get(), scale(rec.Details.LotSizeAcres.Get(), sqftPerAcre))
	garageStorage := scale(rec.Details.GarageSpaces.Get(), sqftPerGarageCar)
	pricePerSqft := firstNonNil(rec.Address.PricePerSqft.Get(), ratio(listPrice, sqft))

	// Monthly costs: exact division by 12, rounding left to presentation
	annualTax := firstNonNil(rec.Financial.AnnualPropertyTax.Get(), rec.Details.AnnualTaxes.Get())
	monthlyTax := scale(annualTax, 1.0/12)
	monthlyInsurance := scale(rec.Financial.InsuranceEstAnnual.Get(), 1.0/12)
	monthlyHOA := scale(rec.Details.HOAFeeAnnual.Get(), 1.0/12)

	// Mobility
	walkScore := rec.Location.WalkScore.Get()
	transitScore := rec.Location.TransitScore.Get()
	bikeScore := rec.Location.BikeScore.Get()

	// Schools
	elemDist := rec.Location.ElementaryDistanceMiles.Get()
	middleDist := rec.Location.MiddleDistanceMiles.Get()
	highDist := rec.Location.HighDistanceMiles.Get()
	elemRating := ratingOf(rec.Location.ElementaryRating)
	middleRating := ratingOf(rec.Location.MiddleRating)
	highRating := ratingOf(rec.Location.HighRating)
	districtRating := roundPtr(meanAll(elemRating, middleRating, highRating))

	// Safety: 0-10 neighborhood rating scaled to 0-100, falling back to the
	// two crime indexes when the rating is not reported
	safetyRating := ratingOf(rec.Location.NeighborhoodSafetyRating)
	safetyScore := scale(safetyRating, 10)
	if safetyScore == nil {
		safetyScore = crimeSafetyScore(rec.Location.CrimeIndexViolent, rec.Location.CrimeIndexProperty)
	}

	// Commute estimates
	commuteCity := numericOf(rec.Location.CommuteTimeCityCenter)
	commuteElem := roundPtr(scale(elemDist, minutesPerMile))
	transitHub := roundPtr(affine(transitScore, -0.25, 30))
	emergencyMinutes := roundPtr(scale(numericOf(rec.Utilities.EmergencyServicesDistance), minutesPerMile))

	// Condition: system age inverted into a 0-100 score (newer is better)
	roofAge := numericOf(rec.Structural.RoofAgeEst)
	hvacAge := numericOf(rec.Structural.HVACAge)
	roofCondition := clampFloor(affine(roofAge, -4, 100), 0)
	hvacCondition := clampFloor(affine(hvacAge, -5, 100), 0)
	overallCondition := roundPtr(meanAll(roofCondition, hvacCondition))
	kitchenCondition, kitchenAssumed := kitchenScore(rec.Structural.InteriorCondition)
	if kitchenAssumed {
		led.assume("kitchenCondition")
	}

	// Location sub-scores
	beachDist := rec.Location.DistanceBeachMiles.Get()
	beachScore := clampFloor(affine(beachDist, -10, 100), 0)
	commuteScore := clampFloor(affine(commuteCity, -2, 100), 0)

	// Air quality is the documented exception to null-propagation: a fully
	// unknown AQI still gets the neutral mid-range score, flagged as an
	// assumption in the ledger.
	var airQuality *float64
	if raw := rec.Utilities.AirQualityIndexCurrent.Get(); raw != nil {
		score, assumed := AQIScore(*raw)
		airQuality = &score
		if assumed {
			led.assume("airQuality")
		}
	} else {
		neutral := neutralScore
		airQuality = &neutral
		led.assume("airQuality")
	}

	// ROI
	capRate := rec.Financial.CapRateEst.Get()
	rentalYield := rec.Financial.RentalYieldEst.Get()
	rentalEstimate := rec.Financial.RentalEstimateMonthly.Get()
	appreciation5yr := rec.Financial.Appreciation5yrPct.Get()
	priceToRent := ratio(listPrice, scale(rentalEstimate, 12))

	// Investment composites: nil unless every constituent is present
	financialHealth := roundPtr(financialHealthScore(capRate, rentalYield))

	// Neighborhood price history back-projected from the current median
	pulse := neighborhoodPulse(rec.Financial.MedianHomePriceNeighborhood.Get())

	view := property.ChartProperty{
		ID:      rec.ID,
		Address: rec.DisplayAddress(),

		SalePrice:      track(led, "salePrice", lastSalePrice),
		ListPrice:      track(led, "listPrice", listPrice),
		AssessedValue:  track(led, "assessedValue", assessedValue),
		MarketEstimate: track(led, "marketEstimate", marketEstimate),
		RedfinEstimate: track(led, "redfinEstimate", redfinEstimate),
		LastSalePrice:  track(led, "lastSalePrice", lastSalePrice),
		LastSaleDate:   track(led, "lastSaleDate", rec.Details.LastSaleDate.Get()),
		PricePerSqft:   track(led, "pricePerSqft", pricePerSqft),

		MonthlyPropertyTax: track(led, "propertyTax", monthlyTax),
		MonthlyInsurance:   track(led, "insurance", monthlyInsurance),
		MonthlyHOA:         track(led, "hoa", monthlyHOA),
		MonthlyUtilities:   track[float64](led, "utilities", nil), // no utility-bill provider yet

		InvestmentScore: property.InvestmentScore{
			FinancialHealth:   track(led, "financialHealth", financialHealth),
			LocationValue:     walkScore,
			PropertyCondition: overallCondition,
			RiskProfile:       safetyScore,
			MarketPosition:    nil, // needs market comparison data
			GrowthPotential:   appreciation5yr,
		},

		LocationScore: property.LocationScore{
			BeachAccess:     beachScore,
			SchoolProximity: scale(districtRating, 10),
			TransitAccess:   transitScore,
			SafetyScore:     safetyScore,
			Walkability:     walkScore,
			CommuteScore:    commuteScore,
			AirQuality:      airQuality,
		},

		Condition: property.ConditionScores{
			RoofAge:          track(led, "roofAge", roofAge),
			HVACAge:          track(led, "hvacAge", hvacAge),
			KitchenCondition: kitchenCondition,
			OverallCondition: track(led, "overallCondition", overallCondition),
		},

		Features: property.FeatureFlags{
			Pool:        rec.Structural.PoolYN.Get(),
			Deck:        presence(rec.Structural.DeckPatio.Get()),
			SmartHome:   presence(rec.Utilities.SmartHomeFeatures.Get()),
			Fireplace:   rec.Structural.FireplaceYN.Get(),
			EVCharging:  yesNo(rec.Utilities.EVChargingYN.Get()),
			BeachAccess: within(beachDist, 0.5),
		},

		Sqft:          track(led, "sqft", sqft),
		LivingSpace:   roundPtr(scale(sqft, livingSpaceShare)),
		GarageStorage: garageStorage,
		CoveredAreas:  roundPtr(scale(sqft, coveredAreaShare)),
		LotSize:       track(led, "lotSize", lotSize),

		Schools: property.SchoolMetrics{
			ElementaryDistance: track(led, "elementaryDistance", elemDist),
			MiddleDistance:     track(led, "middleDistance", middleDist),
			HighDistance:       track(led, "highDistance", highDist),
			DistrictRating:     track(led, "districtRating", districtRating),
		},

		Commute: property.CommuteMinutes{
			CityCenter: track(led, "commuteCity", commuteCity),
			Elementary: commuteElem,
			TransitHub: transitHub,
			Emergency:  emergencyMinutes,
		},

		NeighborhoodPulse: pulse,

		Risk: property.RiskProfile{
			FloodRisk:      track(led, "floodRisk", firstNonNil(rec.Utilities.FloodRiskLevel.Get(), rec.Utilities.FloodZone.Get())),
			HurricaneRisk:  track(led, "hurricaneRisk", rec.Utilities.HurricaneRisk.Get()),
			WildfireRisk:   rec.Utilities.WildfireRisk.Get(),
			EarthquakeRisk: rec.Utilities.EarthquakeRisk.Get(),
			SeaLevelRisk:   track(led, "seaLevelRisk", rec.Utilities.SeaLevelRiskLevel.Get()),
			CrimeViolent:   rec.Location.CrimeIndexViolent.Get(),
			CrimeProperty:  rec.Location.CrimeIndexProperty.Get(),
			SafetyScore:    track(led, "safetyScore", safetyScore),
		},

		ROI: property.ROIMetrics{
			CapRate:          track(led, "capRate", capRate),
			RentalYield:      track(led, "rentalYield", rentalYield),
			PriceToRentRatio: priceToRent,
			Appreciation5yr:  track(led, "appreciation5yr", appreciation5yr),
			RentalEstimate:   track(led, "rentalEstimate", rentalEstimate),
		},

		Lifestyle: property.LifestyleScores{
			WalkScore:    track(led, "walkScore", walkScore),
			TransitScore: track(led, "transitScore", transitScore),
			BikeScore:    track(led, "bikeScore", bikeScore),
		},

		Bedrooms:      track(led, "bedrooms", rec.Details.Bedrooms.Get()),
		Bathrooms:     track(led, "bathrooms", rec.Details.TotalBathrooms.Get()),
		YearBuilt:     track(led, "yearBuilt", rec.Details.YearBuilt.Get()),
		PropertyType:  track(led, "propertyType", rec.Details.PropertyType.Get()),
		ListingStatus: track(led, "listingStatus", rec.Address.ListingStatus.Get()),
		DaysOnMarket:  track(led, "daysOnMarket", rec.Financial.DaysOnMarketAvg.Get()),
	}

	view.MissingFields = led.missing
	view.DataCompleteness = Completeness(len(led.missing), n.checklistSize)
	return view
}

// NormalizeAll maps a collection in input order
func (n *Normalizer) NormalizeAll(records []*property.SourceRecord) []property.ChartProperty {
	views := make([]property.ChartProperty, 0, len(records))
	for _, rec := range records {
		views = append(views, n.Normalize(rec))
	}
	return views
}

// financialHealthScore combines cap rate and rental yield into the 0-100
// financial-health composite. Both inputs required.
func financialHealthScore(capRate, rentalYield *float64) *float64 {
	if capRate == nil || rentalYield == nil {
		return nil
	}
	v := (*capRate*10 + *rentalYield*5) / 2
	return &v
}

// kitchenScore resolves the interior-condition leaf: rating encodings first
// ("8/10", "B"), then the categorical condition words via the score map.
// assumed carries through when the string fell to the map's default branch,
// so the caller can ledger the neutral score as an assumption.
func kitchenScore(f core.Field[string]) (value *float64, assumed bool) {
	raw := f.Get()
	if raw == nil {
		return nil, false
	}
	if rating := ParseRating(*raw); rating != nil {
		v := *rating * 10
		return &v, false
	}
	score, assumed := ConditionScore(*raw)
	return &score, assumed
}

// crimeSafetyScore averages the two crime-index scores into a safety score.
// Both indexes must be present and interpretable; an assumed default on
// either side would launder the neutral score into a measured-looking value.
func crimeSafetyScore(violent, prop core.Field[string]) *float64 {
	v, p := violent.Get(), prop.Get()
	if v == nil || p == nil {
		return nil
	}
	vScore, vAssumed := CrimeLevelScore(*v)
	pScore, pAssumed := CrimeLevelScore(*p)
	if vAssumed || pAssumed {
		return nil
	}
	out := (vScore + pScore) / 2
	return &out
}

// neighborhoodPulse back-projects the yearly median prices from the current
// neighborhood median. Returns nil when the median is unknown.
func neighborhoodPulse(median *float64) *property.NeighborhoodPulse {
	if median == nil {
		return nil
	}
	return &property.NeighborhoodPulse{
		Year2020: math.Round(*median / pulseDivisors[0]),
		Year2021: math.Round(*median / pulseDivisors[1]),
		Year2022: math.Round(*median / pulseDivisors[2]),
		Year2023: math.Round(*median / pulseDivisors[3]),
		Year2024: math.Round(*median / pulseDivisors[4]),
		Year2025: *median,
	}
}

// numericOf parses a free-form numeric string leaf
func numericOf(f core.Field[string]) *float64 {
	if s := f.Get(); s != nil {
		return ParseNumeric(*s)
	}
	return nil
}

// ratingOf parses a 0-10 rating string leaf
func ratingOf(f core.Field[string]) *float64 {
	if s := f.Get(); s != nil {
		return ParseRating(*s)
	}
	return nil
}

// firstNonNil returns the first present value in a fallback chain
func firstNonNil[T any](candidates ...*T) *T {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

// scale multiplies a nullable value by a constant, propagating nil
func scale(v *float64, factor float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v * factor
	return &out
}

// affine computes v*slope + intercept, propagating nil
func affine(v *float64, slope, intercept float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v*slope + intercept
	return &out
}

// ratio divides num by den, propagating nil and guarding zero denominators
func ratio(num, den *float64) *float64 {
	if num == nil || den == nil || *den == 0 {
		return nil
	}
	out := *num / *den
	return &out
}

// clampFloor bounds a nullable value from below
func clampFloor(v *float64, floor float64) *float64 {
	if v == nil {
		return nil
	}
	out := math.Max(*v, floor)
	return &out
}

// roundPtr rounds a nullable value to the nearest integer
func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := math.Round(*v)
	return &out
}

// meanAll averages its inputs only when every one is present - partial
// averaging is disallowed by the null-propagation rule
func meanAll(values ...*float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		if v == nil {
			return nil
		}
		sum += *v
	}
	out := sum / float64(len(values))
	return &out
}

// presence maps a non-empty string leaf to true, absence to nil
func presence(s *string) *bool {
	if s == nil || *s == "" {
		return nil
	}
	t := true
	return &t
}

// yesNo interprets an explicit yes/no string leaf
func yesNo(s *string) *bool {
	if s == nil || *s == "" {
		return nil
	}
	switch {
	case containsAny(*s, "yes", "true"):
		t := true
		return &t
	default:
		f := false
		return &f
	}
}

// within reports whether a nullable distance is inside the threshold
func within(dist *float64, threshold float64) *bool {
	if dist == nil {
		return nil
	}
	in := *dist <= threshold
	return &in
}
