package testkit

import (
	"fmt"
	"math/rand"
	"time"

	"proplens/domain/core"
	"proplens/domain/property"
)

// PropertyGeneratorConfig configures the demo property generator
type PropertyGeneratorConfig struct {
	Count       int     `json:"count"`
	Seed        int64   `json:"seed"`
	MissingRate float64 `json:"missing_rate"` // chance any optional leaf is absent
}

// DefaultPropertyConfig returns sensible defaults for demo data generation
func DefaultPropertyConfig() PropertyGeneratorConfig {
	return PropertyGeneratorConfig{
		Count:       12,
		Seed:        42,
		MissingRate: 0.15,
	}
}

// PropertyGenerator generates realistic coastal-market source records with
// sparse fields, deterministic under a fixed seed
type PropertyGenerator struct {
	config PropertyGeneratorConfig
	rng    *rand.Rand
}

// NewPropertyGenerator creates a new property generator
func NewPropertyGenerator(config PropertyGeneratorConfig) *PropertyGenerator {
	return &PropertyGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var (
	demoCities = []string{"Naples", "Bonita Springs", "Marco Island", "Fort Myers", "Sanibel"}
	demoTypes  = []string{"Single Family", "Condo", "Townhouse"}
	demoStatus = []string{"Active", "Pending", "Sold"}
	demoRisk   = []string{"Minimal", "Low", "Moderate", "High", "Very High"}
	demoCrime  = []string{"Very Low", "Low", "Moderate", "High"}
	demoGrades = []string{"9/10", "8/10", "A", "B", "7/10", "C"}
	demoSafety = []string{"9/10", "8/10", "7/10", "6/10"}
	demoCond   = []string{"Excellent", "Good", "Fair", "8/10", "B"}
)

// Generate produces the configured number of source records
func (g *PropertyGenerator) Generate() []*property.SourceRecord {
	records := make([]*property.SourceRecord, 0, g.config.Count)
	for i := 0; i < g.config.Count; i++ {
		records = append(records, g.generateRecord(i))
	}
	return records
}

func (g *PropertyGenerator) generateRecord(i int) *property.SourceRecord {
	city := demoCities[g.rng.Intn(len(demoCities))]
	street := fmt.Sprintf("%d Gulf Shore Blvd", 100+g.rng.Intn(8900))
	listPrice := 900_000 + g.rng.Float64()*4_600_000
	sqft := 1_400 + g.rng.Float64()*4_200

	rec := &property.SourceRecord{
		ID:        core.PropertyID(fmt.Sprintf("demo-%04d", i+1)),
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		Address: property.AddressData{
			FullAddress:   core.FieldOf(fmt.Sprintf("%s, %s, FL", street, city), "mls"),
			StreetAddress: core.FieldOf(street, "mls"),
			City:          core.FieldOf(city, "mls"),
			State:         core.FieldOf("FL", "mls"),
			ListingStatus: core.FieldOf(demoStatus[g.rng.Intn(len(demoStatus))], "mls"),
			ListingPrice:  g.maybeFloat(listPrice, "mls"),
			PricePerSqft:  g.maybeFloat(listPrice/sqft, "mls"),
		},
		Details: property.PropertyDetails{
			Bedrooms:            g.maybeFloat(float64(2+g.rng.Intn(4)), "mls"),
			TotalBathrooms:      g.maybeFloat(float64(2+g.rng.Intn(3)), "mls"),
			LivingSqft:          g.maybeFloat(sqft, "mls"),
			TotalSqftUnderRoof:  core.FieldOf(sqft*1.18, "county"),
			LotSizeSqft:         g.maybeFloat(6_000+g.rng.Float64()*20_000, "county"),
			YearBuilt:           g.maybeFloat(float64(1975+g.rng.Intn(50)), "county"),
			PropertyType:        core.FieldOf(demoTypes[g.rng.Intn(len(demoTypes))], "mls"),
			GarageSpaces:        g.maybeFloat(float64(1+g.rng.Intn(3)), "mls"),
			HOAFeeAnnual:        g.maybeFloat(2_400+g.rng.Float64()*9_600, "mls"),
			AssessedValue:       g.maybeFloat(listPrice*0.85, "county"),
			MarketValueEstimate: g.maybeFloat(listPrice*1.02, "avm"),
			LastSalePrice:       g.maybeFloat(listPrice*0.7, "county"),
			LastSaleDate:        g.maybeString("2019-06-15", "county"),
		},
		Structural: property.StructuralDetails{
			RoofAgeEst:        g.maybeString(fmt.Sprintf("%d years", 2+g.rng.Intn(18)), "inspection"),
			HVACAge:           g.maybeString(fmt.Sprintf("%d years", 1+g.rng.Intn(14)), "inspection"),
			InteriorCondition: g.maybeString(demoCond[g.rng.Intn(len(demoCond))], "inspection"),
			PoolYN:            g.maybeBool(g.rng.Float64() < 0.6, "mls"),
			FireplaceYN:       g.maybeBool(g.rng.Float64() < 0.2, "mls"),
			DeckPatio:         g.maybeString("Screened lanai", "mls"),
		},
		Location: property.LocationData{
			ElementaryRating:         g.maybeString(demoGrades[g.rng.Intn(len(demoGrades))], "schools"),
			MiddleRating:             g.maybeString(demoGrades[g.rng.Intn(len(demoGrades))], "schools"),
			HighRating:               g.maybeString(demoGrades[g.rng.Intn(len(demoGrades))], "schools"),
			ElementaryDistanceMiles:  g.maybeFloat(0.4+g.rng.Float64()*3, "schools"),
			MiddleDistanceMiles:      g.maybeFloat(0.8+g.rng.Float64()*4, "schools"),
			HighDistanceMiles:        g.maybeFloat(1+g.rng.Float64()*5, "schools"),
			WalkScore:                g.maybeFloat(float64(20+g.rng.Intn(75)), "walkscore"),
			TransitScore:             g.maybeFloat(float64(10+g.rng.Intn(60)), "walkscore"),
			BikeScore:                g.maybeFloat(float64(25+g.rng.Intn(70)), "walkscore"),
			DistanceBeachMiles:       g.maybeFloat(g.rng.Float64()*6, "geocoder"),
			CrimeIndexViolent:        g.maybeString(demoCrime[g.rng.Intn(len(demoCrime))], "crime"),
			CrimeIndexProperty:       g.maybeString(demoCrime[g.rng.Intn(len(demoCrime))], "crime"),
			NeighborhoodSafetyRating: g.maybeString(demoSafety[g.rng.Intn(len(demoSafety))], "crime"),
			CommuteTimeCityCenter:    g.maybeString(fmt.Sprintf("%d min", 8+g.rng.Intn(35)), "geocoder"),
		},
		Financial: property.FinancialData{
			AnnualPropertyTax:           g.maybeFloat(listPrice*0.011, "county"),
			InsuranceEstAnnual:          g.maybeFloat(4_000+g.rng.Float64()*14_000, "insurer"),
			MedianHomePriceNeighborhood: g.maybeFloat(listPrice*(0.9+g.rng.Float64()*0.2), "market"),
			DaysOnMarketAvg:             g.maybeFloat(float64(12+g.rng.Intn(120)), "market"),
			RentalEstimateMonthly:       g.maybeFloat(listPrice*0.004, "rental"),
			RentalYieldEst:              g.maybeFloat(3+g.rng.Float64()*4, "rental"),
			CapRateEst:                  g.maybeFloat(2.5+g.rng.Float64()*5, "rental"),
			Appreciation5yrPct:          g.maybeFloat(4+g.rng.Float64()*8, "market"),
			RedfinEstimate:              g.maybeFloat(listPrice*0.99, "redfin"),
		},
		Utilities: property.UtilitiesData{
			AirQualityIndexCurrent:    g.maybeString(fmt.Sprintf("%d", 18+g.rng.Intn(80)), "epa"),
			FloodRiskLevel:            g.maybeString(demoRisk[g.rng.Intn(len(demoRisk))], "fema"),
			HurricaneRisk:             g.maybeString(demoRisk[g.rng.Intn(len(demoRisk))], "noaa"),
			SeaLevelRiskLevel:         g.maybeString(demoRisk[g.rng.Intn(len(demoRisk))], "noaa"),
			WildfireRisk:              g.maybeString("Minimal", "usfs"),
			EVChargingYN:              g.maybeString("Yes", "mls"),
			SmartHomeFeatures:         g.maybeString("Smart thermostat, video doorbell", "mls"),
			EmergencyServicesDistance: g.maybeString(fmt.Sprintf("%.1f mi", 0.5+g.rng.Float64()*4), "geocoder"),
		},
	}
	return rec
}

// maybeFloat wraps a value, dropping it at the configured missing rate
func (g *PropertyGenerator) maybeFloat(v float64, source string) core.Field[float64] {
	if g.rng.Float64() < g.config.MissingRate {
		return core.Field[float64]{}
	}
	return core.FieldOf(v, source)
}

func (g *PropertyGenerator) maybeString(v, source string) core.Field[string] {
	if g.rng.Float64() < g.config.MissingRate {
		return core.Field[string]{}
	}
	return core.FieldOf(v, source)
}

func (g *PropertyGenerator) maybeBool(v bool, source string) core.Field[bool] {
	if g.rng.Float64() < g.config.MissingRate {
		return core.Field[bool]{}
	}
	return core.FieldOf(v, source)
}
