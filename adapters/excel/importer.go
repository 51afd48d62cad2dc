package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"proplens/domain/core"
	"proplens/domain/property"
	"proplens/internal/normalize"
)

// Importer reads property source records from a spreadsheet. The first row
// is a header; columns are matched by normalized header name and unknown
// columns are ignored. Blank cells stay absent rather than becoming zeros.
type Importer struct {
	filePath string
}

// NewImporter creates a spreadsheet importer for the given file
func NewImporter(filePath string) *Importer {
	return &Importer{filePath: filePath}
}

// Read loads all rows from the first sheet as source records
func (im *Importer) Read() ([]*property.SourceRecord, error) {
	f, err := excelize.OpenFile(im.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet %s: %w", im.filePath, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet %s has no sheets", im.filePath)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[normalizeHeader(h)] = i
	}

	records := make([]*property.SourceRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		rec := im.rowToRecord(row, cols, n)
		if rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (im *Importer) rowToRecord(row []string, cols map[string]int, n int) *property.SourceRecord {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	str := func(name, source string) core.Field[string] {
		if v := cell(name); v != "" {
			return core.FieldOf(v, source)
		}
		return core.Field[string]{}
	}
	num := func(name, source string) core.Field[float64] {
		if v := normalize.ParseNumeric(cell(name)); v != nil {
			return core.FieldOf(*v, source)
		}
		return core.Field[float64]{}
	}

	id := cell("id")
	if id == "" {
		id = fmt.Sprintf("import-%04d", n+1)
	}

	rec := &property.SourceRecord{
		ID: core.PropertyID(id),
		Address: property.AddressData{
			FullAddress:   str("address", "import"),
			StreetAddress: str("street", "import"),
			City:          str("city", "import"),
			State:         str("state", "import"),
			ZipCode:       str("zip", "import"),
			ListingStatus: str("status", "import"),
			ListingPrice:  num("list price", "import"),
			PricePerSqft:  num("price per sqft", "import"),
		},
		Details: property.PropertyDetails{
			Bedrooms:       num("bedrooms", "import"),
			TotalBathrooms: num("bathrooms", "import"),
			LivingSqft:     num("living sqft", "import"),
			LotSizeSqft:    num("lot size", "import"),
			YearBuilt:      num("year built", "import"),
			PropertyType:   str("type", "import"),
			GarageSpaces:   num("garage", "import"),
			HOAFeeAnnual:   num("hoa annual", "import"),
			AssessedValue:  num("assessed value", "import"),
		},
		Location: property.LocationData{
			WalkScore:          num("walk score", "import"),
			TransitScore:       num("transit score", "import"),
			BikeScore:          num("bike score", "import"),
			DistanceBeachMiles: num("beach miles", "import"),
		},
		Financial: property.FinancialData{
			AnnualPropertyTax:     num("annual tax", "import"),
			InsuranceEstAnnual:    num("annual insurance", "import"),
			RentalEstimateMonthly: num("monthly rent", "import"),
			RentalYieldEst:        num("rental yield", "import"),
			CapRateEst:            num("cap rate", "import"),
			DaysOnMarketAvg:       num("days on market", "import"),
		},
		Utilities: property.UtilitiesData{
			FloodRiskLevel: str("flood risk", "import"),
			HurricaneRisk:  str("hurricane risk", "import"),
		},
	}

	// A row with neither address nor price is treated as noise
	if !rec.Address.FullAddress.IsKnown() && !rec.Address.StreetAddress.IsKnown() && !rec.Address.ListingPrice.IsKnown() {
		return nil
	}
	return rec
}

// normalizeHeader folds header variants ("List_Price", "list price ") onto
// the lookup key
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.Fields(strings.ReplaceAll(h, "_", " ")), " ")
}
