package excel

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeFixture(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "listings.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImporterReadsRows(t *testing.T) {
	path := writeFixture(t, [][]interface{}{
		{"ID", "Address", "City", "List_Price", "Bedrooms", "Walk Score", "Flood Risk"},
		{"prop-1", "100 Gulf Shore Blvd", "Naples", "$2,400,000", 4, 62, "Moderate"},
		{"", "200 Bay Dr", "Bonita Springs", 1800000, "", "", ""},
	})

	records, err := NewImporter(path).Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.ID.String() != "prop-1" {
		t.Fatalf("ID = %q", first.ID)
	}
	if price := first.Address.ListingPrice.Get(); price == nil || *price != 2_400_000 {
		t.Fatalf("listing price = %v, want 2400000", price)
	}
	if beds := first.Details.Bedrooms.Get(); beds == nil || *beds != 4 {
		t.Fatalf("bedrooms = %v, want 4", beds)
	}
	if flood := first.Utilities.FloodRiskLevel.Get(); flood == nil || *flood != "Moderate" {
		t.Fatalf("flood risk = %v", flood)
	}

	// Second row: generated ID, blank cells stay unknown
	second := records[1]
	if second.ID.String() != "import-0002" {
		t.Fatalf("generated ID = %q", second.ID)
	}
	if second.Details.Bedrooms.IsKnown() {
		t.Fatal("blank bedrooms cell should stay unknown")
	}
}

func TestImporterSkipsNoiseRows(t *testing.T) {
	path := writeFixture(t, [][]interface{}{
		{"Address", "List Price"},
		{"100 Gulf Shore Blvd", 2_000_000},
		{"", ""},
	})

	records, err := NewImporter(path).Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected the blank row to be dropped, got %d records", len(records))
	}
}

func TestImporterMissingFile(t *testing.T) {
	if _, err := NewImporter("/nonexistent/listings.xlsx").Read(); err == nil {
		t.Fatal("expected error for missing file")
	}
}
