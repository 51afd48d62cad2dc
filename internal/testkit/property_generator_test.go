package testkit

import (
	"encoding/json"
	"testing"
)

func TestGenerateCount(t *testing.T) {
	gen := NewPropertyGenerator(DefaultPropertyConfig())
	records := gen.Generate()
	if len(records) != DefaultPropertyConfig().Count {
		t.Fatalf("expected %d records, got %d", DefaultPropertyConfig().Count, len(records))
	}
	for i, rec := range records {
		if rec.ID.String() == "" {
			t.Fatalf("record %d has empty ID", i)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultPropertyConfig()
	first, _ := json.Marshal(NewPropertyGenerator(cfg).Generate())
	second, _ := json.Marshal(NewPropertyGenerator(cfg).Generate())
	if string(first) != string(second) {
		t.Fatal("same seed produced different record sets")
	}
}

func TestGenerateSeedChangesOutput(t *testing.T) {
	a := DefaultPropertyConfig()
	b := DefaultPropertyConfig()
	b.Seed = 7

	first, _ := json.Marshal(NewPropertyGenerator(a).Generate())
	second, _ := json.Marshal(NewPropertyGenerator(b).Generate())
	if string(first) == string(second) {
		t.Fatal("different seeds produced identical record sets")
	}
}

func TestGenerateZeroMissingRate(t *testing.T) {
	cfg := PropertyGeneratorConfig{Count: 5, Seed: 1, MissingRate: 0}
	for _, rec := range NewPropertyGenerator(cfg).Generate() {
		if !rec.Address.ListingPrice.IsKnown() {
			t.Fatalf("record %s missing listing price at zero missing rate", rec.ID)
		}
		if !rec.Details.Bedrooms.IsKnown() {
			t.Fatalf("record %s missing bedrooms at zero missing rate", rec.ID)
		}
		if !rec.Financial.CapRateEst.IsKnown() {
			t.Fatalf("record %s missing cap rate at zero missing rate", rec.ID)
		}
	}
}

func TestGenerateSparseness(t *testing.T) {
	cfg := PropertyGeneratorConfig{Count: 40, Seed: 3, MissingRate: 0.5}
	missing := 0
	for _, rec := range NewPropertyGenerator(cfg).Generate() {
		if !rec.Details.Bedrooms.IsKnown() {
			missing++
		}
	}
	if missing == 0 {
		t.Fatal("expected some records to be missing bedrooms at a 0.5 missing rate")
	}
}
