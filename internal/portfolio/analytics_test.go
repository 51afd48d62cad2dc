package portfolio

import (
	"math"
	"testing"

	"proplens/domain/property"
)

func pricedViews(prices ...float64) []property.ChartProperty {
	views := make([]property.ChartProperty, len(prices))
	for i, p := range prices {
		price := p
		views[i] = property.ChartProperty{ListPrice: &price}
	}
	return views
}

func TestPriceDistributionEmpty(t *testing.T) {
	profile := PriceDistribution(nil)
	if profile.SampleSize != 0 || profile.Mean != 0 {
		t.Fatalf("expected zero profile, got %+v", profile)
	}

	// Records without a known price contribute nothing
	profile = PriceDistribution([]property.ChartProperty{{}, {}})
	if profile.SampleSize != 0 {
		t.Fatalf("expected sample size 0, got %d", profile.SampleSize)
	}
}

func TestPriceDistributionSingle(t *testing.T) {
	profile := PriceDistribution(pricedViews(2_000_000))
	if profile.SampleSize != 1 {
		t.Fatalf("expected sample size 1, got %d", profile.SampleSize)
	}
	if profile.Mean != 2_000_000 || profile.Median != 2_000_000 {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	// One observation has no spread and no skew
	if profile.StdDev != 0 || profile.Skewness != 0 {
		t.Fatalf("expected zero spread for n=1, got %+v", profile)
	}
}

func TestPriceDistributionShape(t *testing.T) {
	profile := PriceDistribution(pricedViews(1_000_000, 2_000_000, 3_000_000, 4_000_000))

	if profile.SampleSize != 4 {
		t.Fatalf("expected sample size 4, got %d", profile.SampleSize)
	}
	if profile.Mean != 2_500_000 {
		t.Fatalf("mean = %v, want 2.5M", profile.Mean)
	}
	if profile.Median != 2_500_000 {
		t.Fatalf("median = %v, want 2.5M", profile.Median)
	}
	if profile.Min != 1_000_000 || profile.Max != 4_000_000 {
		t.Fatalf("min/max = %v/%v", profile.Min, profile.Max)
	}
	if profile.StdDev <= 0 {
		t.Fatalf("expected positive std dev, got %v", profile.StdDev)
	}
	// Symmetric data, skew near zero
	if math.Abs(profile.Skewness) > 1e-9 {
		t.Fatalf("expected near-zero skew, got %v", profile.Skewness)
	}
	if profile.Q25 >= profile.Q75 {
		t.Fatalf("expected Q25 < Q75, got %v >= %v", profile.Q25, profile.Q75)
	}
}

func TestPriceDistributionSkewsRight(t *testing.T) {
	// One outlier far above the cluster pulls skew positive
	profile := PriceDistribution(pricedViews(1_000_000, 1_100_000, 1_050_000, 9_000_000))
	if profile.Skewness <= 0 {
		t.Fatalf("expected positive skew, got %v", profile.Skewness)
	}
}
