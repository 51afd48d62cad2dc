package report

import (
	"strings"
	"testing"

	"proplens/domain/core"
	"proplens/domain/portfolio"
	"proplens/domain/property"
	pf "proplens/internal/portfolio"
)

func fptr(v float64) *float64 { return &v }

func sampleData() portfolio.DashboardData {
	pick := &property.ChartProperty{
		ID:      core.PropertyID("a"),
		Address: "100 Gulf Shore Blvd, Naples, FL",
		ROI:     property.ROIMetrics{CapRate: fptr(6.1), Appreciation5yr: fptr(7.5)},
	}
	return portfolio.DashboardData{
		KPIs: portfolio.KPISet{
			PortfolioValue: portfolio.PortfolioValue{ListPrice: 4_000_000},
			Performance:    portfolio.Performance{CapRate: 5.05},
			Inventory: portfolio.Inventory{
				Total:    2,
				ByType:   map[string]int{"Condo": 1, "Single Family": 1},
				ByStatus: map[string]int{"Active": 2},
				PriceBands: portfolio.PriceBandCount{
					Under2M: 1, From2to3M: 1,
				},
			},
			Count: 2,
		},
		Rankings: portfolio.Rankings{
			BestCashflow:     pick,
			BestAppreciation: pick,
			BestLifestyle:    pick,
			BestLowRisk:      pick,
		},
		TotalUnfiltered: 3,
		TotalFiltered:   2,
	}
}

func TestMarkdownSections(t *testing.T) {
	md := NewBuilder().Markdown(sampleData(), pf.PriceProfile{})

	wantSections := []string{
		"# Portfolio Summary",
		"2 of 3 properties match",
		"## Portfolio Value",
		"| List price | $4.00M |",
		"## Performance",
		"Average cap rate: 5.05%",
		"## Inventory",
		"By type - Condo: 1, Single Family: 1",
		"Price bands: <2M: 1, 2-3M: 1, 3-4M: 0, 4M+: 0",
		"## Top Picks",
		"Best cashflow: 100 Gulf Shore Blvd, Naples, FL (6.1% cap rate)",
	}
	for _, want := range wantSections {
		if !strings.Contains(md, want) {
			t.Fatalf("report missing %q; got:\n%s", want, md)
		}
	}
}

func TestMarkdownEmptyPortfolio(t *testing.T) {
	md := NewBuilder().Markdown(portfolio.DashboardData{}, pf.PriceProfile{})

	if !strings.Contains(md, "Best cashflow: none (empty portfolio)") {
		t.Fatalf("expected empty-portfolio pick lines, got:\n%s", md)
	}
	// Distribution section is skipped when the sample is empty
	if strings.Contains(md, "List Price Distribution") {
		t.Fatalf("expected no distribution section, got:\n%s", md)
	}
}

func TestMarkdownPriceProfile(t *testing.T) {
	profile := pf.PriceProfile{
		SampleSize: 3,
		Mean:       2_000_000,
		Median:     1_900_000,
		StdDev:     400_000,
	}
	md := NewBuilder().Markdown(sampleData(), profile)
	if !strings.Contains(md, "Across 3 priced properties") {
		t.Fatalf("expected distribution summary, got:\n%s", md)
	}
	if !strings.Contains(md, "median $1.90M") {
		t.Fatalf("expected formatted median, got:\n%s", md)
	}
}

func TestHTMLRendering(t *testing.T) {
	b := NewBuilder()
	html := string(b.HTML(b.Markdown(sampleData(), pf.PriceProfile{})))

	for _, want := range []string{"<h1", "<h2", "<table"} {
		if !strings.Contains(html, want) {
			t.Fatalf("HTML missing %q; got:\n%s", want, html)
		}
	}
}

func TestDollarsFormatting(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{4_250_000, "$4.25M"},
		{850_000, "$850K"},
		{420, "$420"},
	}
	for _, tt := range tests {
		if got := dollars(tt.v); got != tt.want {
			t.Fatalf("dollars(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
