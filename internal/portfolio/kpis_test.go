package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proplens/domain/portfolio"
	"proplens/domain/property"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(portfolio.DefaultPriceBands())
}

func TestKPIsEmptyPortfolio(t *testing.T) {
	k := newTestAggregator().KPIs(nil)

	assert.Equal(t, 0, k.Count)
	assert.Equal(t, 0.0, k.PortfolioValue.ListPrice)
	assert.Equal(t, 0.0, k.Performance.CapRate)
	require.NotNil(t, k.Inventory.ByType)
	assert.Empty(t, k.Inventory.ByType)
	require.NotNil(t, k.Risk.FloodRisk)
	assert.Empty(t, k.Risk.FloodRisk)
}

func TestKPIsSumsAndAverages(t *testing.T) {
	views := []property.ChartProperty{
		{ListPrice: fptr(1_000_000), ROI: property.ROIMetrics{CapRate: fptr(4)}},
		{ListPrice: fptr(3_000_000), ROI: property.ROIMetrics{CapRate: fptr(6)}},
		// Unknown metrics contribute 0 to sums and averages
		{ListPrice: nil, ROI: property.ROIMetrics{CapRate: nil}},
	}

	k := newTestAggregator().KPIs(views)
	assert.Equal(t, 3, k.Count)
	assert.Equal(t, 4_000_000.0, k.PortfolioValue.ListPrice)
	assert.InDelta(t, 10.0/3, k.Performance.CapRate, 1e-9)
}

func TestKPIsPriceBands(t *testing.T) {
	views := []property.ChartProperty{
		{ListPrice: fptr(1_500_000)},
		{ListPrice: fptr(2_500_000)},
		{ListPrice: fptr(3_500_000)},
		{ListPrice: fptr(5_000_000)},
		{ListPrice: nil}, // no band
	}

	bands := newTestAggregator().KPIs(views).Inventory.PriceBands
	assert.Equal(t, 1, bands.Under2M)
	assert.Equal(t, 1, bands.From2to3M)
	assert.Equal(t, 1, bands.From3to4M)
	assert.Equal(t, 1, bands.Over4M)
}

// Boundaries are half-open: 2M lands in the 2-3M band, 4M in 4M+
func TestKPIsPriceBandBoundaries(t *testing.T) {
	views := []property.ChartProperty{
		{ListPrice: fptr(2_000_000)},
		{ListPrice: fptr(3_000_000)},
		{ListPrice: fptr(4_000_000)},
	}

	bands := newTestAggregator().KPIs(views).Inventory.PriceBands
	assert.Equal(t, 0, bands.Under2M)
	assert.Equal(t, 1, bands.From2to3M)
	assert.Equal(t, 1, bands.From3to4M)
	assert.Equal(t, 1, bands.Over4M)
}

func TestKPIsDistributions(t *testing.T) {
	views := []property.ChartProperty{
		{PropertyType: sptr("Condo"), Risk: property.RiskProfile{FloodRisk: sptr("High")}},
		{PropertyType: sptr("Condo"), Risk: property.RiskProfile{FloodRisk: sptr("Low")}},
		{PropertyType: nil, Risk: property.RiskProfile{FloodRisk: nil}},
	}

	k := newTestAggregator().KPIs(views)
	assert.Equal(t, 2, k.Inventory.ByType["Condo"])
	assert.Equal(t, 1, k.Inventory.ByType["Unknown"])
	assert.Equal(t, 1, k.Risk.FloodRisk["High"])
	assert.Equal(t, 1, k.Risk.FloodRisk["Unknown"])
}

func TestKPIsConfigurableBands(t *testing.T) {
	agg := NewAggregator(portfolio.PriceBands{Low: 500_000, Mid: 1_000_000, High: 1_500_000})
	views := []property.ChartProperty{
		{ListPrice: fptr(400_000)},
		{ListPrice: fptr(1_200_000)},
	}
	bands := agg.KPIs(views).Inventory.PriceBands
	assert.Equal(t, 1, bands.Under2M)
	assert.Equal(t, 1, bands.From3to4M)
}
