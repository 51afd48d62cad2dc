package excel

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"proplens/domain/portfolio"
	"proplens/domain/property"
	"proplens/internal/errors"
)

const (
	summarySheet    = "Summary"
	propertiesSheet = "Properties"
)

// Exporter renders a dashboard snapshot into an xlsx workbook with a KPI
// summary sheet and a per-property sheet. Unknown metrics are written as
// empty cells, never as zero.
type Exporter struct{}

// NewExporter creates an Excel exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export returns the workbook as a byte slice ready for download
func (e *Exporter) Export(data portfolio.DashboardData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeSummary(f, data); err != nil {
		return nil, errors.ExportError("xlsx", err)
	}
	if err := e.writeProperties(f, data.Properties); err != nil {
		return nil, errors.ExportError("xlsx", err)
	}

	// Drop the default sheet excelize creates
	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(summarySheet); err == nil {
		f.SetActiveSheet(idx)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.ExportError("xlsx", err)
	}
	return buf.Bytes(), nil
}

func (e *Exporter) writeSummary(f *excelize.File, data portfolio.DashboardData) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	k := data.KPIs
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Properties (filtered)", data.TotalFiltered},
		{"Properties (total)", data.TotalUnfiltered},
		{"Portfolio value (list price)", k.PortfolioValue.ListPrice},
		{"Portfolio value (market estimate)", k.PortfolioValue.MarketEstimate},
		{"Portfolio value (Redfin estimate)", k.PortfolioValue.RedfinEstimate},
		{"Portfolio value (assessed)", k.PortfolioValue.AssessedValue},
		{"Avg cap rate %", k.Performance.CapRate},
		{"Avg rental yield %", k.Performance.RentalYield},
		{"Avg 5yr appreciation %", k.Performance.Appreciation5yr},
		{"Avg price per sqft", k.Performance.PricePerSqft},
		{"Avg days on market", k.Performance.DaysOnMarket},
		{"Avg safety score", k.Risk.SafetyScore},
		{"Avg walk score", k.Lifestyle.WalkScore},
		{"Avg transit score", k.Lifestyle.TransitScore},
		{"Avg bike score", k.Lifestyle.BikeScore},
		{"Price band <2M", k.Inventory.PriceBands.Under2M},
		{"Price band 2-3M", k.Inventory.PriceBands.From2to3M},
		{"Price band 3-4M", k.Inventory.PriceBands.From3to4M},
		{"Price band 4M+", k.Inventory.PriceBands.Over4M},
	}
	rows = append(rows, distributionRows("Type", k.Inventory.ByType)...)
	rows = append(rows, distributionRows("Status", k.Inventory.ByStatus)...)
	rows = append(rows, distributionRows("Flood risk", k.Risk.FloodRisk)...)
	rows = append(rows, distributionRows("Hurricane risk", k.Risk.HurricaneRisk)...)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeProperties(f *excelize.File, views []property.ChartProperty) error {
	if _, err := f.NewSheet(propertiesSheet); err != nil {
		return err
	}

	header := []interface{}{
		"ID", "Address", "Status", "Type", "List Price", "Price/Sqft",
		"Beds", "Baths", "Living Sqft", "Year Built",
		"Cap Rate %", "Rental Yield %", "Appreciation 5yr %",
		"Financial Health", "Flood Risk", "Safety Score",
		"Walk Score", "District Rating", "Completeness %",
	}
	if err := f.SetSheetRow(propertiesSheet, "A1", &header); err != nil {
		return err
	}

	for i, v := range views {
		row := []interface{}{
			v.ID.String(), v.Address, strCell(v.ListingStatus), strCell(v.PropertyType),
			cellOf(v.ListPrice), cellOf(v.PricePerSqft),
			cellOf(v.Bedrooms), cellOf(v.Bathrooms),
			cellOf(v.Sqft), cellOf(v.YearBuilt),
			cellOf(v.ROI.CapRate), cellOf(v.ROI.RentalYield), cellOf(v.ROI.Appreciation5yr),
			cellOf(v.InvestmentScore.FinancialHealth), strCell(v.Risk.FloodRisk), cellOf(v.Risk.SafetyScore),
			cellOf(v.Lifestyle.WalkScore), cellOf(v.Schools.DistrictRating),
			v.DataCompleteness,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(propertiesSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func distributionRows(prefix string, dist map[string]int) [][]interface{} {
	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]interface{}, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []interface{}{fmt.Sprintf("%s: %s", prefix, k), dist[k]})
	}
	return rows
}

// cellOf maps a nullable metric to its cell value, keeping unknowns blank
func cellOf(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func strCell(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
