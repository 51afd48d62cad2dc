package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"proplens/domain/portfolio"
	"proplens/domain/property"
	pf "proplens/internal/portfolio"
)

// Builder renders a portfolio dashboard into a markdown summary and its
// HTML form. Pure presentation over already-computed aggregates - it never
// recomputes or invents figures, and unknown values render as an explicit
// dash, never as zero.
type Builder struct{}

// NewBuilder creates a report builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Markdown renders the dashboard as a markdown document
func (b *Builder) Markdown(data portfolio.DashboardData, profile pf.PriceProfile) string {
	var sb strings.Builder

	sb.WriteString("# Portfolio Summary\n\n")
	fmt.Fprintf(&sb, "%d of %d properties match the current filters.\n\n", data.TotalFiltered, data.TotalUnfiltered)

	k := data.KPIs
	sb.WriteString("## Portfolio Value\n\n")
	fmt.Fprintf(&sb, "| Basis | Total |\n|---|---|\n")
	fmt.Fprintf(&sb, "| List price | %s |\n", dollars(k.PortfolioValue.ListPrice))
	fmt.Fprintf(&sb, "| Market estimate | %s |\n", dollars(k.PortfolioValue.MarketEstimate))
	fmt.Fprintf(&sb, "| Redfin estimate | %s |\n", dollars(k.PortfolioValue.RedfinEstimate))
	fmt.Fprintf(&sb, "| Assessed value | %s |\n\n", dollars(k.PortfolioValue.AssessedValue))

	sb.WriteString("## Performance\n\n")
	fmt.Fprintf(&sb, "- Average cap rate: %.2f%%\n", k.Performance.CapRate)
	fmt.Fprintf(&sb, "- Average rental yield: %.2f%%\n", k.Performance.RentalYield)
	fmt.Fprintf(&sb, "- Average 5-year appreciation: %.2f%%/yr\n", k.Performance.Appreciation5yr)
	fmt.Fprintf(&sb, "- Average price per sqft: %s\n", dollars(k.Performance.PricePerSqft))
	fmt.Fprintf(&sb, "- Average days on market: %.0f\n\n", k.Performance.DaysOnMarket)

	if profile.SampleSize > 0 {
		sb.WriteString("## List Price Distribution\n\n")
		fmt.Fprintf(&sb, "Across %d priced properties: median %s, mean %s, spread (σ) %s.\n\n",
			profile.SampleSize, dollars(profile.Median), dollars(profile.Mean), dollars(profile.StdDev))
	}

	sb.WriteString("## Inventory\n\n")
	writeDistribution(&sb, "By type", k.Inventory.ByType)
	writeDistribution(&sb, "By status", k.Inventory.ByStatus)
	bands := k.Inventory.PriceBands
	fmt.Fprintf(&sb, "Price bands: <2M: %d, 2-3M: %d, 3-4M: %d, 4M+: %d\n\n",
		bands.Under2M, bands.From2to3M, bands.From3to4M, bands.Over4M)

	sb.WriteString("## Top Picks\n\n")
	writePick(&sb, "Best cashflow", data.Rankings.BestCashflow, func(v *property.ChartProperty) string {
		return percentOrDash(v.ROI.CapRate, "cap rate")
	})
	writePick(&sb, "Best appreciation", data.Rankings.BestAppreciation, func(v *property.ChartProperty) string {
		return percentOrDash(v.ROI.Appreciation5yr, "per year")
	})
	writePick(&sb, "Best lifestyle", data.Rankings.BestLifestyle, func(v *property.ChartProperty) string {
		return "walk/transit/bike composite"
	})
	writePick(&sb, "Lowest risk", data.Rankings.BestLowRisk, func(v *property.ChartProperty) string {
		return "flood/hurricane/sea-level composite"
	})

	return sb.String()
}

// HTML converts a markdown report into a standalone HTML fragment
func (b *Builder) HTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

func writeDistribution(sb *strings.Builder, title string, dist map[string]int) {
	if len(dist) == 0 {
		return
	}
	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %d", k, dist[k]))
	}
	fmt.Fprintf(sb, "%s - %s\n\n", title, strings.Join(parts, ", "))
}

func writePick(sb *strings.Builder, label string, pick *property.ChartProperty, detail func(*property.ChartProperty) string) {
	if pick == nil {
		fmt.Fprintf(sb, "- %s: none (empty portfolio)\n", label)
		return
	}
	fmt.Fprintf(sb, "- %s: %s (%s)\n", label, pick.Address, detail(pick))
}

func percentOrDash(v *float64, suffix string) string {
	if v == nil {
		return "- " + suffix
	}
	return fmt.Sprintf("%.1f%% %s", *v, suffix)
}

func dollars(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%.2fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.0fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
