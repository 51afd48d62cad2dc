package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"proplens/adapters/excel"
	"proplens/app"
	"proplens/domain/portfolio"
	"proplens/domain/property"
	"proplens/internal"
	"proplens/internal/report"
	"proplens/internal/testkit"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "proplens",
		Short: "Property portfolio normalization and analytics",
	}

	rootCmd.AddCommand(
		newReportCmd(),
		newSeedCmd(),
		newInspectCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newReportCmd() *cobra.Command {
	var region string
	var minPrice, maxPrice float64
	var workers int
	var excelOut string

	cmd := &cobra.Command{
		Use:   "report [records-file]",
		Short: "Normalize records and print the portfolio report",
		Long: `Normalize a collection of source records (JSON or xlsx), aggregate the
portfolio and print the markdown report to stdout.

Example: proplens report records.json --region Naples --excel-out portfolio.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loadRecords(args[0])
			if err != nil {
				return err
			}

			filters := portfolio.Filters{Region: region}
			if minPrice > 0 {
				filters.MinPrice = &minPrice
			}
			if maxPrice > 0 {
				filters.MaxPrice = &maxPrice
			}

			return runReport(cmd.Context(), records, filters, workers, excelOut)
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "Filter to addresses containing this region")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "Minimum list price")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "Maximum list price")
	cmd.Flags().IntVar(&workers, "workers", 4, "Concurrent normalization workers")
	cmd.Flags().StringVar(&excelOut, "excel-out", "", "Also write the dashboard to this xlsx file")

	return cmd
}

func newSeedCmd() *cobra.Command {
	var count int
	var seed int64
	var missingRate float64
	var out string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a deterministic demo record set",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := testkit.NewPropertyGenerator(testkit.PropertyGeneratorConfig{
				Count:       count,
				Seed:        seed,
				MissingRate: missingRate,
			})
			payload, err := json.MarshalIndent(gen.Generate(), "", "  ")
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Println(string(payload))
				return nil
			}
			return os.WriteFile(out, payload, 0o644)
		},
	}

	cmd.Flags().IntVar(&count, "count", 12, "Number of records to generate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic output")
	cmd.Flags().Float64Var(&missingRate, "missing-rate", 0.15, "Chance each optional leaf is absent")
	cmd.Flags().StringVar(&out, "out", "", "Write JSON here instead of stdout")

	return cmd
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [records-file] [property-id]",
		Short: "Show one property's normalized view and missing fields",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loadRecords(args[0])
			if err != nil {
				return err
			}
			service := app.NewDashboardService(portfolio.DefaultPriceBands(), 4, internal.DefaultLogger)
			views, err := service.NormalizeRecords(cmd.Context(), records, nil)
			if err != nil {
				return err
			}
			for _, v := range views {
				if v.ID.String() == args[1] {
					payload, err := json.MarshalIndent(v, "", "  ")
					if err != nil {
						return err
					}
					fmt.Println(string(payload))
					fmt.Fprintf(os.Stderr, "completeness: %d%%, missing: %s\n",
						v.DataCompleteness, strings.Join(v.MissingFields, ", "))
					return nil
				}
			}
			return fmt.Errorf("property %s not found in %s", args[1], args[0])
		},
	}
	return cmd
}

func runReport(ctx context.Context, records []*property.SourceRecord, filters portfolio.Filters, workers int, excelOut string) error {
	service := app.NewDashboardService(portfolio.DefaultPriceBands(), workers, internal.DefaultLogger)

	views, err := service.NormalizeRecords(ctx, records, func(done, total int, id string) {
		fmt.Fprintf(os.Stderr, "\rnormalizing %d/%d", done, total)
		if done == total {
			fmt.Fprintln(os.Stderr)
		}
	})
	if err != nil {
		return err
	}

	data := service.BuildDashboard(views, filters)
	profile := service.PriceProfile(views, filters)
	fmt.Println(report.NewBuilder().Markdown(data, profile))

	if excelOut != "" {
		payload, err := excel.NewExporter().Export(data)
		if err != nil {
			return err
		}
		if err := os.WriteFile(excelOut, payload, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", excelOut, err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", excelOut)
	}
	return nil
}

// loadRecords reads source records from JSON or a spreadsheet, by extension
func loadRecords(path string) ([]*property.SourceRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return excel.NewImporter(path).Read()
	default:
		payload, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		var records []*property.SourceRecord
		if err := json.Unmarshal(payload, &records); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return records, nil
	}
}
