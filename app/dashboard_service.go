package app

import (
	"context"
	"time"

	"proplens/domain/portfolio"
	"proplens/domain/property"
	"proplens/internal"
	"proplens/internal/normalize"
	pf "proplens/internal/portfolio"
)

// DashboardService ties the pipeline together: normalize a collection of
// source records, then filter, aggregate and rank the resulting views. It
// holds no mutable state - every call recomputes from its inputs.
type DashboardService struct {
	normalizer *normalize.Normalizer
	batch      *normalize.BatchNormalizer
	aggregator *pf.Aggregator
	logger     *internal.Logger
}

// NewDashboardService creates a dashboard service with the given price
// bands and batch worker bound
func NewDashboardService(bands portfolio.PriceBands, workers int, logger *internal.Logger) *DashboardService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DashboardService{
		normalizer: normalize.NewNormalizer(),
		batch:      normalize.NewBatchNormalizer(workers),
		aggregator: pf.NewAggregator(bands),
		logger:     logger,
	}
}

// NormalizeRecords converts source records to chart views, reporting
// per-record progress through the callback
func (s *DashboardService) NormalizeRecords(ctx context.Context, records []*property.SourceRecord, progress normalize.ProgressFunc) ([]property.ChartProperty, error) {
	start := time.Now()
	views, err := s.batch.Run(ctx, records, progress)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("[dashboard] normalized %d records in %s", len(records), time.Since(start))
	return views, nil
}

// BuildDashboard applies the filters and computes KPIs and rankings over
// the filtered subset
func (s *DashboardService) BuildDashboard(views []property.ChartProperty, filters portfolio.Filters) portfolio.DashboardData {
	filtered := pf.Filter(views, filters)
	data := portfolio.DashboardData{
		Filters:         filters,
		KPIs:            s.aggregator.KPIs(filtered),
		Rankings:        pf.Rank(filtered),
		Properties:      filtered,
		TotalUnfiltered: len(views),
		TotalFiltered:   len(filtered),
	}
	s.logger.Debug("[dashboard] %d/%d properties after filters", len(filtered), len(views))
	return data
}

// PriceProfile computes the list-price distribution over the filtered
// subset of the given views
func (s *DashboardService) PriceProfile(views []property.ChartProperty, filters portfolio.Filters) pf.PriceProfile {
	return pf.PriceDistribution(pf.Filter(views, filters))
}
