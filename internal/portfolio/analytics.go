package portfolio

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"proplens/domain/property"
)

// PriceProfile summarizes the shape of the list-price distribution across
// the filtered portfolio. Only records with a known list price contribute;
// SampleSize reports how many did.
type PriceProfile struct {
	SampleSize int     `json:"sample_size"`
	Mean       float64 `json:"mean"`
	Median     float64 `json:"median"`
	StdDev     float64 `json:"std_dev"`
	Skewness   float64 `json:"skewness"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Q25        float64 `json:"q25"`
	Q75        float64 `json:"q75"`
}

// PriceDistribution profiles the known list prices of a collection. The
// zero-valued profile is returned when no record has a known price.
func PriceDistribution(views []property.ChartProperty) PriceProfile {
	prices := make([]float64, 0, len(views))
	for _, v := range views {
		if v.ListPrice != nil {
			prices = append(prices, *v.ListPrice)
		}
	}
	if len(prices) == 0 {
		return PriceProfile{}
	}

	mean, _ := stats.Mean(prices)
	median, _ := stats.Median(prices)
	min, _ := stats.Min(prices)
	max, _ := stats.Max(prices)
	q25, _ := stats.Percentile(prices, 25)
	q75, _ := stats.Percentile(prices, 75)

	stdDev := 0.0
	skew := 0.0
	if len(prices) >= 2 {
		stdDev = stat.StdDev(prices, nil)
	}
	if len(prices) >= 3 && stdDev > 0 {
		skew = stat.Skew(prices, nil)
	}

	return PriceProfile{
		SampleSize: len(prices),
		Mean:       mean,
		Median:     median,
		StdDev:     stdDev,
		Skewness:   skew,
		Min:        min,
		Max:        max,
		Q25:        q25,
		Q75:        q75,
	}
}
