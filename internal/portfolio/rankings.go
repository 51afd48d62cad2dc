package portfolio

import (
	"math"

	"proplens/domain/portfolio"
	"proplens/domain/property"
	"proplens/internal/normalize"
)

// Rank selects the best record per investment criterion. Every slot is nil
// only when the collection is empty. Each selection is a single O(n) pass;
// ties keep the first record in input order, so deterministic input gives
// deterministic output.
//
// Null policy differs by slot and is deliberate:
//   - capRate / appreciation treat nil as -Inf, so a record with missing
//     data is never selected over one with a present value;
//   - the lifestyle and risk composites use an explicit zero-for-null
//     convention (orZero / severityOrZero). The output is a ranking score,
//     not a presented fact, and for risk the convention keeps records with
//     missing risk data from looking falsely risky.
func Rank(views []property.ChartProperty) portfolio.Rankings {
	if len(views) == 0 {
		return portfolio.Rankings{}
	}
	return portfolio.Rankings{
		BestCashflow:     pickBest(views, capRateScore, higherWins),
		BestAppreciation: pickBest(views, appreciationScore, higherWins),
		BestLifestyle:    pickBest(views, lifestyleScore, higherWins),
		BestLowRisk:      pickBest(views, riskScore, lowerWins),
	}
}

const (
	higherWins = true
	lowerWins  = false
)

func pickBest(views []property.ChartProperty, score func(property.ChartProperty) float64, higher bool) *property.ChartProperty {
	bestIdx := 0
	bestScore := score(views[0])
	for i := 1; i < len(views); i++ {
		s := score(views[i])
		if (higher && s > bestScore) || (!higher && s < bestScore) {
			bestIdx, bestScore = i, s
		}
	}
	best := views[bestIdx]
	return &best
}

func capRateScore(v property.ChartProperty) float64 {
	return orNegInf(v.ROI.CapRate)
}

func appreciationScore(v property.ChartProperty) float64 {
	return orNegInf(v.ROI.Appreciation5yr)
}

func lifestyleScore(v property.ChartProperty) float64 {
	return orZero(v.Lifestyle.WalkScore) + orZero(v.Lifestyle.TransitScore) + orZero(v.Lifestyle.BikeScore)
}

func riskScore(v property.ChartProperty) float64 {
	return severityOrZero(v.Risk.FloodRisk) + severityOrZero(v.Risk.HurricaneRisk) + severityOrZero(v.Risk.SeaLevelRisk)
}

func orNegInf(v *float64) float64 {
	if v == nil {
		return math.Inf(-1)
	}
	return *v
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// severityOrZero converts a categorical risk level into a 0-100 severity
// for the low-risk comparator. An unreported level scores 0 - the
// documented zero-for-null ranking convention.
func severityOrZero(level *string) float64 {
	if level == nil {
		return 0
	}
	severity, _ := normalize.RiskSeverity(*level)
	return severity
}
