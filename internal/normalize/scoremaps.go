package normalize

import "strings"

// Categorical-to-score lookup tables. Each map is an exhaustive switch over
// the closed set of values the upstream providers emit, plus an explicit
// default branch returning a neutral score with assumed=true. Assumed
// scores are the one place the pipeline emits a non-nil value without a
// measured source, and callers must record them in the missing-field ledger
// so presentation can flag them.

// neutralScore is the mid-range score used when a reported category cannot
// be interpreted
const neutralScore = 50.0

// RiskLevelScore maps a descriptive climate-risk level to a 0-100 safety
// score (higher is safer). Used for flood, hurricane and sea-level-rise
// levels, which share the same vocabulary upstream.
func RiskLevelScore(level string) (score float64, assumed bool) {
	switch {
	case containsAny(level, "minimal", "very low", "negligible"):
		return 100, false
	case containsAny(level, "very high", "extreme", "severe"):
		return 10, false
	case containsAny(level, "high"):
		return 25, false
	case containsAny(level, "moderate", "medium"):
		return 55, false
	case containsAny(level, "low"):
		return 85, false
	default:
		return neutralScore, true
	}
}

// CrimeLevelScore maps a crime-index category to a 0-100 safety score
func CrimeLevelScore(level string) (score float64, assumed bool) {
	switch {
	case containsAny(level, "very low"):
		return 95, false
	case containsAny(level, "very high"):
		return 10, false
	case containsAny(level, "high"):
		return 25, false
	case containsAny(level, "moderate", "average", "medium"):
		return 55, false
	case containsAny(level, "low"):
		return 85, false
	default:
		return neutralScore, true
	}
}

// ConditionScore maps a free-text condition word to a 0-100 condition score
func ConditionScore(condition string) (score float64, assumed bool) {
	switch {
	case containsAny(condition, "excellent", "new"):
		return 100, false
	case containsAny(condition, "very good"):
		return 85, false
	case containsAny(condition, "good"):
		return 70, false
	case containsAny(condition, "fair", "average"):
		return 50, false
	case containsAny(condition, "poor", "needs work", "fixer"):
		return 25, false
	default:
		return neutralScore, true
	}
}

// AQIScore maps a reported air-quality index to a 0-100 quality score using
// the EPA AQI bands. A value that cannot be parsed yields the neutral
// mid-range score with assumed=true.
func AQIScore(raw string) (score float64, assumed bool) {
	aqi := ParseNumeric(raw)
	if aqi == nil {
		return neutralScore, true
	}
	switch {
	case *aqi <= 50:
		return 100, false
	case *aqi <= 100:
		return 80, false
	case *aqi <= 150:
		return 55, false
	case *aqi <= 200:
		return 30, false
	default:
		return 10, false
	}
}

// RiskSeverity converts a categorical risk level into a 0-100 severity
// (higher is riskier), the orientation the ranking comparators need. The
// assumed flag carries through from RiskLevelScore.
func RiskSeverity(level string) (severity float64, assumed bool) {
	score, assumed := RiskLevelScore(level)
	return 100 - score, assumed
}

func containsAny(s string, subs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
