package normalize

import "math"

// ChecklistSize is the fixed number of tracked fields a fully-populated
// record resolves. It is a versioned constant, deliberately not derived
// from the view-model shape, so completeness percentages stay comparable
// across records and across schema revisions.
const ChecklistSize = 50

// Completeness converts a missing-field count into a 0-100 percentage
// against a checklist of n fields. Deterministic and pure; out-of-range
// inputs clamp rather than error.
func Completeness(missingCount, n int) int {
	if n <= 0 {
		return 0
	}
	pct := math.Round(100 * float64(n-missingCount) / float64(n))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}
