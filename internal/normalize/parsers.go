package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ratingFractionRegexp captures "<n>/10" style school ratings
	ratingFractionRegexp = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*10`)
	// numericStripRegexp removes everything that is not part of a number
	numericStripRegexp = regexp.MustCompile(`[^0-9.\-]`)
)

// letter grade to 0-10 rating, per the school-rating feed convention
var gradeRatings = map[byte]float64{
	'A': 10,
	'B': 8,
	'C': 6,
	'D': 4,
	'F': 2,
}

// ParseNumeric extracts a float from free-form source text by stripping
// every character that is not a digit, '.' or '-'. Covers currency
// ("$1,234.50"), distances ("3.2 mi") and durations ("15 min"). Returns nil
// when no finite number remains.
func ParseNumeric(raw string) *float64 {
	cleaned := numericStripRegexp.ReplaceAllString(raw, "")
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		// Fall back to the longest valid leading prefix, so encodings
		// like "3 - Car Dependent" (stripped to "3-") still yield 3
		prefix, ok := leadingFloat(cleaned)
		if !ok {
			return nil
		}
		v = prefix
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func leadingFloat(s string) (float64, bool) {
	for end := len(s); end > 0; end-- {
		if v, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

// ParseNumericField parses an already-numeric leaf, passing nil through
func ParseNumericField(v *float64) *float64 {
	if v == nil || math.IsInf(*v, 0) || math.IsNaN(*v) {
		return nil
	}
	out := *v
	return &out
}

// ParseRating interprets a rating string on the 0-10 scale. Recognized
// encodings, in order: "<n>/10" fractions, leading letter grades A-F
// (case-insensitive), then a direct numeric parse. Free-text condition
// words like "Excellent" are deliberately not handled here - those go
// through the categorical score maps instead. Returns nil when nothing
// matches.
func ParseRating(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	if m := ratingFractionRegexp.FindStringSubmatch(trimmed); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return &v
		}
	}

	// Letter grades match on the first character only, mirroring the
	// rating feed ("A", "A-", "B+ rated")
	upper := strings.ToUpper(trimmed)
	if rating, ok := gradeRatings[upper[0]]; ok {
		return &rating
	}

	if v, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
		return &v
	}
	return nil
}
