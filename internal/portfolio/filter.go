package portfolio

import (
	"strings"

	"proplens/domain/portfolio"
	"proplens/domain/property"
)

// Filter returns the subset of views satisfying every present constraint,
// preserving relative order. Absent constraints pass everything; present
// numeric bounds are inclusive on both ends. A record whose field is
// unknown fails any constraint targeting that field - an unknown price is
// never assumed to be inside a requested range. Inputs are not mutated.
// Contradictory criteria (minPrice > maxPrice) simply yield an empty set.
func Filter(views []property.ChartProperty, f portfolio.Filters) []property.ChartProperty {
	out := make([]property.ChartProperty, 0, len(views))
	for _, v := range views {
		if matches(v, f) {
			out = append(out, v)
		}
	}
	return out
}

func matches(v property.ChartProperty, f portfolio.Filters) bool {
	if f.MinPrice != nil && (v.ListPrice == nil || *v.ListPrice < *f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && (v.ListPrice == nil || *v.ListPrice > *f.MaxPrice) {
		return false
	}
	if f.MinBedrooms != nil && (v.Bedrooms == nil || *v.Bedrooms < *f.MinBedrooms) {
		return false
	}
	if f.MaxBedrooms != nil && (v.Bedrooms == nil || *v.Bedrooms > *f.MaxBedrooms) {
		return false
	}
	if len(f.PropertyTypes) > 0 && !typeIn(v.PropertyType, f.PropertyTypes) {
		return false
	}
	if f.Region != "" {
		if !strings.Contains(strings.ToLower(v.Address), strings.ToLower(f.Region)) {
			return false
		}
	}
	return true
}

func typeIn(propertyType *string, allowed []string) bool {
	if propertyType == nil {
		return false
	}
	for _, t := range allowed {
		if t == *propertyType {
			return true
		}
	}
	return false
}
