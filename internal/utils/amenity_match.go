package utils

import (
	"strconv"
	"strings"
)

// amenityAliases maps search keywords to the amenity spellings that occur
// in room data.
var amenityAliases = map[string][]string{
	"wifi":      {"free wifi", "wifi", "wi-fi", "wireless internet"},
	"breakfast": {"free breakfast", "breakfast", "breakfast included"},
	"service":   {"room service", "24/7 room service"},
	"view":      {"mountain view", "sea view", "city view", "view"},
	"pool":      {"pool access", "swimming pool", "pool"},
	"gym":       {"gym", "fitness", "fitness center"},
	"spa":       {"spa", "wellness"},
	"parking":   {"parking", "free parking", "valet parking"},
	"aircon":    {"air conditioning", "air conditioner", "aircon", "a/c"},
	"tv":        {"tv", "television", "smart tv", "flat screen"},
	"minibar":   {"minibar", "mini bar", "mini-bar"},
	"bar":       {"bar", "lounge"},
}

// FuzzyMatchAmenity reports whether the search term matches the amenity,
// allowing for the common alias spellings above.
func FuzzyMatchAmenity(searchTerm, amenity string) bool {
	searchLower := strings.ToLower(strings.TrimSpace(searchTerm))
	amenityLower := strings.ToLower(strings.TrimSpace(amenity))

	if searchLower == "" || amenityLower == "" {
		return false
	}

	// Exact or substring match
	if searchLower == amenityLower || strings.Contains(amenityLower, searchLower) {
		return true
	}

	// Alias match in either direction
	for key, values := range amenityAliases {
		if !strings.Contains(searchLower, key) {
			continue
		}
		for _, alias := range values {
			if strings.Contains(amenityLower, alias) {
				return true
			}
		}
	}

	return false
}

// BuildFuzzyAmenityQuery builds JSONB conditions for amenity matching.
// Returns SQL conditions and parameters for PostgreSQL JSONB array
// matching, continuing positional parameters from paramIndex.
func BuildFuzzyAmenityQuery(searchTerms []string, paramIndex int) ([]string, []interface{}, int) {
	if len(searchTerms) == 0 {
		return nil, nil, paramIndex
	}

	var conditions []string
	var params []interface{}

	for _, term := range searchTerms {
		termLower := strings.ToLower(strings.TrimSpace(term))
		if termLower == "" {
			continue
		}

		patterns := []string{termLower}
		for key, values := range amenityAliases {
			if strings.Contains(termLower, key) {
				patterns = values
				break
			}
		}

		// Each requested amenity must match at least one element
		var orConditions []string
		for _, pattern := range patterns {
			orConditions = append(orConditions, "elem::text ILIKE $"+strconv.Itoa(paramIndex))
			params = append(params, "%"+pattern+"%")
			paramIndex++
		}

		condition := "EXISTS (SELECT 1 FROM jsonb_array_elements_text(amenities) elem WHERE " + strings.Join(orConditions, " OR ") + ")"
		conditions = append(conditions, condition)
	}

	return conditions, params, paramIndex
}
