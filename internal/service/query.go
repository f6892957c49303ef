package service

import (
	"sort"

	"quickstay/internal/model"
)

// ApplyQuery derives a filtered, sorted view of the room catalog from the
// given filter state. It is a pure function: the input catalog is never
// mutated and the result is always a fresh slice.
//
// Filter semantics: a room passes the type filter if its room type is in
// the selected set, or if the set is empty (empty selection means no
// restriction, not exclude-all). A room passes the price filter if its
// price falls inside any selected range. The two families combine with
// logical AND.
//
// Sort semantics: exactly one sort key is active at a time. Ties keep
// their original relative order (stable sort); an empty or unknown sort
// label preserves catalog order.
func ApplyQuery(catalog []model.Room, state model.FilterState) []model.Room {
	ranges := parseRanges(state.PriceRanges)

	result := make([]model.Room, 0, len(catalog))
	for _, room := range catalog {
		if !matchesRoomType(room, state.RoomTypes) {
			continue
		}
		if !matchesPrice(room, ranges) {
			continue
		}
		result = append(result, room)
	}

	switch state.SortBy {
	case model.SortPriceLowToHigh:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].PricePerNight < result[j].PricePerNight
		})
	case model.SortPriceHighToLow:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].PricePerNight > result[j].PricePerNight
		})
	case model.SortNewestFirst:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	}

	return result
}

// parseRanges resolves the selected labels to numeric intervals.
// Malformed labels are skipped; the remaining selections still apply,
// and an all-malformed selection leaves the price filter inactive.
func parseRanges(labels []string) []model.PriceRange {
	ranges := make([]model.PriceRange, 0, len(labels))
	for _, label := range labels {
		pr, err := model.ParsePriceRange(label)
		if err != nil {
			continue
		}
		ranges = append(ranges, pr)
	}
	return ranges
}

func matchesRoomType(room model.Room, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, t := range selected {
		if room.RoomType == t {
			return true
		}
	}
	return false
}

func matchesPrice(room model.Room, ranges []model.PriceRange) bool {
	if len(ranges) == 0 {
		return true
	}
	for _, r := range ranges {
		if r.Contains(room.PricePerNight) {
			return true
		}
	}
	return false
}
