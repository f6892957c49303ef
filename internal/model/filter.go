package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Sort order labels (mutually exclusive; empty string means catalog order)
const (
	SortPriceLowToHigh = "Price Low to High"
	SortPriceHighToLow = "Price High to Low"
	SortNewestFirst    = "Newest First"
	SortNone           = ""
)

// SortOptions lists the selectable sort labels
func SortOptions() []string {
	return []string{SortPriceLowToHigh, SortPriceHighToLow, SortNewestFirst}
}

// PriceRangeLabels lists the canonical price range labels offered by the UI
func PriceRangeLabels() []string {
	return []string{"0 to 500", "500 to 1000", "1000 to 2000", "2000 to 3000"}
}

// FilterState is one UI session's active room query selection: a set of
// room type labels, a set of price range labels, and at most one sort
// order. The zero value is the empty selection (no restriction, no sort).
// Transition methods return new values and never mutate the receiver.
type FilterState struct {
	RoomTypes   []string `json:"room_types"`
	PriceRanges []string `json:"price_ranges"`
	SortBy      string   `json:"sort_by"`
}

// ToggleRoomType adds the label to the room type selection, or removes it
// if already selected.
func (f FilterState) ToggleRoomType(label string) FilterState {
	f.RoomTypes = toggle(f.RoomTypes, label)
	return f
}

// TogglePriceRange adds or removes a price range label, independently of
// the room type selection.
func (f FilterState) TogglePriceRange(label string) FilterState {
	f.PriceRanges = toggle(f.PriceRanges, label)
	return f
}

// WithSort replaces the current sort selection unconditionally.
func (f FilterState) WithSort(label string) FilterState {
	f.SortBy = label
	return f
}

// Cleared resets both selections and the sort order. Idempotent.
func (f FilterState) Cleared() FilterState {
	return FilterState{}
}

// IsEmpty reports whether no filter and no sort is active.
func (f FilterState) IsEmpty() bool {
	return len(f.RoomTypes) == 0 && len(f.PriceRanges) == 0 && f.SortBy == SortNone
}

func toggle(set []string, label string) []string {
	out := make([]string, 0, len(set)+1)
	removed := false
	for _, v := range set {
		if v == label {
			removed = true
			continue
		}
		out = append(out, v)
	}
	if !removed {
		out = append(out, label)
	}
	return out
}

// PriceRange is a numeric interval with a required lower bound and an
// optional upper bound (HasMax=false means "and above").
type PriceRange struct {
	Min    float64
	Max    float64
	HasMax bool
}

// Contains reports whether price falls inside the range (inclusive bounds).
func (p PriceRange) Contains(price float64) bool {
	if price < p.Min {
		return false
	}
	if p.HasMax && price > p.Max {
		return false
	}
	return true
}

// ParsePriceRange decomposes a label like "500 to 1000" into a numeric
// interval. A missing, unparseable, or zero upper bound means unbounded
// above; an unparseable lower bound makes the label invalid.
func ParsePriceRange(label string) (PriceRange, error) {
	parts := strings.Split(strings.TrimSpace(label), " to ")
	if len(parts) == 0 || strings.TrimSpace(parts[0]) == "" {
		return PriceRange{}, fmt.Errorf("empty price range label")
	}

	min, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return PriceRange{}, fmt.Errorf("invalid price range label %q: %w", label, err)
	}

	pr := PriceRange{Min: min}
	if len(parts) > 1 {
		max, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err == nil && max > 0 {
			pr.Max = max
			pr.HasMax = true
		}
	}
	return pr, nil
}
