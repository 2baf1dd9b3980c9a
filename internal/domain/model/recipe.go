package model

import "math"

// Tier is a serving-count option a ratio may be defined for.
type Tier int

const (
	MinTier Tier = 1
	MaxTier Tier = 6

	// TierCount is the number of supported serving tiers.
	TierCount = int(MaxTier - MinTier + 1)
)

// Tiers lists every supported serving tier in ascending order.
var Tiers = [TierCount]Tier{1, 2, 3, 4, 5, 6}

// Valid reports whether t is one of the supported tiers.
func (t Tier) Valid() bool {
	return t >= MinTier && t <= MaxTier
}

// Ratio is one slot of a ServingRatios table. Known is false when the
// planning service supplied no ratio for the tier.
type Ratio struct {
	Value float64
	Known bool
}

// ServingRatios is a fixed lookup table from serving tier to the fractional
// number of units an item needs per recipe. Index 0 holds tier 1.
type ServingRatios [TierCount]Ratio

// Set records ratio r for tier t. Tiers outside the supported range are
// ignored and reported as false.
func (s *ServingRatios) Set(t Tier, r float64) bool {
	if !t.Valid() {
		return false
	}
	s[t-MinTier] = Ratio{Value: r, Known: true}
	return true
}

// Get returns the ratio for tier t, or ok=false when none is known.
func (s ServingRatios) Get(t Tier) (ratio float64, ok bool) {
	if !t.Valid() {
		return 0, false
	}
	slot := s[t-MinTier]
	return slot.Value, slot.Known
}

// Picks resolves tier t into a whole number of picks: the ratio rounded up.
// A partial unit still needs a full pick. Unknown tiers and missing ratios
// resolve to 0; negative ratios clamp to 0 and overly large ones to MaxUint32.
func (s ServingRatios) Picks(t Tier) uint32 {
	ratio, ok := s.Get(t)
	if !ok {
		ratio = 0
	}

	picks := math.Ceil(ratio)
	switch {
	case math.IsNaN(picks) || picks <= 0:
		return 0
	case picks >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(picks)
}

// Item is a stock-keeping unit within a recipe.
type Item struct {
	Code   string
	Name   string
	Ratios ServingRatios
}

// Recipe is a planned recipe with its component items, in the order the
// planning service returned them.
type Recipe struct {
	Title string
	Items []Item
}
