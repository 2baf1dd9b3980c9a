package model_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fmhf/recipe-pick/internal/domain/model"
)

func TestServingRatios_Picks(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  uint32
	}{
		{name: "whole ratio stays whole", ratio: 3.0, want: 3},
		{name: "fraction rounds up", ratio: 1.5, want: 2},
		{name: "tiny fraction still needs a pick", ratio: 0.01, want: 1},
		{name: "just above whole rounds up", ratio: 2.0001, want: 3},
		{name: "zero ratio", ratio: 0, want: 0},
		{name: "negative ratio clamps to zero", ratio: -1.5, want: 0},
		{name: "huge ratio clamps to max", ratio: 1e12, want: math.MaxUint32},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var ratios model.ServingRatios
			ratios.Set(2, tc.ratio)
			assert.Equal(t, tc.want, ratios.Picks(2))
		})
	}
}

func TestServingRatios_PicksMissingTierIsZero(t *testing.T) {
	var ratios model.ServingRatios
	ratios.Set(2, 1.5)
	ratios.Set(4, 3.0)

	for _, tier := range model.Tiers {
		got := ratios.Picks(tier)
		switch tier {
		case 2:
			assert.Equal(t, uint32(2), got)
		case 4:
			assert.Equal(t, uint32(3), got)
		default:
			assert.Zero(t, got, "tier %d has no ratio", tier)
		}
	}
}

func TestServingRatios_OutOfRangeTier(t *testing.T) {
	var ratios model.ServingRatios

	assert.False(t, ratios.Set(0, 1))
	assert.False(t, ratios.Set(7, 1))
	assert.Equal(t, uint32(0), ratios.Picks(0))
	assert.Equal(t, uint32(0), ratios.Picks(7))

	_, ok := ratios.Get(7)
	assert.False(t, ok)
}

func TestServingRatios_GetDistinguishesZeroFromMissing(t *testing.T) {
	var ratios model.ServingRatios
	ratios.Set(1, 0)

	v, ok := ratios.Get(1)
	assert.True(t, ok)
	assert.Zero(t, v)

	_, ok = ratios.Get(2)
	assert.False(t, ok)
}

func TestPicklistRow_Record(t *testing.T) {
	row := model.PicklistRow{
		Title:    "Soup",
		ItemCode: "S1",
		ItemName: "Carrot",
		Picks:    [model.TierCount]uint32{0, 2, 0, 3, 0, 0},
	}

	assert.Equal(t, []string{"Soup", "S1", "Carrot", "0", "2", "0", "3", "0", "0"}, row.Record())
	assert.Len(t, model.PicklistHeader, len(row.Record()))
}
