package features

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/dataset"
	"github.com/KaanDRoid/fifa-analytics-dashboard/pkg/contracts/domain"
)

func newTable(rows ...domain.PlayerRecord) *dataset.Table {
	return dataset.NewTable(rows, nil, "test")
}

func player(id int64, overall int, value float64) domain.PlayerRecord {
	return domain.PlayerRecord{
		ID: id, Name: "Player", Overall: overall, Potential: overall + 5,
		ValueEUR: value, Age: 25,
		Pace: 70, Shooting: 65, Passing: 68, Dribbling: 72, Defending: 50, Physic: 66,
		Positions: "ST", Club: "FC Test", Nationality: "Testland", League: "Test League",
	}
}

func TestDerive_ValuePerOverall(t *testing.T) {
	// The canonical 3-row scenario: overalls {80,70,90}, values
	// {50M,20M,90M} yield {0.625M, ~0.2857M, 1.0M} per overall point.
	table := newTable(
		player(1, 80, 50_000_000),
		player(2, 70, 20_000_000),
		player(3, 90, 90_000_000),
	)

	result, err := NewDeriver(nil).Derive(context.Background(), table)
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	assert.InDelta(t, 625_000, result.Rows[0].ValuePerOverall, 1e-6)
	assert.InDelta(t, 285_714.2857, result.Rows[1].ValuePerOverall, 1e-3)
	assert.InDelta(t, 1_000_000, result.Rows[2].ValuePerOverall, 1e-6)
}

func TestDerive_ValuePerOverallAlwaysFinite(t *testing.T) {
	zero := player(1, 0, 5_000_000)
	result, err := NewDeriver(nil).Derive(context.Background(), newTable(zero))
	require.NoError(t, err)

	v := result.Rows[0].ValuePerOverall
	assert.False(t, math.IsInf(v, 0))
	assert.False(t, math.IsNaN(v))
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Equal(t, 5_000_000.0, v, "overall floored at 1")
}

func TestDerive_Deterministic(t *testing.T) {
	table := newTable(
		player(1, 80, 50_000_000),
		player(2, 70, 20_000_000),
	)
	deriver := NewDeriver(nil)

	first, err := deriver.Derive(context.Background(), table)
	require.NoError(t, err)
	second, err := deriver.Derive(context.Background(), table)
	require.NoError(t, err)

	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, first.Warnings, second.Warnings)
}

func TestDerive_ClipsOutOfRangeInputs(t *testing.T) {
	bad := player(1, 80, 50_000_000)
	bad.Age = -3
	bad.Pace = 140
	bad.WageEUR = -100

	result, err := NewDeriver(nil).Derive(context.Background(), newTable(bad))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Warnings)
	clipped := result.Rows[0].Player
	assert.Equal(t, 15, clipped.Age)
	assert.Equal(t, 100, clipped.Pace)
	assert.Equal(t, 0.0, clipped.WageEUR)
}

func TestDerive_AgeGroups(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{18, "U20"},
		{20, "U20"},
		{21, "20-25"},
		{25, "20-25"},
		{28, "25-30"},
		{33, "30-35"},
		{38, "35+"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ageGroup(tt.age), "age %d", tt.age)
	}
}

func TestDerive_GrowthPotential(t *testing.T) {
	young := player(1, 70, 10_000_000)
	young.Potential = 88

	veteran := player(2, 85, 30_000_000)
	veteran.Potential = 82 // past peak

	result, err := NewDeriver(nil).Derive(context.Background(), newTable(young, veteran))
	require.NoError(t, err)

	assert.Equal(t, 18, result.Rows[0].GrowthPotential)
	assert.Equal(t, 0, result.Rows[1].GrowthPotential)
}

func TestPerformanceIndex_PositionWeights(t *testing.T) {
	base := player(1, 80, 10_000_000)
	base.Pace, base.Shooting, base.Passing, base.Dribbling, base.Defending, base.Physic = 80, 90, 70, 75, 40, 60

	t.Run("forward weighting", func(t *testing.T) {
		fwd := base
		fwd.Positions = "ST"
		// shooting .3, pace .25, dribbling .25, passing .1, physic .1
		want := 90*0.3 + 80*0.25 + 75*0.25 + 70*0.1 + 60*0.1
		assert.InDelta(t, want, performanceIndex(fwd), 1e-9)
	})

	t.Run("defender weighting", func(t *testing.T) {
		def := base
		def.Positions = "CB"
		want := 40*0.3 + 60*0.2 + 80*0.2 + 70*0.2 + 75*0.1
		assert.InDelta(t, want, performanceIndex(def), 1e-9)
	})

	t.Run("midfielder weighting", func(t *testing.T) {
		mid := base
		mid.Positions = "CM, CAM"
		want := 70*0.3 + 75*0.25 + 40*0.15 + 60*0.15 + 90*0.15
		assert.InDelta(t, want, performanceIndex(mid), 1e-9)
	})

	t.Run("goalkeeper falls back to skill mean", func(t *testing.T) {
		gk := base
		gk.Positions = "GK"
		want := (80.0 + 90 + 70 + 75 + 40 + 60) / 6
		assert.InDelta(t, want, performanceIndex(gk), 1e-9)
	})
}
