package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/dataset"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/features"
	"github.com/KaanDRoid/fifa-analytics-dashboard/pkg/contracts/domain"
)

// fixture builds a small two-club dataset with a full spread of
// position groups and one obvious bargain.
func fixture(t *testing.T) *features.Result {
	t.Helper()

	rows := []domain.PlayerRecord{
		{ID: 1, Name: "Keeper One", Overall: 82, Potential: 84, Age: 28, Positions: "GK",
			Pace: 45, Shooting: 25, Passing: 60, Dribbling: 50, Defending: 20, Physic: 78,
			ValueEUR: 20_000_000, Club: "Alpha FC", League: "Premier", Nationality: "England"},
		{ID: 2, Name: "Wall", Overall: 85, Potential: 86, Age: 29, Positions: "CB",
			Pace: 60, Shooting: 40, Passing: 70, Dribbling: 60, Defending: 88, Physic: 85,
			ValueEUR: 45_000_000, Club: "Alpha FC", League: "Premier", Nationality: "England"},
		{ID: 3, Name: "Fullback", Overall: 80, Potential: 83, Age: 25, Positions: "RB",
			Pace: 84, Shooting: 55, Passing: 74, Dribbling: 75, Defending: 80, Physic: 76,
			ValueEUR: 35_000_000, Club: "Alpha FC", League: "Premier", Nationality: "England"},
		{ID: 4, Name: "Stopper", Overall: 78, Potential: 80, Age: 27, Positions: "CB",
			Pace: 58, Shooting: 35, Passing: 65, Dribbling: 55, Defending: 84, Physic: 82,
			ValueEUR: 25_000_000, Club: "Alpha FC", League: "Premier", Nationality: "France"},
		{ID: 5, Name: "Leftback", Overall: 77, Potential: 82, Age: 23, Positions: "LB",
			Pace: 82, Shooting: 50, Passing: 72, Dribbling: 74, Defending: 78, Physic: 74,
			ValueEUR: 28_000_000, Club: "Alpha FC", League: "Premier", Nationality: "England"},
		{ID: 6, Name: "Anchor", Overall: 83, Potential: 84, Age: 28, Positions: "CDM",
			Pace: 68, Shooting: 65, Passing: 82, Dribbling: 78, Defending: 80, Physic: 82,
			ValueEUR: 50_000_000, Club: "Alpha FC", League: "Premier", Nationality: "England"},
		{ID: 7, Name: "Maestro", Overall: 88, Potential: 89, Age: 27, Positions: "CAM",
			Pace: 75, Shooting: 80, Passing: 92, Dribbling: 90, Defending: 45, Physic: 65,
			ValueEUR: 95_000_000, Club: "Alpha FC", League: "Premier", Nationality: "Spain"},
		{ID: 8, Name: "Engine", Overall: 81, Potential: 83, Age: 26, Positions: "CM",
			Pace: 74, Shooting: 70, Passing: 80, Dribbling: 78, Defending: 70, Physic: 80,
			ValueEUR: 40_000_000, Club: "Alpha FC", League: "Premier", Nationality: "England"},
		{ID: 9, Name: "Winger", Overall: 84, Potential: 88, Age: 23, Positions: "RW",
			Pace: 92, Shooting: 78, Passing: 74, Dribbling: 88, Defending: 35, Physic: 64,
			ValueEUR: 70_000_000, Club: "Alpha FC", League: "Premier", Nationality: "Brazil"},
		{ID: 10, Name: "Nine", Overall: 86, Potential: 87, Age: 29, Positions: "ST",
			Pace: 80, Shooting: 90, Passing: 70, Dribbling: 82, Defending: 30, Physic: 78,
			ValueEUR: 80_000_000, Club: "Alpha FC", League: "Premier", Nationality: "England"},
		{ID: 11, Name: "Wide Left", Overall: 82, Potential: 90, Age: 21, Positions: "LW",
			Pace: 90, Shooting: 76, Passing: 72, Dribbling: 86, Defending: 32, Physic: 62,
			ValueEUR: 60_000_000, Club: "Alpha FC", League: "Premier", Nationality: "France"},

		// One striker priced far under the forward market.
		{ID: 12, Name: "Bargain Bob", Overall: 84, Potential: 85, Age: 27, Positions: "ST",
			Pace: 82, Shooting: 85, Passing: 68, Dribbling: 80, Defending: 28, Physic: 76,
			ValueEUR: 4_000_000, Club: "Beta United", League: "Championship", Nationality: "Wales"},
		{ID: 13, Name: "Striker Two", Overall: 83, Potential: 84, Age: 26, Positions: "ST",
			Pace: 81, Shooting: 84, Passing: 66, Dribbling: 79, Defending: 27, Physic: 75,
			ValueEUR: 55_000_000, Club: "Beta United", League: "Championship", Nationality: "Wales"},
		{ID: 14, Name: "Striker Three", Overall: 82, Potential: 83, Age: 25, Positions: "ST",
			Pace: 80, Shooting: 83, Passing: 65, Dribbling: 78, Defending: 26, Physic: 74,
			ValueEUR: 50_000_000, Club: "Beta United", League: "Championship", Nationality: "Scotland"},
		{ID: 15, Name: "Veteran", Overall: 74, Potential: 74, Age: 36, Positions: "CM",
			Pace: 55, Shooting: 62, Passing: 76, Dribbling: 70, Defending: 66, Physic: 68,
			ValueEUR: 2_000_000, Club: "Beta United", League: "Championship", Nationality: "Wales"},
		{ID: 16, Name: "Prospect", Overall: 65, Potential: 85, Age: 18, Positions: "CM",
			Pace: 70, Shooting: 58, Passing: 68, Dribbling: 70, Defending: 55, Physic: 60,
			ValueEUR: 8_000_000, Club: "Beta United", League: "Championship", Nationality: "Wales"},
	}

	table := dataset.NewTable(rows, nil, "fixture")
	derived, err := features.NewDeriver(nil).Derive(context.Background(), table)
	require.NoError(t, err)
	return derived
}
