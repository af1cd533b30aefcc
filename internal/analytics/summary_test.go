package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/features"
)

func TestSummarize(t *testing.T) {
	derived := fixture(t)

	s := Summarize(derived)
	assert.Equal(t, 16, s.Players)
	assert.Equal(t, 2, s.Clubs)
	assert.Equal(t, 2, s.Leagues)
	assert.Equal(t, 6, s.Nationalities)
	assert.Greater(t, s.MeanOverall, 70.0)
	assert.Greater(t, s.TotalValueEUR, 0.0)

	require.NotEmpty(t, s.TopRated)
	assert.Equal(t, "Maestro", s.TopRated[0].Name)
	assert.Equal(t, "Maestro", s.MostValued[0].Name)
	assert.Equal(t, "Prospect", s.TopProspect[0].Name)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(&features.Result{})
	assert.Equal(t, 0, s.Players)
	assert.Equal(t, 0.0, s.MeanOverall)
	assert.Empty(t, s.TopRated)
}

func TestTrends(t *testing.T) {
	derived := fixture(t)

	trends := Trends(derived)

	require.NotEmpty(t, trends.ByPosition)
	assert.Equal(t, "GK", trends.ByPosition[0].Key)
	total := 0
	for _, b := range trends.ByPosition {
		total += b.Players
	}
	assert.Equal(t, 16, total)

	require.NotEmpty(t, trends.ByAgeGroup)
	for _, b := range trends.ByAgeGroup {
		assert.Greater(t, b.Players, 0)
		assert.Greater(t, b.MeanValueEUR, 0.0)
	}

	// Premier carries the pricier squad.
	require.NotEmpty(t, trends.ByLeague)
	assert.Equal(t, "Premier", trends.ByLeague[0].Key)
}

func TestOverallBand(t *testing.T) {
	tests := []struct {
		overall int
		want    string
	}{
		{50, "<60"},
		{60, "60-69"},
		{75, "70-79"},
		{89, "80-89"},
		{93, "90+"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, overallBand(tt.overall))
	}
}
