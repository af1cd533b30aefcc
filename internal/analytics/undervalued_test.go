package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndervalued(t *testing.T) {
	derived := fixture(t)

	bargains := Undervalued(derived, 75)
	require.NotEmpty(t, bargains)

	// Bargain Bob is priced at a fraction of the forward market.
	found := false
	for _, b := range bargains {
		if b.Name == "Bargain Bob" {
			found = true
			assert.Equal(t, "FWD", b.Position)
			assert.Less(t, b.ValuePerOverall, 0.8*b.GroupMedian)
		}
	}
	assert.True(t, found, "expected Bargain Bob among %v", bargains)

	// Results sort cheapest-relative-to-group first.
	for i := 1; i < len(bargains); i++ {
		prev := bargains[i-1].ValuePerOverall / bargains[i-1].GroupMedian
		cur := bargains[i].ValuePerOverall / bargains[i].GroupMedian
		assert.LessOrEqual(t, prev, cur)
	}
}

func TestUndervalued_MinOverallFilter(t *testing.T) {
	derived := fixture(t)

	for _, b := range Undervalued(derived, 80) {
		assert.GreaterOrEqual(t, b.Overall, 80)
	}
}

func TestUndervalued_Deterministic(t *testing.T) {
	derived := fixture(t)
	assert.Equal(t, Undervalued(derived, 60), Undervalued(derived, 60))
}
