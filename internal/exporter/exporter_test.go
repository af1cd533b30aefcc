package exporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/cluster"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/config"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/features"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/valuation"
	"github.com/KaanDRoid/fifa-analytics-dashboard/pkg/contracts/domain"
)

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	return config.GetPathsFrom(t.TempDir())
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	err := w.WriteCSV("out.csv", WriteOptions{
		Headers: []string{"a", "b"},
		Records: [][]string{{"1", "2"}, {"3", "4"}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(paths.ReportsDir, "out.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "a,b", lines[0])
}

func TestCSVWriter_BOMPrefix(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	err := w.WriteCSV("bom.csv", WriteOptions{
		Headers:   []string{"x"},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(paths.ReportsDir, "bom.csv"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
}

func TestCSVWriter_WriteDerived(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	derived := &features.Result{Rows: []features.Row{{
		Player: domain.PlayerRecord{
			ID: 1, Name: "Alice", Overall: 88, Potential: 90, Age: 24,
			Pace: 80, Shooting: 75, Passing: 82, Dribbling: 85, Defending: 40, Physic: 70,
			ValueEUR: 55_000_000, Club: "Alpha FC", Positions: "ST",
		},
		ValuePerOverall:  625000,
		PerformanceIndex: 76.5,
		GrowthPotential:  2,
		AgeGroup:         "20-25",
	}}}

	require.NoError(t, w.WriteDerived("derived.csv", derived))

	data, err := os.ReadFile(filepath.Join(paths.ReportsDir, "derived.csv"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Alice")
	assert.Contains(t, content, "625000")
	assert.Contains(t, content, "20-25")
}

func TestCSVWriter_WritePredictions(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	preds := []valuation.Prediction{
		{PlayerID: 7, Name: "Bob", ActualEUR: 1e6, Predicted: 1.2e6, Low: 9e5, High: 1.5e6, ValueRatio: 0.83},
	}
	require.NoError(t, w.WritePredictions("preds.csv", preds))

	data, err := os.ReadFile(filepath.Join(paths.ReportsDir, "preds.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Bob")
	assert.Contains(t, string(data), "1200000")
}

func TestCSVWriter_WriteAssignments(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	result := &cluster.Result{
		K: 2,
		Assignments: []cluster.Assignment{
			{PlayerID: 1, Name: "Alice", Cluster: 0, X: 1.5, Y: -0.5},
			{PlayerID: 2, Name: "Bob", Cluster: 1, X: -1.5, Y: 0.5},
		},
		Profiles: []cluster.Profile{
			{Cluster: 0, Style: cluster.StylePlaymakers},
			{Cluster: 1, Style: cluster.StyleDefensiveAnchors},
		},
	}
	require.NoError(t, w.WriteAssignments("clusters.csv", result))

	data, err := os.ReadFile(filepath.Join(paths.ReportsDir, "clusters.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), cluster.StylePlaymakers)
	assert.Contains(t, string(data), cluster.StyleDefensiveAnchors)
}

func TestJSONWriter_WriteJSON(t *testing.T) {
	paths := testPaths(t)
	w := NewJSONWriter(paths)

	payload := map[string]any{"players": 16, "clubs": 2}
	require.NoError(t, w.WriteJSON("summary.json", payload))

	data, err := os.ReadFile(filepath.Join(paths.ReportsDir, "summary.json"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(16), decoded["players"])
}

func TestJSONWriter_AbsolutePath(t *testing.T) {
	w := NewJSONWriter(nil)
	target := filepath.Join(t.TempDir(), "abs.json")

	require.NoError(t, w.WriteJSON(target, map[string]int{"k": 6}))
	_, err := os.Stat(target)
	assert.NoError(t, err)
}
