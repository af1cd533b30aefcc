package exporter

import (
	"strconv"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/cluster"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/features"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/valuation"
)

// derivedHeaders is the column order of the combined derived table.
var derivedHeaders = []string{
	"player_id", "name", "club", "league", "nationality", "positions",
	"overall", "potential", "age", "value_eur",
	"pace", "shooting", "passing", "dribbling", "defending", "physic",
	"value_per_overall", "performance_index", "growth_potential", "age_group",
}

// WriteDerived exports the full derived table.
func (w *CSVWriter) WriteDerived(filePath string, derived *features.Result) error {
	records := make([][]string, 0, len(derived.Rows))
	for _, row := range derived.Rows {
		p := row.Player
		records = append(records, []string{
			strconv.FormatInt(p.ID, 10), p.Name, p.Club, p.League, p.Nationality, p.Positions,
			strconv.Itoa(p.Overall), strconv.Itoa(p.Potential), strconv.Itoa(p.Age),
			formatFloat(p.ValueEUR),
			strconv.Itoa(p.Pace), strconv.Itoa(p.Shooting), strconv.Itoa(p.Passing),
			strconv.Itoa(p.Dribbling), strconv.Itoa(p.Defending), strconv.Itoa(p.Physic),
			formatFloat(row.ValuePerOverall), formatFloat(row.PerformanceIndex),
			strconv.Itoa(row.GrowthPotential), row.AgeGroup,
		})
	}
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   derivedHeaders,
		Records:   records,
		BOMPrefix: true,
	})
}

// WritePredictions exports valuation model output.
func (w *CSVWriter) WritePredictions(filePath string, predictions []valuation.Prediction) error {
	records := make([][]string, 0, len(predictions))
	for _, p := range predictions {
		records = append(records, []string{
			strconv.FormatInt(p.PlayerID, 10), p.Name,
			formatFloat(p.ActualEUR), formatFloat(p.Predicted),
			formatFloat(p.Low), formatFloat(p.High),
			formatFloat(p.ValueRatio),
		})
	}
	return w.WriteCSV(filePath, WriteOptions{
		Headers: []string{
			"player_id", "name", "actual_value_eur", "predicted_value_eur",
			"ci_low_eur", "ci_high_eur", "value_ratio",
		},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteAssignments exports cluster membership and scatter coordinates.
func (w *CSVWriter) WriteAssignments(filePath string, result *cluster.Result) error {
	styles := make(map[int]string, len(result.Profiles))
	for _, p := range result.Profiles {
		styles[p.Cluster] = p.Style
	}

	records := make([][]string, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		records = append(records, []string{
			strconv.FormatInt(a.PlayerID, 10), a.Name,
			strconv.Itoa(a.Cluster), styles[a.Cluster],
			formatFloat(a.X), formatFloat(a.Y),
		})
	}
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   []string{"player_id", "name", "cluster", "style", "x", "y"},
		Records:   records,
		BOMPrefix: true,
	})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
