package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/config"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/errors"
)

const csvHeader = "player_id,long_name,overall,potential,value_eur,age," +
	"pace,shooting,passing,dribbling,defending,physic," +
	"club_name,player_positions,nationality_name,league_name"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ML = config.MLConfig{
		RandomSeed:      42,
		TestSize:        0.2,
		NumTrees:        10,
		BoostingStages:  10,
		LearningRate:    0.1,
		ForestWeight:    0.6,
		ValueOutlierCap: 200_000_000,
		DefaultClusters: 3,
		KMeansRestarts:  3,
		MinOverall:      60,
	}
	return cfg
}

// writePlayersCSV writes n synthetic players with IDs starting at
// idOffset+1 and returns the path.
func writePlayersCSV(t *testing.T, dir, name string, n, idOffset int, seed int64) string {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))

	var b strings.Builder
	b.WriteString(csvHeader + "\n")
	positions := []string{"GK", "CB", "CM", "ST"}
	for i := 1; i <= n; i++ {
		overall := 60 + rng.Intn(30)
		fmt.Fprintf(&b, "%d,Player %d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,Club %d,%s,Nation,League\n",
			idOffset+i, idOffset+i, overall, overall+rng.Intn(5), overall*overall*1000, 18+rng.Intn(15),
			40+rng.Intn(50), 40+rng.Intn(50), 40+rng.Intn(50),
			40+rng.Intn(50), 30+rng.Intn(60), 40+rng.Intn(50),
			1+i%4, positions[i%4])
	}

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func TestPipeline_FullRun(t *testing.T) {
	dir := t.TempDir()
	path := writePlayersCSV(t, dir, "players.csv", 80, 0, 1)

	p := New(testConfig(), nil)
	result, err := p.Run(context.Background(), []string{path}, Options{Valuate: true, Cluster: true})
	require.NoError(t, err)

	assert.False(t, result.FromCache)
	assert.Equal(t, 80, result.Table.Len())
	assert.Equal(t, 80, result.Summary.Players)
	require.NotNil(t, result.FitReport)
	assert.Len(t, result.Predictions, 80)
	require.NotNil(t, result.Clusters)
	assert.Equal(t, 3, result.Clusters.K)
	require.Len(t, result.LoadReports, 1)
	assert.Equal(t, 80, result.LoadReports[0].LoadedRows)
}

func TestPipeline_CacheHit(t *testing.T) {
	dir := t.TempDir()
	path := writePlayersCSV(t, dir, "players.csv", 60, 0, 2)

	p := New(testConfig(), nil)
	first, err := p.Run(context.Background(), []string{path}, Options{Valuate: true})
	require.NoError(t, err)
	second, err := p.Run(context.Background(), []string{path}, Options{Valuate: true})
	require.NoError(t, err)

	assert.False(t, first.FromCache)
	assert.True(t, second.FromCache)

	// The cached run is the recomputation, byte for byte.
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.FitReport, second.FitReport)
	assert.Equal(t, first.Predictions, second.Predictions)
}

func TestPipeline_CacheKeyedByOptions(t *testing.T) {
	dir := t.TempDir()
	path := writePlayersCSV(t, dir, "players.csv", 60, 0, 3)

	p := New(testConfig(), nil)
	_, err := p.Run(context.Background(), []string{path}, Options{Cluster: true, Clusters: 2})
	require.NoError(t, err)

	other, err := p.Run(context.Background(), []string{path}, Options{Cluster: true, Clusters: 4})
	require.NoError(t, err)
	assert.False(t, other.FromCache)
	assert.Equal(t, 4, other.Clusters.K)
}

func TestPipeline_MergesFiles(t *testing.T) {
	dir := t.TempDir()
	male := writePlayersCSV(t, dir, "male_players.csv", 30, 0, 4)
	female := writePlayersCSV(t, dir, "female_players.csv", 30, 30, 5)

	p := New(testConfig(), nil)
	result, err := p.Run(context.Background(), []string{male, female}, Options{})
	require.NoError(t, err)

	assert.Equal(t, 60, result.Table.Len())
	require.Len(t, result.LoadReports, 2)

	genders := map[string]int{}
	for _, r := range result.Table.Rows {
		genders[r.Gender]++
	}
	assert.Equal(t, 30, genders["male"])
	assert.Equal(t, 30, genders["female"])
}

func TestPipeline_MergeDropsOverlappingIDs(t *testing.T) {
	dir := t.TempDir()
	// Both files carry IDs 1..30; only the first file's rows survive.
	male := writePlayersCSV(t, dir, "male_players.csv", 30, 0, 4)
	female := writePlayersCSV(t, dir, "female_players.csv", 30, 0, 5)

	p := New(testConfig(), nil)
	result, err := p.Run(context.Background(), []string{male, female}, Options{})
	require.NoError(t, err)

	assert.Equal(t, 30, result.Table.Len())
	for _, r := range result.Table.Rows {
		assert.Equal(t, "male", r.Gender)
	}
}

func TestPipeline_SchemaErrorAborts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.csv")
	require.NoError(t, os.WriteFile(path, []byte("player_id,long_name\n1,Someone\n"), 0644))

	p := New(testConfig(), nil)
	_, err := p.Run(context.Background(), []string{path}, Options{})
	require.Error(t, err)
	assert.True(t, errors.IsSchema(err))
}

func TestPipeline_NoInputs(t *testing.T) {
	p := New(testConfig(), nil)
	_, err := p.Run(context.Background(), nil, Options{})
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))
}
