package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/KaanDRoid/fifa-analytics-dashboard/internal/errors"
)

const testHeader = "player_id,long_name,overall,potential,value_eur,age,pace,shooting,passing,dribbling,defending,physic,club_name,player_positions,nationality_name,league_name"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "players.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_Load(t *testing.T) {
	loader := NewLoader(nil)
	ctx := context.Background()

	t.Run("loads valid rows", func(t *testing.T) {
		csv := testHeader + "\n" +
			"1,Alpha,80,85,50000000,24,70,75,72,74,40,68,FC Test,\"ST, LW\",Testland,Test League\n" +
			"2,Beta,70,72,20000000,29,60,55,68,62,65,70,FC Test,CM,Testland,Test League\n" +
			"3,Gamma,90,92,90000000,27,85,88,84,90,35,72,FC Test,ST,Testland,Test League\n"
		table, report, err := loader.Load(ctx, writeCSV(t, csv))
		require.NoError(t, err)

		assert.Equal(t, 3, table.Len())
		assert.Equal(t, 3, report.TotalRows)
		assert.Equal(t, 3, report.LoadedRows)
		assert.Zero(t, report.DroppedParse)
		assert.Zero(t, report.DroppedCritical)

		first := table.Rows[0]
		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, "Alpha", first.Name)
		assert.Equal(t, 80, first.Overall)
		assert.Equal(t, 50000000.0, first.ValueEUR)
		assert.Equal(t, []string{"ST", "LW"}, first.PositionTags())
	})

	t.Run("missing required column aborts with schema error", func(t *testing.T) {
		// No overall column at all
		csv := "player_id,long_name,potential,value_eur,age,pace,shooting,passing,dribbling,defending,physic,club_name,player_positions,nationality_name,league_name\n" +
			"1,Alpha,85,50000000,24,70,75,72,74,40,68,FC Test,ST,Testland,Test League\n"
		table, report, err := loader.Load(ctx, writeCSV(t, csv))

		require.Error(t, err)
		assert.True(t, apperrors.IsSchema(err))
		assert.Nil(t, table)
		assert.Nil(t, report)
	})

	t.Run("uncoercible cell drops the row and counts it", func(t *testing.T) {
		csv := testHeader + "\n" +
			"1,Alpha,80,85,50000000,24,70,75,72,74,40,68,FC Test,ST,Testland,Test League\n" +
			"2,Beta,not-a-number,72,20000000,29,60,55,68,62,65,70,FC Test,CM,Testland,Test League\n"
		table, report, err := loader.Load(ctx, writeCSV(t, csv))
		require.NoError(t, err)

		assert.Equal(t, 1, table.Len())
		assert.Equal(t, 1, report.DroppedParse)
	})

	t.Run("missing critical cells drop the row and count it", func(t *testing.T) {
		csv := testHeader + "\n" +
			",Alpha,80,85,50000000,24,70,75,72,74,40,68,FC Test,ST,Testland,Test League\n" +
			"2,Beta,,72,20000000,29,60,55,68,62,65,70,FC Test,CM,Testland,Test League\n" +
			"3,Gamma,90,92,90000000,27,85,88,84,90,35,72,FC Test,ST,Testland,Test League\n"
		table, report, err := loader.Load(ctx, writeCSV(t, csv))
		require.NoError(t, err)

		assert.Equal(t, 1, table.Len())
		assert.Equal(t, 2, report.DroppedCritical)
		assert.Zero(t, report.DroppedParse)
	})

	t.Run("optional columns degrade gracefully", func(t *testing.T) {
		csv := testHeader + ",wage_eur\n" +
			"1,Alpha,80,85,50000000,24,70,75,72,74,40,68,FC Test,ST,Testland,Test League,120000\n"
		table, _, err := loader.Load(ctx, writeCSV(t, csv))
		require.NoError(t, err)

		assert.True(t, table.HasColumn("wage_eur"))
		assert.False(t, table.HasColumn("height_cm"))
		assert.Equal(t, 120000.0, table.Rows[0].WageEUR)
	})

	t.Run("ratings exported as floats are accepted", func(t *testing.T) {
		csv := testHeader + "\n" +
			"1,Alpha,80.0,85.0,50000000,24,70,75,72,74,40,68,FC Test,ST,Testland,Test League\n"
		table, _, err := loader.Load(ctx, writeCSV(t, csv))
		require.NoError(t, err)
		assert.Equal(t, 80, table.Rows[0].Overall)
	})

	t.Run("missing file yields storage error", func(t *testing.T) {
		_, _, err := loader.Load(ctx, filepath.Join(t.TempDir(), "absent.csv"))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
	})
}

func TestResolveSchema_Aliases(t *testing.T) {
	header := []string{"sofifa_id", "short_name", "overall", "potential", "value", "age",
		"pace", "shooting", "passing", "dribbling", "defending", "physical",
		"club", "positions", "nationality", "league"}
	schema, err := ResolveSchema(header)
	require.NoError(t, err)

	idx, ok := schema.Index("player_id")
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.True(t, schema.Has("value_eur"))
	assert.True(t, schema.Has("physic"))
}

func TestResolveSchema_ReportsAllMissing(t *testing.T) {
	_, err := ResolveSchema([]string{"player_id", "long_name"})
	require.Error(t, err)
	assert.True(t, apperrors.IsSchema(err))
	assert.Contains(t, err.Error(), "overall")
	assert.Contains(t, err.Error(), "league_name")
}

func TestTable_Fingerprint(t *testing.T) {
	loader := NewLoader(nil)
	ctx := context.Background()
	csv := testHeader + "\n" +
		"1,Alpha,80,85,50000000,24,70,75,72,74,40,68,FC Test,ST,Testland,Test League\n"

	t1, _, err := loader.Load(ctx, writeCSV(t, csv))
	require.NoError(t, err)
	t2, _, err := loader.Load(ctx, writeCSV(t, csv))
	require.NoError(t, err)

	assert.Equal(t, t1.Fingerprint(), t2.Fingerprint(), "identical content must hash identically")

	csvChanged := testHeader + "\n" +
		"1,Alpha,81,85,50000000,24,70,75,72,74,40,68,FC Test,ST,Testland,Test League\n"
	t3, _, err := loader.Load(ctx, writeCSV(t, csvChanged))
	require.NoError(t, err)
	assert.NotEqual(t, t1.Fingerprint(), t3.Fingerprint())
}

func TestMerge(t *testing.T) {
	loader := NewLoader(nil)
	ctx := context.Background()

	male := testHeader + "\n" +
		"1,Alpha,80,85,50000000,24,70,75,72,74,40,68,FC Test,ST,Testland,Test League\n"
	female := testHeader + "\n" +
		"2,Beta,82,84,30000000,25,78,74,75,79,42,60,FC Test,LW,Testland,Test League\n"

	maleTable, _, err := loader.Load(ctx, writeCSV(t, male))
	require.NoError(t, err)
	femaleTable, _, err := loader.Load(ctx, writeCSV(t, female))
	require.NoError(t, err)

	merged, duplicates, err := Merge([]*Table{maleTable, femaleTable}, []string{"Male", "Female"})
	require.NoError(t, err)

	require.Equal(t, 2, merged.Len())
	assert.Equal(t, 0, duplicates)
	assert.Equal(t, "Male", merged.Rows[0].Gender)
	assert.Equal(t, "Female", merged.Rows[1].Gender)
	assert.True(t, merged.HasColumn("gender"))

	_, _, err = Merge(nil, nil)
	require.Error(t, err)
}

func TestMerge_DropsDuplicateIDs(t *testing.T) {
	loader := NewLoader(nil)
	ctx := context.Background()

	first := testHeader + "\n" +
		"1,Alpha,80,85,50000000,24,70,75,72,74,40,68,FC Test,ST,Testland,Test League\n" +
		"2,Beta,82,84,30000000,25,78,74,75,79,42,60,FC Test,LW,Testland,Test League\n"
	second := testHeader + "\n" +
		"2,Gamma,70,72,5000000,28,60,61,62,63,64,65,FC Other,CM,Testland,Test League\n" +
		"3,Delta,75,78,12000000,22,71,68,69,72,55,66,FC Other,CB,Testland,Test League\n"

	firstTable, _, err := loader.Load(ctx, writeCSV(t, first))
	require.NoError(t, err)
	secondTable, _, err := loader.Load(ctx, writeCSV(t, second))
	require.NoError(t, err)

	merged, duplicates, err := Merge([]*Table{firstTable, secondTable}, nil)
	require.NoError(t, err)

	// The first occurrence of ID 2 wins; the clash is counted.
	require.Equal(t, 3, merged.Len())
	assert.Equal(t, 1, duplicates)
	names := []string{merged.Rows[0].Name, merged.Rows[1].Name, merged.Rows[2].Name}
	assert.Equal(t, []string{"Alpha", "Beta", "Delta"}, names)
}

func TestLoad_DropsDuplicateIDs(t *testing.T) {
	loader := NewLoader(nil)

	csv := testHeader + "\n" +
		"1,Alpha,80,85,50000000,24,70,75,72,74,40,68,FC Test,ST,Testland,Test League\n" +
		"1,Alpha Again,81,86,51000000,24,70,75,72,74,40,68,FC Test,ST,Testland,Test League\n" +
		"2,Beta,82,84,30000000,25,78,74,75,79,42,60,FC Test,LW,Testland,Test League\n"

	table, report, err := loader.Load(context.Background(), writeCSV(t, csv))
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalRows)
	assert.Equal(t, 2, report.LoadedRows)
	assert.Equal(t, 1, report.DroppedDuplicate)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "Alpha", table.Rows[0].Name)
	assert.Equal(t, "Beta", table.Rows[1].Name)
}
