package config

// Model training defaults. These mirror the settings the dashboards were
// tuned with; changing the seed or test size changes every reported metric.
const (
	DefaultRandomSeed      int64   = 42
	DefaultTestSize        float64 = 0.2
	DefaultNumTrees                = 100
	DefaultBoostingStages          = 100
	DefaultLearningRate    float64 = 0.1
	DefaultForestWeight    float64 = 0.6
	DefaultValueOutlierCap float64 = 200_000_000
	DefaultClusterCount            = 6
	DefaultKMeansRestarts          = 10
	DefaultMinOverall              = 60
)

// Well-known dataset file names.
const (
	MalePlayersFile   = "male_players.csv"
	FemalePlayersFile = "female_players.csv"
	CombinedDataFile  = "players_combined.csv"
)

// Rating bounds for clipping out-of-range inputs.
const (
	RatingMin = 0
	RatingMax = 100
	AgeMin    = 15
	AgeMax    = 50
)
