package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	ML      MLConfig      `yaml:"ml" envconfig:"ML"`
	Tracing TracingConfig `yaml:"tracing" envconfig:"TRACING"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"data/reports"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// MLConfig contains the model training configuration shared by the
// predictor and the clusterer.
type MLConfig struct {
	RandomSeed      int64   `yaml:"random_seed" envconfig:"RANDOM_SEED" default:"42"`
	TestSize        float64 `yaml:"test_size" envconfig:"TEST_SIZE" default:"0.2" validate:"gt=0,lt=1"`
	NumTrees        int     `yaml:"num_trees" envconfig:"NUM_TREES" default:"100" validate:"gt=0"`
	BoostingStages  int     `yaml:"boosting_stages" envconfig:"BOOSTING_STAGES" default:"100" validate:"gt=0"`
	LearningRate    float64 `yaml:"learning_rate" envconfig:"LEARNING_RATE" default:"0.1" validate:"gt=0,lte=1"`
	ForestWeight    float64 `yaml:"forest_weight" envconfig:"FOREST_WEIGHT" default:"0.6" validate:"gte=0,lte=1"`
	ValueOutlierCap float64 `yaml:"value_outlier_cap" envconfig:"VALUE_OUTLIER_CAP" default:"200000000" validate:"gt=0"`
	DefaultClusters int     `yaml:"default_clusters" envconfig:"DEFAULT_CLUSTERS" default:"6" validate:"gte=2"`
	KMeansRestarts  int     `yaml:"kmeans_restarts" envconfig:"KMEANS_RESTARTS" default:"10" validate:"gt=0"`
	MinOverall      int     `yaml:"min_overall" envconfig:"MIN_OVERALL" default:"60" validate:"gte=0,lte=100"`
}

// TracingConfig controls the optional OpenTelemetry stage tracing.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled" envconfig:"ENABLED" default:"false"`
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" default:"1.0" validate:"gte=0,lte=1"`
}

// Load loads configuration from environment variables and config file.
// Environment variables (FIFA_ prefix) win over file values.
func Load() (*Config, error) {
	var cfg Config

	// File first so env vars can override it
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = *fileCfg
	}

	if err := envconfig.Process("FIFA", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// getConfigFilePath returns the config file path, overridable via env.
func getConfigFilePath() string {
	if path := os.Getenv("FIFA_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// applyDefaults fills zero values with the documented defaults. envconfig
// only applies struct defaults when processing a zero struct, so a partial
// YAML file needs this pass.
func applyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "console"
	}
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = "logs/app.log"
	}
	if cfg.Paths.DataDir == "" {
		cfg.Paths.DataDir = "data"
	}
	if cfg.Paths.ReportsDir == "" {
		cfg.Paths.ReportsDir = "data/reports"
	}
	if cfg.Paths.LogsDir == "" {
		cfg.Paths.LogsDir = "logs"
	}
	if cfg.ML.RandomSeed == 0 {
		cfg.ML.RandomSeed = DefaultRandomSeed
	}
	if cfg.ML.TestSize == 0 {
		cfg.ML.TestSize = DefaultTestSize
	}
	if cfg.ML.NumTrees == 0 {
		cfg.ML.NumTrees = DefaultNumTrees
	}
	if cfg.ML.BoostingStages == 0 {
		cfg.ML.BoostingStages = DefaultBoostingStages
	}
	if cfg.ML.LearningRate == 0 {
		cfg.ML.LearningRate = DefaultLearningRate
	}
	if cfg.ML.ForestWeight == 0 {
		cfg.ML.ForestWeight = DefaultForestWeight
	}
	if cfg.ML.ValueOutlierCap == 0 {
		cfg.ML.ValueOutlierCap = DefaultValueOutlierCap
	}
	if cfg.ML.DefaultClusters == 0 {
		cfg.ML.DefaultClusters = DefaultClusterCount
	}
	if cfg.ML.KMeansRestarts == 0 {
		cfg.ML.KMeansRestarts = DefaultKMeansRestarts
	}
	if cfg.ML.MinOverall == 0 {
		cfg.ML.MinOverall = DefaultMinOverall
	}
	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = 1.0
	}
}

// Validate validates the configuration using struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
