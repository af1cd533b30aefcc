// Package valuation trains the market value ensemble and scores players
// against it. All training randomness flows from the configured seed,
// so fitting the same table twice yields byte-identical metrics and
// predictions.
package valuation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/config"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/errors"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/features"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/ml"
)

// FitReport summarizes one training run.
type FitReport struct {
	ForestMetrics   ml.RegressionMetrics `json:"forest_metrics"`
	BoostingMetrics ml.RegressionMetrics `json:"boosting_metrics"`
	EnsembleMetrics ml.RegressionMetrics `json:"ensemble_metrics"`
	Importances     map[string]float64   `json:"feature_importances"`
	Features        []string             `json:"features"`
	TrainRows       int                  `json:"train_rows"`
	MaskedRows      int                  `json:"masked_rows"`
}

// Prediction is one scored player. Low and High bound the estimate with
// the 10th and 90th percentile of the forest's per-tree votes, blended
// with the boosted component at the ensemble weights.
type Prediction struct {
	PlayerID   int64   `json:"player_id"`
	Name       string  `json:"name"`
	ActualEUR  float64 `json:"actual_value_eur"`
	Predicted  float64 `json:"predicted_value_eur"`
	Low        float64 `json:"ci_low_eur"`
	High       float64 `json:"ci_high_eur"`
	ValueRatio float64 `json:"value_ratio"` // actual / predicted, 0 when predicted is 0
}

// Predictor combines a random forest and a gradient booster over
// standardized features.
type Predictor struct {
	cfg    config.MLConfig
	logger *slog.Logger

	scaler  *ml.StandardScaler
	forest  *ml.RandomForest
	booster *ml.GradientBoosting

	columns []string
	report  *FitReport
}

// NewPredictor creates an unfitted predictor.
func NewPredictor(cfg config.MLConfig, logger *slog.Logger) *Predictor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Predictor{cfg: cfg, logger: logger}
}

// Fit trains the ensemble on the derived table. Rows with non-positive
// or capped market values are masked out before the split so free
// agents and data glitches never reach the models.
func (p *Predictor) Fit(ctx context.Context, derived *features.Result) (*FitReport, error) {
	cols := featureColumns(derived.Source)

	var x [][]float64
	var y []float64
	masked := 0
	for _, row := range derived.Rows {
		value := row.Player.ValueEUR
		if value <= 0 || value >= p.cfg.ValueOutlierCap {
			masked++
			continue
		}
		x = append(x, featureVector(row.Player, cols))
		y = append(y, value)
	}
	if len(x) < 10 {
		return nil, errors.NewValidationError(
			fmt.Sprintf("only %d rows carry a usable market value, need at least 10", len(x)), nil)
	}

	trainIdx, testIdx, err := ml.TrainTestSplit(len(x), p.cfg.TestSize, p.cfg.RandomSeed)
	if err != nil {
		return nil, errors.NewConfigError("train/test split failed", err)
	}

	p.scaler = &ml.StandardScaler{}
	scaled, err := p.scaler.FitTransform(x)
	if err != nil {
		return nil, errors.NewValidationError("feature scaling failed", err)
	}

	trainX, trainY := ml.Subset(scaled, trainIdx), ml.SubsetVec(y, trainIdx)
	testX, testY := ml.Subset(scaled, testIdx), ml.SubsetVec(y, testIdx)

	p.forest = ml.NewRandomForest(ml.ForestParams{
		NumTrees: p.cfg.NumTrees,
		Seed:     p.cfg.RandomSeed,
	})
	if err := p.forest.Fit(ctx, trainX, trainY); err != nil {
		return nil, errors.NewValidationError("forest training failed", err)
	}

	p.booster = ml.NewGradientBoosting(ml.BoostingParams{
		Stages:       p.cfg.BoostingStages,
		LearningRate: p.cfg.LearningRate,
		MaxDepth:     3,
	})
	if err := p.booster.Fit(trainX, trainY); err != nil {
		return nil, errors.NewValidationError("boosting training failed", err)
	}

	forestPred := make([]float64, len(testX))
	boostPred := make([]float64, len(testX))
	blendPred := make([]float64, len(testX))
	for i, row := range testX {
		forestPred[i] = p.forest.Predict(row)
		boostPred[i] = p.booster.Predict(row)
		blendPred[i] = p.blend(forestPred[i], boostPred[i])
	}

	forestMetrics, err := ml.Evaluate(testY, forestPred)
	if err != nil {
		return nil, errors.NewValidationError("forest evaluation failed", err)
	}
	boostMetrics, _ := ml.Evaluate(testY, boostPred)
	blendMetrics, _ := ml.Evaluate(testY, blendPred)

	p.columns = cols
	p.report = &FitReport{
		ForestMetrics:   forestMetrics,
		BoostingMetrics: boostMetrics,
		EnsembleMetrics: blendMetrics,
		Importances:     p.blendImportances(cols),
		Features:        cols,
		TrainRows:       len(trainIdx),
		MaskedRows:      masked,
	}

	p.logger.InfoContext(ctx, "valuation model fitted",
		slog.Int("train_rows", len(trainIdx)),
		slog.Int("test_rows", len(testIdx)),
		slog.Int("masked_rows", masked),
		slog.Float64("ensemble_r2", blendMetrics.R2),
		slog.Float64("ensemble_mae", blendMetrics.MAE))

	return p.report, nil
}

// Report returns the metrics of the last fit, nil before fitting.
func (p *Predictor) Report() *FitReport {
	return p.report
}

// Predict scores every row of the derived table with the fitted
// ensemble. The table must expose the exact feature columns seen at fit
// time; anything else means the model is stale for this data.
func (p *Predictor) Predict(ctx context.Context, derived *features.Result) ([]Prediction, error) {
	if p.report == nil {
		return nil, errors.NewValidationError("predictor is not fitted", nil)
	}
	cols := featureColumns(derived.Source)
	if !sameColumns(cols, p.columns) {
		return nil, errors.NewSchemaMismatchError(
			fmt.Sprintf("table features %v do not match fitted features %v", cols, p.columns), nil)
	}

	out := make([]Prediction, 0, len(derived.Rows))
	for _, row := range derived.Rows {
		scaled, err := p.scaler.Transform([][]float64{featureVector(row.Player, cols)})
		if err != nil {
			return nil, errors.NewSchemaMismatchError("feature scaling rejected row", err)
		}
		out = append(out, p.score(row.Player.ID, row.Player.Name, row.Player.ValueEUR, scaled[0]))
	}

	p.logger.InfoContext(ctx, "players scored", slog.Int("rows", len(out)))
	return out, nil
}

func (p *Predictor) score(id int64, name string, actual float64, scaled []float64) Prediction {
	perTree := p.forest.PredictPerTree(scaled)
	var forestMean float64
	for _, v := range perTree {
		forestMean += v
	}
	forestMean /= float64(len(perTree))
	boosted := p.booster.Predict(scaled)

	predicted := p.blend(forestMean, boosted)
	low := p.blend(ml.Quantile(perTree, 0.1), boosted)
	high := p.blend(ml.Quantile(perTree, 0.9), boosted)

	ratio := 0.0
	if predicted > 0 {
		ratio = actual / predicted
	}

	return Prediction{
		PlayerID:   id,
		Name:       name,
		ActualEUR:  actual,
		Predicted:  predicted,
		Low:        low,
		High:       high,
		ValueRatio: ratio,
	}
}

func (p *Predictor) blend(forest, boosted float64) float64 {
	return p.cfg.ForestWeight*forest + (1-p.cfg.ForestWeight)*boosted
}

func (p *Predictor) blendImportances(cols []string) map[string]float64 {
	fi := p.forest.FeatureImportances()
	bi := p.booster.FeatureImportances()

	out := make(map[string]float64, len(cols))
	for i, col := range cols {
		v := p.cfg.ForestWeight * fi[i]
		if i < len(bi) {
			v += (1 - p.cfg.ForestWeight) * bi[i]
		}
		out[col] = v
	}
	return out
}
