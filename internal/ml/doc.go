// Package ml implements the model primitives used by the valuation
// predictor and the player clusterer: feature standardization,
// deterministic train/test splitting, regression quality metrics,
// CART regression trees with random-forest and gradient-boosting
// ensembles, seeded k-means and a 2-D PCA projection.
//
// Everything here is deterministic under a fixed seed: repeated fits on
// identical input produce identical parameters, which the pipeline's
// golden tests rely on.
package ml
