// Package lightgbm reads LightGBM text models (the output of
// Booster.save_model) and evaluates them on single feature rows.
//
// Supported: regression-style single-output boosters with numerical
// splits (including missing-value handling), categorical bitset splits,
// single-leaf trees, average_output (random forest mode) and the
// exp/sigmoid output transforms of the poisson, gamma, tweedie and
// binary objectives. Multiclass and linear-tree models are rejected.
package lightgbm
