package ml

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// BoostedTrees is the boosted sub-model: SAMME-style multiclass boosting over
// shallow CART trees. Each round reweights toward the examples the previous
// rounds got wrong; the prediction is the alpha-weighted vote share per class.
type BoostedTrees struct {
	Trees   []*Tree   `json:"trees"`
	Alphas  []float64 `json:"alphas"`
	Classes int       `json:"classes"`
}

// BoostConfig controls boosted-ensemble training.
type BoostConfig struct {
	Rounds   int
	MaxDepth int
	MinLeaf  int
	Seed     int64
}

// TrainBoosted fits the boosted ensemble. Weighted fitting is done by
// resampling proportionally to the boosting weights, so the tree learner
// itself stays weight-free. Deterministic for a fixed seed.
func TrainBoosted(X [][]float64, y []int, classes int, cfg BoostConfig) *BoostedTrees {
	rng := rand.New(rand.NewSource(cfg.Seed))
	n := len(X)
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1 / float64(n)
	}

	b := &BoostedTrees{Classes: classes}
	// A round must beat random guessing over K classes to earn a vote.
	maxErr := 1 - 1/float64(classes)

	for round := 0; round < cfg.Rounds; round++ {
		idx := weightedSample(weights, rng)
		tree := growTree(X, y, idx, classes, treeConfig{
			maxDepth: cfg.MaxDepth,
			minLeaf:  cfg.MinLeaf,
		}, rng)

		var err float64
		misses := make([]bool, n)
		for i := range X {
			if tree.PredictClass(X[i]) != y[i] {
				misses[i] = true
				err += weights[i]
			}
		}

		if err >= maxErr {
			break
		}
		if err <= 1e-10 {
			// Perfect round; it dominates the vote and further rounds add nothing.
			b.Trees = append(b.Trees, tree)
			b.Alphas = append(b.Alphas, math.Log(float64(n))+math.Log(float64(classes-1)))
			break
		}

		alpha := math.Log((1-err)/err) + math.Log(float64(classes-1))
		b.Trees = append(b.Trees, tree)
		b.Alphas = append(b.Alphas, alpha)

		for i := range weights {
			if misses[i] {
				weights[i] *= math.Exp(alpha)
			}
		}
		floats.Scale(1/floats.Sum(weights), weights)
	}

	if len(b.Trees) == 0 {
		// Degenerate data; keep a single unweighted tree so the sub-model
		// still emits a usable distribution.
		tree := growTree(X, y, allIndexes(n), classes, treeConfig{
			maxDepth: cfg.MaxDepth,
			minLeaf:  cfg.MinLeaf,
		}, rng)
		b.Trees = append(b.Trees, tree)
		b.Alphas = append(b.Alphas, 1)
	}
	return b
}

func weightedSample(weights []float64, rng *rand.Rand) []int {
	cum := make([]float64, len(weights))
	floats.CumSum(cum, weights)
	total := cum[len(cum)-1]

	idx := make([]int, len(weights))
	for i := range idx {
		idx[i] = sort.SearchFloat64s(cum, rng.Float64()*total)
		if idx[i] >= len(weights) {
			idx[i] = len(weights) - 1
		}
	}
	return idx
}

func allIndexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// Name implements SubModel.
func (b *BoostedTrees) Name() string { return "boosted_trees" }

// PredictProba normalizes the alpha-weighted votes into a distribution.
func (b *BoostedTrees) PredictProba(x []float64) []float64 {
	scores := make([]float64, b.Classes)
	for i, t := range b.Trees {
		scores[t.PredictClass(x)] += b.Alphas[i]
	}
	total := floats.Sum(scores)
	if total <= 0 {
		for i := range scores {
			scores[i] = 1 / float64(b.Classes)
		}
		return scores
	}
	floats.Scale(1/total, scores)
	return scores
}
