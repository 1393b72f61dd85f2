package ml

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Forest is the bagged-tree sub-model: trees trained on bootstrap resamples
// with sqrt-feature subsampling, voting by averaging leaf distributions.
type Forest struct {
	Trees   []*Tree `json:"trees"`
	Classes int     `json:"classes"`
}

// ForestConfig controls bagged-forest training.
type ForestConfig struct {
	Trees    int
	MaxDepth int
	MinLeaf  int
	Seed     int64
}

// TrainForest fits the bagged ensemble. Deterministic for a fixed seed.
func TrainForest(X [][]float64, y []int, classes int, cfg ForestConfig) *Forest {
	rng := rand.New(rand.NewSource(cfg.Seed))
	maxFeatures := int(math.Sqrt(float64(len(X[0]))))
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	f := &Forest{Classes: classes, Trees: make([]*Tree, cfg.Trees)}
	for t := 0; t < cfg.Trees; t++ {
		idx := bootstrapSample(len(X), rng)
		f.Trees[t] = growTree(X, y, idx, classes, treeConfig{
			maxDepth:    cfg.MaxDepth,
			minLeaf:     cfg.MinLeaf,
			maxFeatures: maxFeatures,
		}, rng)
	}
	return f
}

func bootstrapSample(n int, rng *rand.Rand) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rng.Intn(n)
	}
	return idx
}

// Name implements SubModel.
func (f *Forest) Name() string { return "bagged_forest" }

// PredictProba averages the member trees' leaf distributions.
func (f *Forest) PredictProba(x []float64) []float64 {
	probs := make([]float64, f.Classes)
	for _, t := range f.Trees {
		floats.Add(probs, t.PredictProba(x))
	}
	floats.Scale(1/float64(len(f.Trees)), probs)
	return probs
}
