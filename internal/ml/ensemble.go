package ml

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/inboxkit/email-classifier/internal/features"
)

// tieEpsilon bounds how close two averaged probabilities must be before the
// deterministic lexicographic tie-break applies.
const tieEpsilon = 1e-9

// SubModel is the capability every voter must provide: a full probability
// distribution over the class indexes, never a bare label. The ensemble
// depends only on this interface, so voters can be swapped or added without
// touching the voting logic.
type SubModel interface {
	Name() string
	PredictProba(x []float64) []float64
}

// EnsembleModel is one versioned, swappable classification unit: the lexical
// vocabulary, the three sub-models trained against it, and the category list
// they index into. Immutable once published.
type EnsembleModel struct {
	Version            string               `json:"version"`
	TrainedAt          time.Time            `json:"trained_at"`
	ValidationAccuracy float64              `json:"validation_accuracy"`
	Categories         []string             `json:"categories"`
	Vocab              *features.Vocabulary `json:"vocabulary"`
	Forest             *Forest              `json:"forest"`
	Boosted            *BoostedTrees        `json:"boosted"`
	Linear             *LogisticRegression  `json:"linear"`
}

// SubModels returns the voters in their fixed order.
func (m *EnsembleModel) SubModels() []SubModel {
	return []SubModel{m.Forest, m.Boosted, m.Linear}
}

// Predict runs the soft vote over the combined feature vector. The second
// return value names any sub-model excluded for emitting non-finite output;
// callers log the degradation instead of failing the request.
func (m *EnsembleModel) Predict(vec *features.Vector) ([]float64, []string) {
	return Vote(m.SubModels(), vec.Dense(m.Vocab.Size()), len(m.Categories))
}

// Vote soft-votes a set of sub-models: the element-wise mean of their
// distributions. A sub-model whose output contains NaN or Inf is excluded
// from the average for this call; if every sub-model degenerates the vote
// falls back to the uniform distribution.
func Vote(subs []SubModel, x []float64, classes int) ([]float64, []string) {
	avg := make([]float64, classes)
	var excluded []string
	valid := 0

	for _, sub := range subs {
		probs := sub.PredictProba(x)
		if !finite(probs) {
			excluded = append(excluded, sub.Name())
			continue
		}
		floats.Add(avg, probs)
		valid++
	}

	if valid == 0 {
		for i := range avg {
			avg[i] = 1 / float64(classes)
		}
		return avg, excluded
	}
	floats.Scale(1/float64(valid), avg)
	return avg, excluded
}

// ArgMax returns the index of the largest probability. Within tieEpsilon the
// smaller index wins; class indexes follow the lexicographically sorted
// category list, so ties deterministically prefer the smaller label.
func ArgMax(probs []float64) int {
	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best]+tieEpsilon {
			best = i
		}
	}
	return best
}

func finite(probs []float64) bool {
	for _, p := range probs {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return false
		}
	}
	return true
}

// TrainConfig bundles the hyperparameters of all three sub-models.
type TrainConfig struct {
	ForestTrees   int
	ForestDepth   int
	ForestMinLeaf int
	BoostRounds   int
	BoostDepth    int
	LinearEpochs  int
	LinearRate    float64
	LinearL2      float64
	Seed          int64
}

// DefaultTrainConfig mirrors the tuned production hyperparameters.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		ForestTrees:   50,
		ForestDepth:   12,
		ForestMinLeaf: 1,
		BoostRounds:   40,
		BoostDepth:    3,
		LinearEpochs:  60,
		LinearRate:    0.5,
		LinearL2:      1e-4,
		Seed:          42,
	}
}

// TrainSubModels fits the three voters on the same design matrix. Each
// sub-model derives its own seed so they are independently parameterized but
// jointly deterministic.
func TrainSubModels(X [][]float64, y []int, classes int, cfg TrainConfig) (*Forest, *BoostedTrees, *LogisticRegression) {
	forest := TrainForest(X, y, classes, ForestConfig{
		Trees:    cfg.ForestTrees,
		MaxDepth: cfg.ForestDepth,
		MinLeaf:  cfg.ForestMinLeaf,
		Seed:     cfg.Seed,
	})
	boosted := TrainBoosted(X, y, classes, BoostConfig{
		Rounds:   cfg.BoostRounds,
		MaxDepth: cfg.BoostDepth,
		MinLeaf:  1,
		Seed:     cfg.Seed + 1,
	})
	linear := TrainLinear(X, y, classes, LinearConfig{
		Epochs: cfg.LinearEpochs,
		Rate:   cfg.LinearRate,
		L2:     cfg.LinearL2,
		Seed:   cfg.Seed + 2,
	})
	return forest, boosted, linear
}
