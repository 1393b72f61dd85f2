package ml

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct {
	name  string
	probs []float64
}

func (s *stubModel) Name() string { return s.name }

func (s *stubModel) PredictProba(x []float64) []float64 { return s.probs }

func TestVoteAveragesSubModels(t *testing.T) {
	subs := []SubModel{
		&stubModel{name: "a", probs: []float64{0.8, 0.2}},
		&stubModel{name: "b", probs: []float64{0.4, 0.6}},
	}
	probs, excluded := Vote(subs, nil, 2)
	assert.Empty(t, excluded)
	assert.InDelta(t, 0.6, probs[0], 1e-9)
	assert.InDelta(t, 0.4, probs[1], 1e-9)
}

func TestVoteExcludesNonFiniteSubModel(t *testing.T) {
	subs := []SubModel{
		&stubModel{name: "healthy", probs: []float64{0.7, 0.3}},
		&stubModel{name: "nan", probs: []float64{math.NaN(), 0.5}},
		&stubModel{name: "inf", probs: []float64{math.Inf(1), 0.0}},
	}
	probs, excluded := Vote(subs, nil, 2)
	assert.Equal(t, []string{"nan", "inf"}, excluded)
	assert.InDelta(t, 0.7, probs[0], 1e-9)
	assert.InDelta(t, 0.3, probs[1], 1e-9)
}

func TestVoteAllExcludedFallsBackToUniform(t *testing.T) {
	subs := []SubModel{
		&stubModel{name: "nan", probs: []float64{math.NaN(), 0.5, 0.5}},
	}
	probs, excluded := Vote(subs, nil, 3)
	assert.Equal(t, []string{"nan"}, excluded)
	for _, p := range probs {
		assert.InDelta(t, 1.0/3, p, 1e-9)
	}
}

func TestArgMax(t *testing.T) {
	tests := []struct {
		name  string
		probs []float64
		want  int
	}{
		{"clear winner", []float64{0.1, 0.7, 0.2}, 1},
		{"first element", []float64{0.9, 0.05, 0.05}, 0},
		{"exact tie keeps smaller index", []float64{0.4, 0.4, 0.2}, 0},
		{"tie within epsilon keeps smaller index", []float64{0.4, 0.4 + 1e-12, 0.2}, 0},
		{"difference above epsilon wins", []float64{0.4, 0.4 + 1e-6, 0.2}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ArgMax(tt.probs))
		})
	}
}

// separableData builds a small three-class problem where each class lives in
// its own region of a 4-dim space.
func separableData() ([][]float64, []int) {
	var X [][]float64
	var y []int
	for i := 0; i < 12; i++ {
		shift := float64(i%3) * 0.01
		X = append(X, []float64{1 + shift, 0, 0, shift})
		y = append(y, 0)
		X = append(X, []float64{0, 1 + shift, 0, shift})
		y = append(y, 1)
		X = append(X, []float64{0, 0, 1 + shift, shift})
		y = append(y, 2)
	}
	return X, y
}

func smallTrainConfig() TrainConfig {
	return TrainConfig{
		ForestTrees:   10,
		ForestDepth:   6,
		ForestMinLeaf: 1,
		BoostRounds:   10,
		BoostDepth:    3,
		LinearEpochs:  30,
		LinearRate:    0.5,
		LinearL2:      1e-4,
		Seed:          42,
	}
}

func TestSubModelsLearnSeparableData(t *testing.T) {
	X, y := separableData()
	forest, boosted, linear := TrainSubModels(X, y, 3, smallTrainConfig())

	for _, sub := range []SubModel{forest, boosted, linear} {
		for i := range X {
			probs := sub.PredictProba(X[i])
			assert.Equal(t, y[i], ArgMax(probs),
				"%s misclassified sample %d", sub.Name(), i)
		}
	}
}

func TestSubModelOutputsAreDistributions(t *testing.T) {
	X, y := separableData()
	forest, boosted, linear := TrainSubModels(X, y, 3, smallTrainConfig())

	for _, sub := range []SubModel{forest, boosted, linear} {
		probs := sub.PredictProba([]float64{0.3, 0.3, 0.3, 0.1})
		var sum float64
		for _, p := range probs {
			assert.GreaterOrEqual(t, p, 0.0)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-6, sub.Name())
	}
}

func TestTrainingDeterministicForFixedSeed(t *testing.T) {
	X, y := separableData()
	cfg := smallTrainConfig()

	f1, b1, l1 := TrainSubModels(X, y, 3, cfg)
	f2, b2, l2 := TrainSubModels(X, y, 3, cfg)

	probe := []float64{0.5, 0.4, 0.1, 0.0}
	assert.Equal(t, f1.PredictProba(probe), f2.PredictProba(probe))
	assert.Equal(t, b1.PredictProba(probe), b2.PredictProba(probe))
	assert.Equal(t, l1.PredictProba(probe), l2.PredictProba(probe))
	require.Equal(t, len(b1.Trees), len(b2.Trees))
	assert.Equal(t, b1.Alphas, b2.Alphas)
}
