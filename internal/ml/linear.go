package ml

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// LogisticRegression is the regularized linear sub-model: multinomial
// softmax regression fit by seeded mini-batch gradient descent with L2
// shrinkage.
type LogisticRegression struct {
	Weights [][]float64 `json:"weights"` // classes x features
	Bias    []float64   `json:"bias"`
	Classes int         `json:"classes"`
}

// LinearConfig controls linear sub-model training.
type LinearConfig struct {
	Epochs    int
	Rate      float64
	L2        float64
	BatchSize int
	Seed      int64
}

// TrainLinear fits the multinomial model. The sample order is shuffled with
// the configured seed each epoch, so training is deterministic.
func TrainLinear(X [][]float64, y []int, classes int, cfg LinearConfig) *LogisticRegression {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 32
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	dims := len(X[0])

	m := &LogisticRegression{
		Weights: make([][]float64, classes),
		Bias:    make([]float64, classes),
		Classes: classes,
	}
	for k := range m.Weights {
		m.Weights[k] = make([]float64, dims)
	}

	order := make([]int, len(X))
	for i := range order {
		order[i] = i
	}

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		for start := 0; start < len(order); start += cfg.BatchSize {
			end := start + cfg.BatchSize
			if end > len(order) {
				end = len(order)
			}
			batch := order[start:end]
			scale := cfg.Rate / float64(len(batch))

			for _, i := range batch {
				probs := m.PredictProba(X[i])
				for k := 0; k < classes; k++ {
					grad := probs[k]
					if k == y[i] {
						grad -= 1
					}
					if grad == 0 {
						continue
					}
					floats.AddScaled(m.Weights[k], -scale*grad, X[i])
					m.Bias[k] -= scale * grad
				}
			}

			if cfg.L2 > 0 {
				shrink := 1 - cfg.Rate*cfg.L2
				for k := range m.Weights {
					floats.Scale(shrink, m.Weights[k])
				}
			}
		}
	}
	return m
}

// Name implements SubModel.
func (m *LogisticRegression) Name() string { return "logistic_regression" }

// PredictProba computes the softmax distribution, shifting by the max score
// for numeric stability.
func (m *LogisticRegression) PredictProba(x []float64) []float64 {
	scores := make([]float64, m.Classes)
	for k := range scores {
		scores[k] = floats.Dot(m.Weights[k], x) + m.Bias[k]
	}
	max := floats.Max(scores)
	var sum float64
	for k := range scores {
		scores[k] = math.Exp(scores[k] - max)
		sum += scores[k]
	}
	floats.Scale(1/sum, scores)
	return scores
}
