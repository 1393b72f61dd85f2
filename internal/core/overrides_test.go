package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inboxkit/email-classifier/internal/textproc"
)

func uniformProbs() []float64 {
	labels := CategoryLabels()
	probs := make([]float64, len(labels))
	for i := range probs {
		probs[i] = 1 / float64(len(probs))
	}
	return probs
}

func labelIndex(t *testing.T, label Category) int {
	t.Helper()
	for i, l := range CategoryLabels() {
		if l == string(label) {
			return i
		}
	}
	t.Fatalf("label %s not found", label)
	return -1
}

func TestOverridesDisabledIsNoOp(t *testing.T) {
	stage := NewOverrideStage(false)
	probs := uniformProbs()
	before := append([]float64(nil), probs...)

	stage.Apply("winner prize claim your lottery", probs, CategoryLabels())
	assert.Equal(t, before, probs)
}

func TestOverridesNoMatchIsNoOp(t *testing.T) {
	stage := NewOverrideStage(true)
	probs := uniformProbs()
	before := append([]float64(nil), probs...)

	stage.Apply("completely unrelated content about gardening", probs, CategoryLabels())
	assert.Equal(t, before, probs)
}

func TestOverridesBoostMatchedCategory(t *testing.T) {
	stage := NewOverrideStage(true)
	probs := uniformProbs()
	uniform := probs[0]

	stage.Apply("winner claim your prize in the lottery act now", probs, CategoryLabels())

	spam := labelIndex(t, CategorySpam)
	assert.Greater(t, probs[spam], uniform)

	// Unmatched categories are penalized
	personal := labelIndex(t, CategoryPersonal)
	assert.Less(t, probs[personal], uniform)
}

func TestOverridesKeepDistribution(t *testing.T) {
	stage := NewOverrideStage(true)
	probs := uniformProbs()

	stage.Apply("invoice with net 30 payment terms and a wire transfer", probs, CategoryLabels())

	var sum float64
	for _, p := range probs {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestOverridesCanFlipANarrowVote(t *testing.T) {
	stage := NewOverrideStage(true)
	labels := CategoryLabels()
	probs := make([]float64, len(labels))
	spam := labelIndex(t, CategorySpam)
	updates := labelIndex(t, CategoryUpdates)
	probs[updates] = 0.35
	probs[spam] = 0.30
	rest := (1.0 - 0.65) / float64(len(labels)-2)
	for i := range probs {
		if i != spam && i != updates {
			probs[i] = rest
		}
	}

	stage.Apply("winner claim your prize lottery act now limited time", probs, labels)

	best := 0
	for i := range probs {
		if probs[i] > probs[best] {
			best = i
		}
	}
	assert.Equal(t, spam, best)
}

func TestOverridesMatchNormalizedSupportPhrases(t *testing.T) {
	stage := NewOverrideStage(true)
	probs := uniformProbs()
	uniform := probs[0]

	// Normalization strips apostrophes, so the phrase table must hold the
	// post-normalization form ("can t log", not "can't log").
	n := textproc.Normalize("Help", "I can't log into my account and need a reset")
	stage.Apply(n.Text, probs, CategoryLabels())

	support := labelIndex(t, CategorySupport)
	assert.Greater(t, probs[support], uniform)
}

func TestOverridesEmptyText(t *testing.T) {
	stage := NewOverrideStage(true)
	probs := uniformProbs()
	before := append([]float64(nil), probs...)
	stage.Apply("", probs, CategoryLabels())
	assert.Equal(t, before, probs)
}
