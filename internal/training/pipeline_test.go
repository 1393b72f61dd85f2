package training

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inboxkit/email-classifier/internal/adapters/feedback"
	"github.com/inboxkit/email-classifier/internal/core"
	"github.com/inboxkit/email-classifier/internal/features"
	"github.com/inboxkit/email-classifier/internal/ml"
	"github.com/inboxkit/email-classifier/internal/modelstore"
	"github.com/inboxkit/email-classifier/internal/textproc"
)

// fastSettings keeps training quick while preserving the pipeline semantics.
func fastSettings() Settings {
	return Settings{
		MinFeedback: 10,
		Tolerance:   0.05,
		SplitSeed:   42,
		Vocab: features.VocabOptions{
			MaxFeatures: 500,
			MinDocFreq:  1,
			MaxDocRatio: 0.9,
			NGramMax:    1,
		},
		Train: ml.TrainConfig{
			ForestTrees:   5,
			ForestDepth:   8,
			ForestMinLeaf: 1,
			BoostRounds:   5,
			BoostDepth:    3,
			LinearEpochs:  10,
			LinearRate:    0.5,
			LinearL2:      1e-4,
			Seed:          42,
		},
	}
}

func newTestStore(t *testing.T, accuracy float64) *modelstore.Store {
	t.Helper()
	loader := func(ctx context.Context) (*ml.EnsembleModel, error) {
		m, err := FitModel(BaselineCorpus(), fastSettings())
		if err != nil {
			return nil, err
		}
		m.ValidationAccuracy = accuracy
		return m, nil
	}
	return modelstore.NewStore(filepath.Join(t.TempDir(), "model.json"), loader, zap.NewNop())
}

func TestFitModelOnBaselineCorpus(t *testing.T) {
	m, err := FitModel(BaselineCorpus(), fastSettings())
	require.NoError(t, err)

	assert.NotEmpty(t, m.Version)
	assert.Equal(t, core.CategoryLabels(), m.Categories)
	assert.Positive(t, m.Vocab.Size())
	assert.Greater(t, m.ValidationAccuracy, 0.5)

	// The model classifies an obvious spam sample as spam
	n := textproc.Normalize("WINNER!", "Congratulations! Claim your $1,000,000 prize now! Click here!!!")
	probs, excluded := m.Predict(features.Extract(n, m.Vocab))
	assert.Empty(t, excluded)
	assert.Equal(t, string(core.CategorySpam), m.Categories[ml.ArgMax(probs)])
}

func TestFitModelDeterministicPredictions(t *testing.T) {
	first, err := FitModel(BaselineCorpus(), fastSettings())
	require.NoError(t, err)
	second, err := FitModel(BaselineCorpus(), fastSettings())
	require.NoError(t, err)

	n := textproc.Normalize("Invoice", "Payment of $5,000 is due under Net 30 terms")
	p1, _ := first.Predict(features.Extract(n, first.Vocab))
	p2, _ := second.Predict(features.Extract(n, second.Vocab))
	assert.Equal(t, p1, p2)
}

func TestFitModelRejectsUnknownLabel(t *testing.T) {
	_, err := FitModel([]core.TrainingExample{
		{Text: "some text", Label: "not-a-category"},
	}, fastSettings())
	assert.Error(t, err)
}

func TestFitModelRejectsEmptyCorpus(t *testing.T) {
	_, err := FitModel(nil, fastSettings())
	assert.Error(t, err)
}

func TestRetrainInsufficientFeedback(t *testing.T) {
	ctx := context.Background()
	repo := feedback.NewMemoryStore(zap.NewNop())
	store := newTestStore(t, 0.9)
	p := NewPipeline(fastSettings(), store, repo, zap.NewNop())

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Append(ctx, &core.FeedbackRecord{
			Text:           "misfiled message",
			CorrectedLabel: core.CategoryImportant,
		}))
	}

	outcome, err := p.Retrain(ctx, core.TriggerManual)
	require.NoError(t, err)
	assert.False(t, outcome.Accepted)
	assert.Contains(t, outcome.Reason, "insufficient feedback")

	// Backlog is untouched
	count, err := repo.CountUnconsumed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	ready, err := p.Ready(ctx)
	require.NoError(t, err)
	assert.False(t, ready)
}

func seedFeedback(t *testing.T, repo core.FeedbackRepository, n int) {
	t.Helper()
	ctx := context.Background()
	texts := []string{
		"Server alert: production database is down, all hands needed",
		"Critical escalation: the client deliverable deadline moved to tomorrow",
		"Compliance audit documentation must be ready by Monday",
	}
	for i := 0; i < n; i++ {
		require.NoError(t, repo.Append(ctx, &core.FeedbackRecord{
			Text:           texts[i%len(texts)],
			CorrectedLabel: core.CategoryImportant,
		}))
	}
}

func TestRetrainRejectsValidationRegression(t *testing.T) {
	ctx := context.Background()
	repo := feedback.NewMemoryStore(zap.NewNop())

	// A live model whose recorded accuracy no candidate can approach forces
	// the regression path deterministically.
	store := newTestStore(t, 1.1)
	p := NewPipeline(fastSettings(), store, repo, zap.NewNop())

	seedFeedback(t, repo, 12)

	outcome, err := p.Retrain(ctx, core.TriggerThreshold)
	require.NoError(t, err)
	assert.False(t, outcome.Accepted)
	assert.Contains(t, outcome.Reason, "regressed")
	assert.Equal(t, 12, outcome.FeedbackUsed)

	// Rejected runs keep the backlog for the next attempt
	count, err := repo.CountUnconsumed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, count)

	// The live model is unchanged
	current, err := store.Current(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, outcome.NewVersion, current.Version)
}

func TestRetrainPublishesAndConsumesFeedback(t *testing.T) {
	ctx := context.Background()
	repo := feedback.NewMemoryStore(zap.NewNop())
	store := newTestStore(t, 0.0)
	p := NewPipeline(fastSettings(), store, repo, zap.NewNop())

	before, err := store.Current(ctx)
	require.NoError(t, err)

	seedFeedback(t, repo, 15)

	outcome, err := p.Retrain(ctx, core.TriggerManual)
	require.NoError(t, err)
	assert.True(t, outcome.Accepted)
	assert.Equal(t, 15, outcome.FeedbackUsed)
	assert.Equal(t, len(BaselineCorpus())+15, outcome.SamplesUsed)
	assert.NotEmpty(t, outcome.NewVersion)
	assert.NotEqual(t, before.Version, outcome.NewVersion)

	// Feedback folded into the run is consumed
	count, err := repo.CountUnconsumed(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	// The new model is live
	current, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, outcome.NewVersion, current.Version)
}

func TestRetrainShiftsMassTowardCorrectedLabel(t *testing.T) {
	ctx := context.Background()
	repo := feedback.NewMemoryStore(zap.NewNop())
	store := newTestStore(t, 0.0)
	p := NewPipeline(fastSettings(), store, repo, zap.NewNop())

	// A held-out message similar to the corrections, not identical to any
	n := textproc.Normalize("Escalation",
		"Critical escalation: the production deadline moved and all hands are needed")
	labels := core.CategoryLabels()
	important := -1
	for i, l := range labels {
		if l == string(core.CategoryImportant) {
			important = i
		}
	}
	require.NotEqual(t, -1, important)

	before, err := store.Current(ctx)
	require.NoError(t, err)
	beforeProbs, _ := before.Predict(features.Extract(n, before.Vocab))

	seedFeedback(t, repo, 15)

	outcome, err := p.Retrain(ctx, core.TriggerManual)
	require.NoError(t, err)
	require.True(t, outcome.Accepted)

	after, err := store.Current(ctx)
	require.NoError(t, err)
	afterProbs, _ := after.Predict(features.Extract(n, after.Vocab))

	assert.Greater(t, afterProbs[important], beforeProbs[important])
}

// publishFailStore serves a live model but cannot persist a new one.
type publishFailStore struct {
	model *ml.EnsembleModel
}

func (s *publishFailStore) Current(ctx context.Context) (*ml.EnsembleModel, error) {
	return s.model, nil
}

func (s *publishFailStore) Publish(m *ml.EnsembleModel) error {
	return errors.New("disk full")
}

func TestRetrainKeepsFeedbackWhenPublishFails(t *testing.T) {
	ctx := context.Background()
	repo := feedback.NewMemoryStore(zap.NewNop())
	live, err := FitModel(BaselineCorpus(), fastSettings())
	require.NoError(t, err)
	live.ValidationAccuracy = 0.0
	p := NewPipeline(fastSettings(), &publishFailStore{model: live}, repo, zap.NewNop())

	seedFeedback(t, repo, 12)

	_, err = p.Retrain(ctx, core.TriggerManual)
	require.Error(t, err)

	// Nothing was consumed; the backlog survives for the next run
	count, err := repo.CountUnconsumed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, count)
}

func TestReadyAtThreshold(t *testing.T) {
	ctx := context.Background()
	repo := feedback.NewMemoryStore(zap.NewNop())
	store := newTestStore(t, 0.9)
	p := NewPipeline(fastSettings(), store, repo, zap.NewNop())

	seedFeedback(t, repo, 10)

	ready, err := p.Ready(ctx)
	require.NoError(t, err)
	assert.True(t, ready)
}

func TestBaselineCorpusCoversEveryCategory(t *testing.T) {
	seen := make(map[core.Category]int)
	for _, ex := range BaselineCorpus() {
		seen[ex.Label]++
	}
	for _, c := range core.Categories() {
		assert.GreaterOrEqual(t, seen[c], 10, "category %s underrepresented", c)
	}
}
