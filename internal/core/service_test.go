package core_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inboxkit/email-classifier/internal/adapters/cache"
	"github.com/inboxkit/email-classifier/internal/adapters/feedback"
	"github.com/inboxkit/email-classifier/internal/core"
	"github.com/inboxkit/email-classifier/internal/features"
	"github.com/inboxkit/email-classifier/internal/ml"
	"github.com/inboxkit/email-classifier/internal/training"
)

// stubStore serves a fixed model without touching disk.
type stubStore struct {
	mu    sync.Mutex
	model *ml.EnsembleModel
}

func (s *stubStore) Current(ctx context.Context) (*ml.EnsembleModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model, nil
}

func (s *stubStore) Publish(m *ml.EnsembleModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = m
	return nil
}

// stubRetrainer reports a canned outcome.
type stubRetrainer struct {
	outcome *core.RetrainOutcome
	ready   bool
}

func (r *stubRetrainer) Retrain(ctx context.Context, trigger core.RetrainTrigger) (*core.RetrainOutcome, error) {
	return r.outcome, nil
}

func (r *stubRetrainer) Ready(ctx context.Context) (bool, error) {
	return r.ready, nil
}

var (
	testModelOnce sync.Once
	testModel     *ml.EnsembleModel
)

func trainedModel(t *testing.T) *ml.EnsembleModel {
	t.Helper()
	testModelOnce.Do(func() {
		settings := training.DefaultSettings()
		settings.Vocab = features.VocabOptions{
			MaxFeatures: 500,
			MinDocFreq:  1,
			MaxDocRatio: 0.9,
			NGramMax:    1,
		}
		settings.Train = ml.TrainConfig{
			ForestTrees:   5,
			ForestDepth:   8,
			ForestMinLeaf: 1,
			BoostRounds:   5,
			BoostDepth:    3,
			LinearEpochs:  10,
			LinearRate:    0.5,
			LinearL2:      1e-4,
			Seed:          42,
		}
		m, err := training.FitModel(training.BaselineCorpus(), settings)
		if err != nil {
			panic(err)
		}
		testModel = m
	})
	return testModel
}

func newTestService(t *testing.T, cacheEnabled bool) (*core.ClassifierService, *feedback.MemoryStore, *stubRetrainer) {
	t.Helper()
	repo := feedback.NewMemoryStore(zap.NewNop())
	retrainer := &stubRetrainer{ready: false}
	svc := core.NewClassifierService(
		&stubStore{model: trainedModel(t)},
		cache.NewFIFOCache(100, zap.NewNop()),
		repo,
		retrainer,
		core.NewOverrideStage(true),
		zap.NewNop(),
		cacheEnabled,
	)
	return svc, repo, retrainer
}

func TestClassifyReturnsDistribution(t *testing.T) {
	svc, _, _ := newTestService(t, true)

	result, err := svc.Classify(context.Background(), "Team standup", "Notes from today's standup are attached.")
	require.NoError(t, err)

	assert.Len(t, result.Probabilities, len(core.Categories()))
	var sum float64
	for _, p := range result.Probabilities {
		assert.GreaterOrEqual(t, p, 0.0)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
	assert.Equal(t, result.Probabilities[result.Category], result.Confidence)
	assert.NotEmpty(t, result.ModelVersion)
	assert.False(t, result.FromCache)
}

func TestClassifyEmptyEmail(t *testing.T) {
	svc, _, _ := newTestService(t, true)

	result, err := svc.Classify(context.Background(), "", "")
	require.NoError(t, err)

	// Even with no signal the result is a well-formed distribution
	var sum float64
	for _, p := range result.Probabilities {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestClassifySpamScenario(t *testing.T) {
	svc, _, _ := newTestService(t, true)

	result, err := svc.Classify(context.Background(),
		"WINNER! You've won $1,000,000!",
		"Congratulations! Click here immediately to claim your prize. Act now! This limited time offer expires soon!!!")
	require.NoError(t, err)

	assert.Equal(t, core.CategorySpam, result.Category)
	assert.Greater(t, result.Confidence, 0.7)
}

func TestClassifyWorkScenario(t *testing.T) {
	svc, _, _ := newTestService(t, true)

	result, err := svc.Classify(context.Background(),
		"Q4 report draft",
		"Attached is the draft of the Q4 report for the team meeting. Please review the status of your project sections.")
	require.NoError(t, err)

	assert.Contains(t, []core.Category{core.CategoryWork, core.CategoryImportant}, result.Category)
}

func TestClassifyIdenticalContentHitsCache(t *testing.T) {
	svc, _, _ := newTestService(t, true)
	ctx := context.Background()

	subject := "Invoice INV-2024-001"
	body := "Attached is the invoice for $5,000 with Net 30 payment terms."

	first, err := svc.Classify(ctx, subject, body)
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := svc.Classify(ctx, subject, body)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Category, second.Category)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.Probabilities, second.Probabilities)
	assert.Equal(t, first.ModelVersion, second.ModelVersion)
}

func TestClassifyCacheDisabled(t *testing.T) {
	svc, _, _ := newTestService(t, false)
	ctx := context.Background()

	first, err := svc.Classify(ctx, "Hello", "Quick question about the schedule")
	require.NoError(t, err)
	second, err := svc.Classify(ctx, "Hello", "Quick question about the schedule")
	require.NoError(t, err)

	assert.False(t, first.FromCache)
	assert.False(t, second.FromCache)
	// Determinism holds with or without the cache
	assert.Equal(t, first.Category, second.Category)
	assert.Equal(t, first.Probabilities, second.Probabilities)
}

func TestSubmitFeedbackValidation(t *testing.T) {
	svc, repo, _ := newTestService(t, true)
	ctx := context.Background()

	assert.Error(t, svc.SubmitFeedback(ctx, "", "spam", 0.5))
	assert.Error(t, svc.SubmitFeedback(ctx, "   ", "spam", 0.5))
	assert.Error(t, svc.SubmitFeedback(ctx, "some text", "not-a-category", 0.5))

	require.NoError(t, svc.SubmitFeedback(ctx, "this was actually important", "important", 0.3))

	count, err := repo.CountUnconsumed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRetrainDelegates(t *testing.T) {
	svc, _, retrainer := newTestService(t, true)
	retrainer.outcome = &core.RetrainOutcome{Accepted: true, NewVersion: "v-next"}

	outcome, err := svc.Retrain(context.Background(), core.TriggerManual)
	require.NoError(t, err)
	assert.True(t, outcome.Accepted)
	assert.Equal(t, "v-next", outcome.NewVersion)
}

func TestStats(t *testing.T) {
	svc, repo, retrainer := newTestService(t, true)
	ctx := context.Background()
	retrainer.ready = true

	require.NoError(t, repo.Append(ctx, &core.FeedbackRecord{
		Text:           "text",
		CorrectedLabel: core.CategorySpam,
	}))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, trainedModel(t).Version, stats.ModelVersion)
	assert.Equal(t, 1, stats.UnconsumedFeedback)
	assert.True(t, stats.ReadyForRetraining)
}
