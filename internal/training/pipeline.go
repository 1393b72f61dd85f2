// Package training fits ensemble models from labeled text and folds human
// feedback into retraining runs.
package training

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inboxkit/email-classifier/internal/core"
	"github.com/inboxkit/email-classifier/internal/features"
	"github.com/inboxkit/email-classifier/internal/ml"
	"github.com/inboxkit/email-classifier/internal/modelstore"
	"github.com/inboxkit/email-classifier/internal/textproc"
)

// Settings bundles the training and retraining knobs.
type Settings struct {
	// MinFeedback is the smallest backlog a retraining run will accept.
	MinFeedback int
	// Tolerance is how far below the live model's validation accuracy a
	// candidate may land and still be published.
	Tolerance float64
	// SplitSeed drives the stratified train/validation split.
	SplitSeed int64

	Vocab features.VocabOptions
	Train ml.TrainConfig
}

// DefaultSettings mirrors the production retraining policy.
func DefaultSettings() Settings {
	return Settings{
		MinFeedback: 10,
		Tolerance:   0.05,
		SplitSeed:   42,
		Vocab:       features.DefaultVocabOptions(),
		Train:       ml.DefaultTrainConfig(),
	}
}

// FitModel trains a complete ensemble from labeled examples: normalize,
// stratified 80/20 split, vocabulary from the training split only, then the
// three sub-models on the combined feature matrix. Deterministic for a fixed
// settings value and example order.
func FitModel(examples []core.TrainingExample, s Settings) (*ml.EnsembleModel, error) {
	if len(examples) == 0 {
		return nil, fmt.Errorf("no training examples")
	}

	labels := core.CategoryLabels()
	labelIndex := make(map[string]int, len(labels))
	for i, l := range labels {
		labelIndex[l] = i
	}

	type sample struct {
		norm  *textproc.NormalizedEmail
		class int
	}
	samples := make([]sample, 0, len(examples))
	for _, ex := range examples {
		class, ok := labelIndex[string(ex.Label)]
		if !ok {
			return nil, fmt.Errorf("unknown training label %q", ex.Label)
		}
		samples = append(samples, sample{norm: textproc.NormalizeText(ex.Text), class: class})
	}

	// Stratified split: shuffle within each class so every category is
	// represented in both halves whenever it has enough examples.
	byClass := make(map[int][]int)
	for i, sm := range samples {
		byClass[sm.class] = append(byClass[sm.class], i)
	}
	classes := make([]int, 0, len(byClass))
	for class := range byClass {
		classes = append(classes, class)
	}
	sort.Ints(classes)

	rng := rand.New(rand.NewSource(s.SplitSeed))
	var trainIdx, valIdx []int
	for _, class := range classes {
		idxs := byClass[class]
		rng.Shuffle(len(idxs), func(i, j int) { idxs[i], idxs[j] = idxs[j], idxs[i] })
		cut := (len(idxs)*4 + 4) / 5
		if cut < 1 {
			cut = 1
		}
		trainIdx = append(trainIdx, idxs[:cut]...)
		valIdx = append(valIdx, idxs[cut:]...)
	}
	sort.Ints(trainIdx)
	sort.Ints(valIdx)

	docs := make([][]string, len(trainIdx))
	for i, idx := range trainIdx {
		docs[i] = samples[idx].norm.Tokens
	}
	vocab := features.BuildVocabulary(docs, s.Vocab)

	X := make([][]float64, len(trainIdx))
	y := make([]int, len(trainIdx))
	for i, idx := range trainIdx {
		X[i] = features.Extract(samples[idx].norm, vocab).Dense(vocab.Size())
		y[i] = samples[idx].class
	}

	forest, boosted, linear := ml.TrainSubModels(X, y, len(labels), s.Train)

	m := &ml.EnsembleModel{
		Version:    uuid.New().String(),
		TrainedAt:  time.Now().UTC(),
		Categories: labels,
		Vocab:      vocab,
		Forest:     forest,
		Boosted:    boosted,
		Linear:     linear,
	}

	// With too few examples the split may leave no held-out set; fall back to
	// training accuracy rather than reporting zero.
	eval := valIdx
	if len(eval) == 0 {
		eval = trainIdx
	}
	correct := 0
	for _, idx := range eval {
		vec := features.Extract(samples[idx].norm, vocab)
		probs, _ := m.Predict(vec)
		if ml.ArgMax(probs) == samples[idx].class {
			correct++
		}
	}
	m.ValidationAccuracy = float64(correct) / float64(len(eval))
	return m, nil
}

// TrainBaseline fits a model from the embedded corpus alone.
func TrainBaseline(s Settings) (*ml.EnsembleModel, error) {
	return FitModel(BaselineCorpus(), s)
}

// NewLoader returns the lazy initializer for the model store: load the
// on-disk artifact when one exists, otherwise train the baseline and persist
// it so the next start skips training.
func NewLoader(path string, s Settings, logger *zap.Logger) modelstore.Loader {
	return func(ctx context.Context) (*ml.EnsembleModel, error) {
		if m, err := ml.LoadModel(path); err == nil {
			logger.Info("Loaded model artifact",
				zap.String("path", path),
				zap.String("version", m.Version))
			return m, nil
		}

		logger.Info("No usable model artifact, training baseline",
			zap.String("path", path))
		m, err := TrainBaseline(s)
		if err != nil {
			return nil, fmt.Errorf("failed to train baseline model: %w", err)
		}
		if err := ml.SaveModel(path, m); err != nil {
			return nil, fmt.Errorf("failed to persist baseline model: %w", err)
		}
		return m, nil
	}
}

// Pipeline implements the Retrainer port: one retraining run at a time,
// candidate models validated against the live one before publication.
type Pipeline struct {
	mu       sync.Mutex
	settings Settings
	store    core.ModelStore
	feedback core.FeedbackRepository
	logger   *zap.Logger
}

// NewPipeline creates a retraining pipeline over the given stores.
func NewPipeline(settings Settings, store core.ModelStore, feedback core.FeedbackRepository, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		settings: settings,
		store:    store,
		feedback: feedback,
		logger:   logger,
	}
}

// Ready reports whether the feedback backlog meets the retraining threshold.
func (p *Pipeline) Ready(ctx context.Context) (bool, error) {
	count, err := p.feedback.CountUnconsumed(ctx)
	if err != nil {
		return false, err
	}
	return count >= p.settings.MinFeedback, nil
}

// Retrain runs one retraining cycle. Classification continues against the
// live model throughout; the lock only serializes concurrent retraining runs.
func (p *Pipeline) Retrain(ctx context.Context, trigger core.RetrainTrigger) (*core.RetrainOutcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	records, err := p.feedback.Unconsumed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}

	if len(records) < p.settings.MinFeedback {
		p.logger.Info("Skipping retraining, insufficient feedback",
			zap.String("trigger", string(trigger)),
			zap.Int("backlog", len(records)),
			zap.Int("required", p.settings.MinFeedback))
		return &core.RetrainOutcome{
			Accepted: false,
			Reason: fmt.Sprintf("insufficient feedback: %d of %d required",
				len(records), p.settings.MinFeedback),
			FeedbackUsed: 0,
		}, nil
	}

	current, err := p.store.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load current model: %w", err)
	}

	corpus := BaselineCorpus()
	for _, rec := range records {
		corpus = append(corpus, core.TrainingExample{
			Text:  rec.Text,
			Label: rec.CorrectedLabel,
		})
	}

	p.logger.Info("Retraining model",
		zap.String("trigger", string(trigger)),
		zap.Int("samples", len(corpus)),
		zap.Int("feedback", len(records)))

	candidate, err := FitModel(corpus, p.settings)
	if err != nil {
		return nil, fmt.Errorf("failed to fit candidate model: %w", err)
	}

	outcome := &core.RetrainOutcome{
		NewVersion:         candidate.Version,
		ValidationAccuracy: candidate.ValidationAccuracy,
		PreviousAccuracy:   current.ValidationAccuracy,
		SamplesUsed:        len(corpus),
		FeedbackUsed:       len(records),
	}

	if candidate.ValidationAccuracy < current.ValidationAccuracy-p.settings.Tolerance {
		outcome.Reason = fmt.Sprintf(
			"validation accuracy %.4f regressed more than %.2f below current %.4f",
			candidate.ValidationAccuracy, p.settings.Tolerance, current.ValidationAccuracy)
		p.logger.Warn("Rejected candidate model",
			zap.String("version", candidate.Version),
			zap.Float64("candidate_accuracy", candidate.ValidationAccuracy),
			zap.Float64("current_accuracy", current.ValidationAccuracy))
		return outcome, nil
	}

	// Publish before consuming: a failed publish keeps the backlog for the
	// next run, while a failure after publish at worst re-folds the same
	// records.
	if err := p.store.Publish(candidate); err != nil {
		return nil, fmt.Errorf("failed to publish candidate model: %w", err)
	}
	ids := make([]int64, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	if err := p.feedback.MarkConsumed(ctx, ids); err != nil {
		return nil, fmt.Errorf("failed to mark feedback consumed: %w", err)
	}

	outcome.Accepted = true
	outcome.Reason = "published"
	return outcome, nil
}
