package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/inboxkit/email-classifier/internal/features"
	"github.com/inboxkit/email-classifier/internal/ml"
	"github.com/inboxkit/email-classifier/internal/textproc"
)

// ClassifierService is the core service for email classification
type ClassifierService struct {
	store        ModelStore
	cache        ResultCache
	feedback     FeedbackRepository
	retrainer    Retrainer
	overrides    *OverrideStage
	logger       *zap.Logger
	cacheEnabled bool
}

// NewClassifierService creates a new classifier service
func NewClassifierService(
	store ModelStore,
	cache ResultCache,
	feedback FeedbackRepository,
	retrainer Retrainer,
	overrides *OverrideStage,
	logger *zap.Logger,
	cacheEnabled bool,
) *ClassifierService {
	return &ClassifierService{
		store:        store,
		cache:        cache,
		feedback:     feedback,
		retrainer:    retrainer,
		overrides:    overrides,
		logger:       logger,
		cacheEnabled: cacheEnabled,
	}
}

// CacheKey derives the result-cache key from the normalized subject and body.
// The NUL separator keeps ("ab","c") and ("a","bc") distinct.
func CacheKey(normalizedSubject, normalizedBody string) string {
	sum := sha256.Sum256([]byte(normalizedSubject + "\x00" + normalizedBody))
	return hex.EncodeToString(sum[:])
}

// Classify assigns a category to an email. Identical normalized content
// always yields an identical result under the same model version; repeat
// content is answered from the cache with FromCache set.
func (s *ClassifierService) Classify(ctx context.Context, subject, body string) (*ClassificationResult, error) {
	n := textproc.Normalize(subject, body)
	key := CacheKey(n.Subject, n.Body)

	if s.cacheEnabled {
		if result, ok := s.cache.Get(key); ok {
			s.logger.Debug("Cache hit for email content", zap.String("key", key))
			return result, nil
		}
	}

	model, err := s.store.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current model: %w", err)
	}

	vec := features.Extract(n, model.Vocab)
	probs, excluded := model.Predict(vec)
	if len(excluded) > 0 {
		s.logger.Warn("Sub-models excluded from vote",
			zap.Strings("excluded", excluded),
			zap.String("model_version", model.Version))
	}

	s.overrides.Apply(n.Text, probs, model.Categories)

	best := ml.ArgMax(probs)
	probabilities := make(map[Category]float64, len(model.Categories))
	for i, label := range model.Categories {
		probabilities[Category(label)] = probs[i]
	}

	result := &ClassificationResult{
		Category:      Category(model.Categories[best]),
		Confidence:    probs[best],
		Probabilities: probabilities,
		ModelVersion:  model.Version,
		ClassifiedAt:  time.Now().UTC(),
	}

	if s.cacheEnabled {
		s.cache.Put(key, result)
	}

	s.logger.Info("Classified email",
		zap.String("category", string(result.Category)),
		zap.Float64("confidence", result.Confidence),
		zap.String("model_version", result.ModelVersion))
	return result, nil
}

// SubmitFeedback records a human correction for a future retraining run.
func (s *ClassifierService) SubmitFeedback(ctx context.Context, text, correctedLabel string, sourceConfidence float64) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("feedback text must not be empty")
	}
	label, err := ParseCategory(correctedLabel)
	if err != nil {
		return fmt.Errorf("invalid feedback label: %w", err)
	}

	rec := &FeedbackRecord{
		Text:             text,
		CorrectedLabel:   label,
		SourceConfidence: sourceConfidence,
	}
	if err := s.feedback.Append(ctx, rec); err != nil {
		return fmt.Errorf("failed to store feedback: %w", err)
	}

	s.logger.Info("Recorded feedback",
		zap.Int64("id", rec.ID),
		zap.String("corrected_label", string(label)))
	return nil
}

// Retrain runs one retraining cycle against the accumulated feedback.
func (s *ClassifierService) Retrain(ctx context.Context, trigger RetrainTrigger) (*RetrainOutcome, error) {
	return s.retrainer.Retrain(ctx, trigger)
}

// Stats reports the published model version and the feedback backlog.
func (s *ClassifierService) Stats(ctx context.Context) (*Stats, error) {
	model, err := s.store.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current model: %w", err)
	}
	backlog, err := s.feedback.CountUnconsumed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count feedback: %w", err)
	}
	ready, err := s.retrainer.Ready(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check retraining readiness: %w", err)
	}

	return &Stats{
		ModelVersion:       model.Version,
		ValidationAccuracy: model.ValidationAccuracy,
		TrainedAt:          model.TrainedAt,
		UnconsumedFeedback: backlog,
		ReadyForRetraining: ready,
	}, nil
}
