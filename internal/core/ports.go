package core

import (
	"context"

	"github.com/inboxkit/email-classifier/internal/ml"
)

// ResultCache memoizes classification results by content hash. Hits must
// return copies; the stored entry is never mutated.
type ResultCache interface {
	// Get retrieves a cached result for a key, flagged as a cache hit.
	Get(key string) (*ClassificationResult, bool)

	// Put stores a result under a key, evicting the oldest entry when full.
	Put(key string, result *ClassificationResult)
}

// FeedbackRepository stores human corrections. Append-only: retraining flags
// records consumed instead of deleting them.
type FeedbackRepository interface {
	// Append stores a new feedback record and assigns its ID.
	Append(ctx context.Context, rec *FeedbackRecord) error

	// Unconsumed returns every record not yet folded into a retraining run.
	Unconsumed(ctx context.Context) ([]*FeedbackRecord, error)

	// MarkConsumed flags records as folded into a retraining run.
	MarkConsumed(ctx context.Context, ids []int64) error

	// CountUnconsumed reports the retraining backlog size.
	CountUnconsumed(ctx context.Context) (int, error)

	// Close releases any underlying resources.
	Close() error
}

// ModelStore holds the currently published ensemble. Readers capture a model
// reference atomically and use it to completion; Publish swaps the pointer as
// a unit so no reader ever observes a partial update.
type ModelStore interface {
	// Current returns the published model, lazily initializing it on first
	// use. Exactly one caller performs the expensive load/train path.
	Current(ctx context.Context) (*ml.EnsembleModel, error)

	// Publish persists a new model artifact and atomically swaps it in.
	Publish(m *ml.EnsembleModel) error
}

// Retrainer folds accumulated feedback into a fresh candidate model and
// publishes it if it holds up against the live one.
type Retrainer interface {
	// Retrain runs one retraining cycle. Insufficient data and validation
	// regressions are reported in the outcome, not as errors.
	Retrain(ctx context.Context, trigger RetrainTrigger) (*RetrainOutcome, error)

	// Ready reports whether the feedback backlog meets the retraining
	// threshold.
	Ready(ctx context.Context) (bool, error)
}
