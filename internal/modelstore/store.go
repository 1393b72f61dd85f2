// Package modelstore holds the published ensemble behind an atomic pointer so
// classification reads never block on retraining.
package modelstore

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/inboxkit/email-classifier/internal/ml"
)

// Loader produces the initial model on first use, typically by loading the
// on-disk artifact or training the baseline when none exists.
type Loader func(ctx context.Context) (*ml.EnsembleModel, error)

// Store implements the ModelStore port. Readers capture the current model
// with a single atomic load and use that reference to completion; Publish
// writes the artifact and swaps the pointer as a unit.
type Store struct {
	current atomic.Pointer[ml.EnsembleModel]
	initMu  sync.Mutex
	loader  Loader
	path    string
	logger  *zap.Logger
}

// NewStore creates a store that persists artifacts at path and fills itself
// lazily through loader.
func NewStore(path string, loader Loader, logger *zap.Logger) *Store {
	return &Store{loader: loader, path: path, logger: logger}
}

// Current returns the published model, initializing it on first use. The
// double-checked lock ensures exactly one caller runs the expensive load or
// baseline-train path; concurrent callers block until it finishes and then
// share the same model.
func (s *Store) Current(ctx context.Context) (*ml.EnsembleModel, error) {
	if m := s.current.Load(); m != nil {
		return m, nil
	}

	s.initMu.Lock()
	defer s.initMu.Unlock()

	if m := s.current.Load(); m != nil {
		return m, nil
	}

	m, err := s.loader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize model: %w", err)
	}

	s.current.Store(m)
	s.logger.Info("Initialized model",
		zap.String("version", m.Version),
		zap.Float64("validation_accuracy", m.ValidationAccuracy))
	return m, nil
}

// Publish persists the artifact and atomically swaps the in-memory pointer.
// In-flight classifications keep the model reference they already captured.
func (s *Store) Publish(m *ml.EnsembleModel) error {
	if err := ml.SaveModel(s.path, m); err != nil {
		return fmt.Errorf("failed to persist model artifact: %w", err)
	}

	s.current.Store(m)
	s.logger.Info("Published model",
		zap.String("version", m.Version),
		zap.Float64("validation_accuracy", m.ValidationAccuracy))
	return nil
}

// Path returns the artifact location on disk.
func (s *Store) Path() string { return s.path }
