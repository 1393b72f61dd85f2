package factory

import (
	"github.com/inboxkit/email-classifier/internal/config"
	"github.com/inboxkit/email-classifier/internal/core"
	"github.com/inboxkit/email-classifier/internal/modelstore"
	"github.com/inboxkit/email-classifier/internal/training"
	"go.uber.org/zap"
)

// ModelFactory creates the model store and retraining pipeline
type ModelFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewModelFactory creates a new model factory
func NewModelFactory(cfg *config.Config, logger *zap.Logger) *ModelFactory {
	return &ModelFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateModelStore creates the lazily initialized model store
func (f *ModelFactory) CreateModelStore() *modelstore.Store {
	settings := f.cfg.GetTrainingSettings()
	path := f.cfg.GetModel().Path
	loader := training.NewLoader(path, settings, f.logger)
	return modelstore.NewStore(path, loader, f.logger)
}

// CreatePipeline creates the retraining pipeline over the given stores
func (f *ModelFactory) CreatePipeline(store core.ModelStore, repo core.FeedbackRepository) *training.Pipeline {
	return training.NewPipeline(f.cfg.GetTrainingSettings(), store, repo, f.logger)
}
