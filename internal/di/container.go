package di

import (
	"go.uber.org/dig"

	"github.com/inboxkit/email-classifier/internal/config"
	"github.com/inboxkit/email-classifier/internal/core"
	"github.com/inboxkit/email-classifier/internal/factory"
	"github.com/inboxkit/email-classifier/internal/logging"
	"github.com/inboxkit/email-classifier/internal/modelstore"
	"github.com/inboxkit/email-classifier/internal/training"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewFeedbackFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewModelFactory); err != nil {
		return nil, err
	}

	// Register result cache
	if err := container.Provide(func(f *factory.CacheFactory) core.ResultCache {
		return f.CreateResultCache()
	}); err != nil {
		return nil, err
	}

	// Register cache enabled flag
	if err := container.Provide(func(f *factory.CacheFactory) bool {
		return f.IsCacheEnabled()
	}); err != nil {
		return nil, err
	}

	// Register feedback repository
	if err := container.Provide(func(f *factory.FeedbackFactory) (core.FeedbackRepository, error) {
		return f.CreateFeedbackRepository()
	}); err != nil {
		return nil, err
	}

	// Register model store
	if err := container.Provide(func(f *factory.ModelFactory) *modelstore.Store {
		return f.CreateModelStore()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(s *modelstore.Store) core.ModelStore {
		return s
	}); err != nil {
		return nil, err
	}

	// Register retraining pipeline
	if err := container.Provide(func(f *factory.ModelFactory, store core.ModelStore, repo core.FeedbackRepository) *training.Pipeline {
		return f.CreatePipeline(store, repo)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(p *training.Pipeline) core.Retrainer {
		return p
	}); err != nil {
		return nil, err
	}

	// Register keyword override stage
	if err := container.Provide(func(cfg *config.Config) *core.OverrideStage {
		return core.NewOverrideStage(cfg.GetOverridesEnabled())
	}); err != nil {
		return nil, err
	}

	// Register classifier service
	if err := container.Provide(core.NewClassifierService); err != nil {
		return nil, err
	}

	return container, nil
}
