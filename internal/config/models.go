package config

import (
	"github.com/inboxkit/email-classifier/internal/features"
	"github.com/inboxkit/email-classifier/internal/ml"
	"github.com/inboxkit/email-classifier/internal/training"
)

// CacheConfig represents the configuration for the result cache
type CacheConfig struct {
	Enabled  bool
	Capacity int
}

// FeedbackConfig represents the configuration for the feedback store
type FeedbackConfig struct {
	Type       string
	SQLitePath string
	MySQLDSN   string
}

// ModelConfig represents the configuration for the model store
type ModelConfig struct {
	Path string
}

// GetCache returns the result cache configuration
func (c *Config) GetCache() CacheConfig {
	return CacheConfig{
		Enabled:  c.GetBool("cache.enabled"),
		Capacity: c.GetInt("cache.capacity"),
	}
}

// GetFeedback returns the feedback store configuration
func (c *Config) GetFeedback() FeedbackConfig {
	return FeedbackConfig{
		Type:       c.GetString("feedback.type"),
		SQLitePath: c.GetString("feedback.sqlite_path"),
		MySQLDSN:   c.GetString("feedback.mysql_dsn"),
	}
}

// GetModel returns the model store configuration
func (c *Config) GetModel() ModelConfig {
	return ModelConfig{
		Path: c.GetString("model.path"),
	}
}

// GetOverridesEnabled reports whether the keyword override stage is active
func (c *Config) GetOverridesEnabled() bool {
	return c.GetBool("overrides.enabled")
}

// GetTrainingSettings returns the full training and retraining configuration
func (c *Config) GetTrainingSettings() training.Settings {
	return training.Settings{
		MinFeedback: c.GetInt("retraining.min_feedback"),
		Tolerance:   c.GetFloat64("retraining.tolerance"),
		SplitSeed:   c.GetInt64("ensemble.seed"),
		Vocab: features.VocabOptions{
			MaxFeatures: c.GetInt("classifier.vocab_size"),
			MinDocFreq:  c.GetInt("classifier.min_doc_freq"),
			MaxDocRatio: c.GetFloat64("classifier.max_doc_ratio"),
			NGramMax:    c.GetInt("classifier.ngram_max"),
		},
		Train: ml.TrainConfig{
			ForestTrees:   c.GetInt("ensemble.forest_trees"),
			ForestDepth:   c.GetInt("ensemble.forest_depth"),
			ForestMinLeaf: 1,
			BoostRounds:   c.GetInt("ensemble.boost_rounds"),
			BoostDepth:    c.GetInt("ensemble.boost_depth"),
			LinearEpochs:  c.GetInt("ensemble.linear_epochs"),
			LinearRate:    c.GetFloat64("ensemble.linear_rate"),
			LinearL2:      c.GetFloat64("ensemble.linear_l2"),
			Seed:          c.GetInt64("ensemble.seed"),
		},
	}
}
