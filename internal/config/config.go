package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/email-classifier/")
	v.AddConfigPath("$HOME/.email-classifier")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("EMAIL_CLASSIFIER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Vocabulary defaults
	v.SetDefault("classifier.vocab_size", 5000)
	v.SetDefault("classifier.min_doc_freq", 2)
	v.SetDefault("classifier.max_doc_ratio", 0.8)
	v.SetDefault("classifier.ngram_max", 2)

	// Ensemble defaults
	v.SetDefault("ensemble.forest_trees", 50)
	v.SetDefault("ensemble.forest_depth", 12)
	v.SetDefault("ensemble.boost_rounds", 40)
	v.SetDefault("ensemble.boost_depth", 3)
	v.SetDefault("ensemble.linear_epochs", 60)
	v.SetDefault("ensemble.linear_rate", 0.5)
	v.SetDefault("ensemble.linear_l2", 0.0001)
	v.SetDefault("ensemble.seed", 42)

	// Override defaults
	v.SetDefault("overrides.enabled", true)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.capacity", 1000)

	// Retraining defaults
	v.SetDefault("retraining.min_feedback", 10)
	v.SetDefault("retraining.tolerance", 0.05)
	v.SetDefault("retraining.check_interval", "1m")

	// Model store defaults
	v.SetDefault("model.path", "/data/classifier_model.json")

	// Feedback store defaults
	v.SetDefault("feedback.type", "memory")
	v.SetDefault("feedback.sqlite_path", "/data/feedback.db")
	v.SetDefault("feedback.mysql_dsn", "user:password@tcp(localhost:3306)/email_classifier")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetInt64 gets an int64 value from the configuration
func (c *Config) GetInt64(key string) int64 {
	return c.v.GetInt64(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
