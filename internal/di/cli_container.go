package di

import (
	"flag"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/inboxkit/email-classifier/internal/config"
	"github.com/inboxkit/email-classifier/internal/core"
	"github.com/inboxkit/email-classifier/internal/factory"
	"github.com/inboxkit/email-classifier/internal/logging"
	"github.com/inboxkit/email-classifier/internal/modelstore"
	"github.com/inboxkit/email-classifier/internal/training"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Input flags
	InputFile string
	Subject   string
	Body      string

	// Feedback flags
	FeedbackText  string
	FeedbackLabel string

	// Maintenance flags
	Retrain bool
	Stats   bool

	// Model and feedback storage flags
	ModelPath  string
	FeedbackDB string

	// Retraining flags
	MinFeedback int
	Tolerance   float64

	// Logging flags
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Input flags
	flag.StringVar(&flags.InputFile, "file", "", "Input email file (use stdin if not specified)")
	flag.StringVar(&flags.Subject, "subject", "", "Email subject (bypasses message parsing)")
	flag.StringVar(&flags.Body, "body", "", "Email body (bypasses message parsing)")

	// Feedback flags
	flag.StringVar(&flags.FeedbackText, "feedback-text", "", "Email text to submit as feedback")
	flag.StringVar(&flags.FeedbackLabel, "feedback-label", "", "Corrected category for the feedback text")

	// Maintenance flags
	flag.BoolVar(&flags.Retrain, "retrain", false, "Run a retraining cycle and exit")
	flag.BoolVar(&flags.Stats, "stats", false, "Print model and feedback statistics and exit")

	// Model and feedback storage flags
	flag.StringVar(&flags.ModelPath, "model", "./classifier_model.json", "Path to the model artifact")
	flag.StringVar(&flags.FeedbackDB, "feedback-db", "./feedback.db", "Path to the SQLite feedback database")

	// Retraining flags
	flag.IntVar(&flags.MinFeedback, "min-feedback", 10, "Minimum feedback records required for retraining")
	flag.Float64Var(&flags.Tolerance, "tolerance", 0.05, "Accepted validation accuracy drop for a new model")

	// Logging flags
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewFeedbackFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewModelFactory); err != nil {
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

	// Register classifier service with no cache; one-shot runs never repeat
	// content within the process
	if err := container.Provide(func(
		store core.ModelStore,
		repo core.FeedbackRepository,
		retrainer core.Retrainer,
		overrides *core.OverrideStage,
		logger *zap.Logger,
	) *core.ClassifierService {
		return core.NewClassifierService(
			store,
			nil, // No cache for CLI
			repo,
			retrainer,
			overrides,
			logger,
			false, // Cache disabled
		)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	v.Set("model.path", flags.ModelPath)
	v.Set("feedback.type", "sqlite")
	v.Set("feedback.sqlite_path", flags.FeedbackDB)
	v.Set("retraining.min_feedback", flags.MinFeedback)
	v.Set("retraining.tolerance", flags.Tolerance)
	v.Set("cache.enabled", false)

	return config.NewFromViper(v)
}
