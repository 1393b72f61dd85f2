package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inboxkit/email-classifier/internal/config"
	"github.com/inboxkit/email-classifier/internal/core"
	"github.com/inboxkit/email-classifier/internal/di"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected.
// It warms the model store, then watches the feedback backlog and retrains
// whenever the threshold is met.
func run(
	cfg *config.Config,
	logger *zap.Logger,
	service *core.ClassifierService,
	retrainer core.Retrainer,
	feedbackRepo core.FeedbackRepository,
) error {
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Warm the model so the first classification does not pay the lazy
	// load/train cost
	stats, err := service.Stats(ctx)
	if err != nil {
		logger.Error("Failed to initialize model", zap.Error(err))
		return err
	}
	logger.Info("Model ready",
		zap.String("version", stats.ModelVersion),
		zap.Float64("validation_accuracy", stats.ValidationAccuracy))

	checkInterval, err := cfg.GetDuration("retraining.check_interval")
	if err != nil {
		return fmt.Errorf("invalid retraining check interval: %w", err)
	}

	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			checkAndRetrain(ctx, retrainer, logger)
		case <-sigCh:
			logger.Info("Shutting down...")
			cancel()

			if err := feedbackRepo.Close(); err != nil {
				logger.Error("Failed to close feedback store", zap.Error(err))
			}

			logger.Info("Shutdown complete")
			return nil
		}
	}
}

// checkAndRetrain runs one threshold-triggered retraining cycle when the
// backlog is large enough.
func checkAndRetrain(ctx context.Context, retrainer core.Retrainer, logger *zap.Logger) {
	ready, err := retrainer.Ready(ctx)
	if err != nil {
		logger.Error("Failed to check retraining readiness", zap.Error(err))
		return
	}
	if !ready {
		return
	}

	outcome, err := retrainer.Retrain(ctx, core.TriggerThreshold)
	if err != nil {
		logger.Error("Retraining failed", zap.Error(err))
		return
	}
	if outcome.Accepted {
		logger.Info("Retraining published new model",
			zap.String("version", outcome.NewVersion),
			zap.Float64("validation_accuracy", outcome.ValidationAccuracy),
			zap.Int("feedback_used", outcome.FeedbackUsed))
	} else {
		logger.Warn("Retraining did not publish",
			zap.String("reason", outcome.Reason))
	}
}
