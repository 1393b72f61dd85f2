package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/mail"
	"os"
	"sort"
	"time"

	"github.com/inboxkit/email-classifier/internal/core"
	"github.com/inboxkit/email-classifier/internal/di"
	"go.uber.org/zap"
)

func main() {
	flags := di.ParseFlags()

	// Build the dependency injection container
	container, err := di.BuildCLIContainer(flags)
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

// run is the main application function that gets all dependencies injected
func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	service *core.ClassifierService,
	feedbackRepo core.FeedbackRepository,
) error {
	defer logger.Sync()
	defer func() {
		if err := feedbackRepo.Close(); err != nil {
			logger.Error("Failed to close feedback store", zap.Error(err))
		}
	}()

	ctx := context.Background()

	switch {
	case flags.Stats:
		return printStats(ctx, service)
	case flags.Retrain:
		return runRetraining(ctx, service)
	case flags.FeedbackText != "" || flags.FeedbackLabel != "":
		return submitFeedback(ctx, service, flags)
	default:
		return classifyEmail(ctx, service, flags, logger)
	}
}

func classifyEmail(ctx context.Context, service *core.ClassifierService, flags *di.CLIFlags, logger *zap.Logger) error {
	subject := flags.Subject
	body := flags.Body

	// Without direct subject/body flags, parse a full message from file or
	// stdin
	if subject == "" && body == "" {
		var emailReader io.Reader
		if flags.InputFile != "" {
			file, err := os.Open(flags.InputFile)
			if err != nil {
				return fmt.Errorf("failed to open input file: %w", err)
			}
			defer file.Close()
			emailReader = file
			logger.Info("Reading email from file", zap.String("file", flags.InputFile))
		} else {
			emailReader = os.Stdin
			logger.Info("Reading email from stdin")
		}

		msg, err := mail.ReadMessage(bufio.NewReader(emailReader))
		if err != nil {
			return fmt.Errorf("failed to parse email: %w", err)
		}

		subject = msg.Header.Get("Subject")
		bodyBytes, err := io.ReadAll(msg.Body)
		if err != nil {
			return fmt.Errorf("failed to read email body: %w", err)
		}
		body = string(bodyBytes)
	}

	// Print email summary
	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("Subject: %s\n", subject)
	fmt.Printf("Body length: %d bytes\n", len(body))

	startTime := time.Now()
	result, err := service.Classify(ctx, subject, body)
	if err != nil {
		return fmt.Errorf("failed to classify email: %w", err)
	}
	duration := time.Since(startTime)

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Category: %s\n", result.Category)
	fmt.Printf("Confidence: %.4f\n", result.Confidence)
	fmt.Printf("Model version: %s\n", result.ModelVersion)
	fmt.Printf("From cache: %t\n", result.FromCache)
	fmt.Printf("Processing time: %v\n", duration)

	fmt.Printf("\n=== Probabilities ===\n")
	categories := make([]core.Category, 0, len(result.Probabilities))
	for c := range result.Probabilities {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	for _, c := range categories {
		fmt.Printf("%-12s %.4f\n", c, result.Probabilities[c])
	}
	return nil
}

func submitFeedback(ctx context.Context, service *core.ClassifierService, flags *di.CLIFlags) error {
	if flags.FeedbackText == "" || flags.FeedbackLabel == "" {
		return fmt.Errorf("both -feedback-text and -feedback-label are required")
	}
	if err := service.SubmitFeedback(ctx, flags.FeedbackText, flags.FeedbackLabel, 0); err != nil {
		return err
	}
	fmt.Printf("Feedback recorded with label %q\n", flags.FeedbackLabel)
	return nil
}

func runRetraining(ctx context.Context, service *core.ClassifierService) error {
	outcome, err := service.Retrain(ctx, core.TriggerManual)
	if err != nil {
		return fmt.Errorf("retraining failed: %w", err)
	}

	fmt.Printf("\n=== Retraining ===\n")
	fmt.Printf("Accepted: %t\n", outcome.Accepted)
	fmt.Printf("Reason: %s\n", outcome.Reason)
	if outcome.NewVersion != "" {
		fmt.Printf("Candidate version: %s\n", outcome.NewVersion)
		fmt.Printf("Validation accuracy: %.4f (previous %.4f)\n",
			outcome.ValidationAccuracy, outcome.PreviousAccuracy)
		fmt.Printf("Samples used: %d (%d from feedback)\n",
			outcome.SamplesUsed, outcome.FeedbackUsed)
	}
	return nil
}

func printStats(ctx context.Context, service *core.ClassifierService) error {
	stats, err := service.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect stats: %w", err)
	}

	fmt.Printf("\n=== Stats ===\n")
	fmt.Printf("Model version: %s\n", stats.ModelVersion)
	fmt.Printf("Validation accuracy: %.4f\n", stats.ValidationAccuracy)
	fmt.Printf("Trained at: %s\n", stats.TrainedAt.Format(time.RFC3339))
	fmt.Printf("Unconsumed feedback: %d\n", stats.UnconsumedFeedback)
	fmt.Printf("Ready for retraining: %t\n", stats.ReadyForRetraining)
	return nil
}
