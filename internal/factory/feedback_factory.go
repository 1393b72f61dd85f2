package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/inboxkit/email-classifier/internal/adapters/feedback"
	"github.com/inboxkit/email-classifier/internal/config"
	"github.com/inboxkit/email-classifier/internal/core"
	"go.uber.org/zap"
)

// FeedbackFactory creates feedback repositories based on configuration
type FeedbackFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFeedbackFactory creates a new feedback factory
func NewFeedbackFactory(cfg *config.Config, logger *zap.Logger) *FeedbackFactory {
	return &FeedbackFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateFeedbackRepository creates a feedback repository based on the configuration
func (f *FeedbackFactory) CreateFeedbackRepository() (core.FeedbackRepository, error) {
	feedbackType := f.cfg.GetString("feedback.type")

	switch feedbackType {
	case "memory":
		return feedback.NewMemoryStore(f.logger), nil
	case "sqlite":
		sqlitePath := f.cfg.GetString("feedback.sqlite_path")
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return feedback.NewSQLiteStore(sqlitePath, f.logger)
	case "mysql":
		mysqlDSN := f.cfg.GetString("feedback.mysql_dsn")
		return feedback.NewMySQLStore(mysqlDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported feedback store type: %s", feedbackType)
	}
}
