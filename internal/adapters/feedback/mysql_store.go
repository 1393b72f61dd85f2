package feedback

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/inboxkit/email-classifier/internal/core"
)

// MySQLStore is a MySQL implementation of the FeedbackRepository interface,
// for deployments where several classifier instances share one feedback
// backlog.
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore connects to MySQL and ensures the feedback table exists.
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS feedback (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			text TEXT NOT NULL,
			corrected_label VARCHAR(32) NOT NULL,
			source_confidence DOUBLE,
			created_at TIMESTAMP NOT NULL,
			consumed TINYINT(1) NOT NULL DEFAULT 0,
			INDEX idx_feedback_consumed (consumed)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create feedback table: %w", err)
	}

	return &MySQLStore{db: db, logger: logger}, nil
}

// Append stores a new feedback record and assigns its ID.
func (s *MySQLStore) Append(ctx context.Context, rec *core.FeedbackRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (text, corrected_label, source_confidence, created_at, consumed)
		VALUES (?, ?, ?, ?, 0)
	`, rec.Text, string(rec.CorrectedLabel), rec.SourceConfidence, rec.CreatedAt.Format("2006-01-02 15:04:05"))
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read feedback id: %w", err)
	}
	rec.ID = id
	return nil
}

// Unconsumed returns every record not yet folded into a retraining run,
// oldest first.
func (s *MySQLStore) Unconsumed(ctx context.Context) ([]*core.FeedbackRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, corrected_label, source_confidence, created_at
		FROM feedback
		WHERE consumed = 0
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var out []*core.FeedbackRecord
	for rows.Next() {
		var rec core.FeedbackRecord
		var label, createdAt string
		if err := rows.Scan(&rec.ID, &rec.Text, &label, &rec.SourceConfidence, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		rec.CorrectedLabel = core.Category(label)
		if ts, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			rec.CreatedAt = ts
		} else {
			s.logger.Warn("Failed to parse feedback timestamp",
				zap.Int64("id", rec.ID),
				zap.Error(err))
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// MarkConsumed flags records as folded into a retraining run.
func (s *MySQLStore) MarkConsumed(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE feedback SET consumed = 1 WHERE id IN (%s)`, placeholders),
		args...)
	if err != nil {
		return fmt.Errorf("failed to mark feedback consumed: %w", err)
	}
	return nil
}

// CountUnconsumed reports the retraining backlog size.
func (s *MySQLStore) CountUnconsumed(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback WHERE consumed = 0`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count feedback: %w", err)
	}
	return count, nil
}

// Close closes the underlying connection pool.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
