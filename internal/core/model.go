package core

import (
	"fmt"
	"sort"
	"time"
)

// Category is one label of the closed classification taxonomy. The set must
// stay stable across model versions that are used together; adding a category
// requires retraining on data that includes it.
type Category string

const (
	CategoryBilling   Category = "billing"
	CategoryImportant Category = "important"
	CategoryPersonal  Category = "personal"
	CategoryPromotion Category = "promotion"
	CategorySocial    Category = "social"
	CategorySpam      Category = "spam"
	CategorySupport   Category = "support"
	CategoryUpdates   Category = "updates"
	CategoryWork      Category = "work"
)

// Categories returns the full taxonomy in lexicographic order. The order is
// load-bearing: sub-model class indexes and the ensemble tie-break both rely
// on it.
func Categories() []Category {
	cats := []Category{
		CategoryBilling,
		CategoryImportant,
		CategoryPersonal,
		CategoryPromotion,
		CategorySocial,
		CategorySpam,
		CategorySupport,
		CategoryUpdates,
		CategoryWork,
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// CategoryLabels returns the taxonomy as plain strings, in the same order as
// Categories.
func CategoryLabels() []string {
	cats := Categories()
	labels := make([]string, len(cats))
	for i, c := range cats {
		labels[i] = string(c)
	}
	return labels
}

// ParseCategory validates a label against the closed taxonomy.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Email represents a raw email message. Transient, never persisted by this
// core.
type Email struct {
	Subject string
	Body    string
}

// ClassificationResult is the outcome of one classification call. Never
// mutated after creation; cache hits return a copy with FromCache set.
type ClassificationResult struct {
	Category      Category
	Confidence    float64
	Probabilities map[Category]float64
	ModelVersion  string
	FromCache     bool
	ClassifiedAt  time.Time
}

// Clone returns a deep copy so cached entries are never shared with callers.
func (r *ClassificationResult) Clone() *ClassificationResult {
	probs := make(map[Category]float64, len(r.Probabilities))
	for k, v := range r.Probabilities {
		probs[k] = v
	}
	cp := *r
	cp.Probabilities = probs
	return &cp
}

// TrainingExample is one labeled text, either from the embedded baseline
// corpus or derived from a feedback record.
type TrainingExample struct {
	Text  string
	Label Category
}

// FeedbackRecord is a human correction of a classification. Records are
// append-only; folding one into a retraining run flags it consumed rather
// than deleting it.
type FeedbackRecord struct {
	ID               int64
	Text             string
	CorrectedLabel   Category
	SourceConfidence float64
	CreatedAt        time.Time
	Consumed         bool
}

// RetrainTrigger identifies why a retraining run started.
type RetrainTrigger string

const (
	TriggerManual    RetrainTrigger = "manual"
	TriggerThreshold RetrainTrigger = "threshold"
)

// RetrainOutcome reports the result of a retraining run. A skipped or
// rejected run is a normal outcome, not an error.
type RetrainOutcome struct {
	Accepted           bool
	Reason             string
	NewVersion         string
	ValidationAccuracy float64
	PreviousAccuracy   float64
	SamplesUsed        int
	FeedbackUsed       int
}

// Stats is a snapshot of the published model and the feedback backlog.
type Stats struct {
	ModelVersion       string
	ValidationAccuracy float64
	TrainedAt          time.Time
	UnconsumedFeedback int
	ReadyForRetraining bool
}
