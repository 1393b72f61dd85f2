package core

import "strings"

const (
	overrideBoostPerMatch = 0.12
	overrideBoostCap      = 0.4
	overridePenalty       = 0.05
)

// overrideKeywords maps each category to phrases whose presence in the
// normalized text nudges the vote toward it. Phrases are matched as lowercase
// substrings of the normalized text, so multi-word phrases work.
var overrideKeywords = map[Category][]string{
	CategorySpam: {
		"verify account", "click here", "act now", "limited time",
		"winner", "prize", "lottery", "urgent action required",
		"no prescription", "free money", "guaranteed", "claim your",
	},
	CategoryImportant: {
		"deadline", "urgent", "asap", "critical", "approval needed",
		"action required", "escalation", "overdue", "legal notice",
	},
	CategoryPromotion: {
		"sale", "discount", "off everything", "coupon", "free shipping",
		"limited offer", "shop now", "buy now", "exclusive", "clearance",
	},
	CategorySocial: {
		"invitation", "party", "birthday", "wedding", "rsvp",
		"commented on", "tagged", "meetup", "reunion", "celebrate",
	},
	CategoryUpdates: {
		"newsletter", "unsubscribe", "notification", "order confirmation",
		"has shipped", "statement", "policy update", "password was changed",
	},
	CategoryWork: {
		"sprint", "standup", "pull request", "code review", "quarterly",
		"status report", "project timeline", "onboarding", "deployment",
	},
	CategoryPersonal: {
		"appointment", "prescription", "gym membership", "vet",
		"property tax", "insurance policy", "anniversary",
	},
	CategorySupport: {
		"can t log", "cannot log", "bug report", "error code",
		"how to cancel", "locked out", "refund request", "not working",
	},
	CategoryBilling: {
		"invoice", "payment terms", "net 30", "wire transfer",
		"charged twice", "proration", "auto-renewal", "w9",
	},
}

// OverrideStage applies category keyword boosts to an ensemble vote. It runs
// after voting and before caching, so cached entries always hold the final
// adjusted distribution.
type OverrideStage struct {
	enabled bool
}

// NewOverrideStage creates the keyword adjustment stage.
func NewOverrideStage(enabled bool) *OverrideStage {
	return &OverrideStage{enabled: enabled}
}

// Apply adjusts the vote in place from keyword matches in the normalized
// text: each matched phrase adds overrideBoostPerMatch to its category
// (capped at overrideBoostCap), and when any category matched, unmatched
// categories lose overridePenalty. The result is clamped to [0,1] and
// renormalized so it stays a distribution.
func (o *OverrideStage) Apply(text string, probs []float64, labels []string) {
	if o == nil || !o.enabled || text == "" {
		return
	}

	matches := make([]int, len(labels))
	anyMatched := false
	for i, label := range labels {
		for _, kw := range overrideKeywords[Category(label)] {
			if strings.Contains(text, kw) {
				matches[i]++
			}
		}
		if matches[i] > 0 {
			anyMatched = true
		}
	}
	if !anyMatched {
		return
	}

	var sum float64
	for i := range probs {
		if matches[i] > 0 {
			boost := overrideBoostPerMatch * float64(matches[i])
			if boost > overrideBoostCap {
				boost = overrideBoostCap
			}
			probs[i] += boost
		} else {
			probs[i] -= overridePenalty
		}
		if probs[i] < 0 {
			probs[i] = 0
		}
		if probs[i] > 1 {
			probs[i] = 1
		}
		sum += probs[i]
	}

	if sum <= 0 {
		for i := range probs {
			probs[i] = 1 / float64(len(probs))
		}
		return
	}
	for i := range probs {
		probs[i] /= sum
	}
}
