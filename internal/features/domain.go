package features

import (
	"math"
	"regexp"
	"strings"

	"github.com/inboxkit/email-classifier/internal/textproc"
)

// DomainFeatureCount is the fixed width of the domain slice. The slot order
// is part of the model contract: vectors produced for training and inference
// must line up, so slots are never reordered, only appended (which requires
// retraining).
const DomainFeatureCount = 15

// Domain feature slot indexes.
const (
	SlotUrgency = iota
	SlotAction
	SlotMeeting
	SlotSpamPatterns
	SlotImportantPatterns
	SlotPromotionPatterns
	SlotSubjectLen
	SlotBodyLen
	SlotLinkCount
	SlotHasURL
	SlotMoneyCount
	SlotHasMoney
	SlotExclamations
	SlotCapsRatio
	SlotSentiment
)

var urgencyWords = []string{"urgent", "asap", "immediate", "immediately", "now", "today", "deadline"}

var actionWords = []string{"click", "buy", "order", "subscribe", "register", "download", "claim", "verify"}

var meetingWords = []string{"meeting", "standup", "schedule", "calendar", "appointment", "call", "review"}

var positiveWords = []string{"thanks", "thank", "great", "good", "congratulations", "appreciate", "happy", "well"}

var negativeWords = []string{"problem", "issue", "error", "fail", "failed", "broken", "complaint", "wrong", "overdue"}

// Pattern families carried over from the production keyword tables. Matched
// against the normalized text, so money amounts appear as money_token and
// !!-runs as emphasis_token.
var spamPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(win|won|winner|congratulations|prize|claim|free|click here|act now|limited offer)\b`),
	regexp.MustCompile(`\b(urgent|verify|suspend|unusual activity|confirm|act immediately)\b`),
	regexp.MustCompile(`\bmoney_token\b`),
	regexp.MustCompile(`\bemphasis_token\b`),
}

var importantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(meeting|deadline|urgent|asap|important|critical|action required)\b`),
	regexp.MustCompile(`\b(invoice|payment|contract|agreement|legal)\b`),
	regexp.MustCompile(`\b(security|alert|warning|notification)\b`),
	regexp.MustCompile(`\b(approve|approval|review|confirm)\b`),
}

var promotionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(sale|discount|offer|deal|save|coupon|special)\b`),
	regexp.MustCompile(`\b(new product|launch|collection|season)\b`),
	regexp.MustCompile(`\b(exclusive|limited time|today only|flash sale)\b`),
	regexp.MustCompile(`\d+%?\s*off\b`),
}

// DomainFeatures derives the fixed-length signal slice from a normalized
// email. Pure and deterministic: no learned state, identical input always
// yields an identical slice. Length and count slots are log-damped so the
// linear sub-model is not dominated by raw body size.
func DomainFeatures(n *textproc.NormalizedEmail) [DomainFeatureCount]float64 {
	var d [DomainFeatureCount]float64

	d[SlotUrgency] = float64(countWordHits(n.Tokens, urgencyWords))
	d[SlotAction] = float64(countWordHits(n.Tokens, actionWords))
	d[SlotMeeting] = float64(countWordHits(n.Tokens, meetingWords))
	d[SlotSpamPatterns] = float64(countPatternHits(n.Text, spamPatterns))
	d[SlotImportantPatterns] = float64(countPatternHits(n.Text, importantPatterns))
	d[SlotPromotionPatterns] = float64(countPatternHits(n.Text, promotionPatterns))
	d[SlotSubjectLen] = math.Log1p(float64(n.SubjectLen))
	d[SlotBodyLen] = math.Log1p(float64(n.BodyLen))
	d[SlotLinkCount] = math.Log1p(float64(n.LinkCount))
	if n.LinkCount > 0 || strings.Contains(n.Text, textproc.TokenURL) {
		d[SlotHasURL] = 1
	}
	d[SlotMoneyCount] = math.Log1p(float64(n.MoneyCount))
	if n.MoneyCount > 0 || strings.Contains(n.Text, textproc.TokenMoney) {
		d[SlotHasMoney] = 1
	}
	d[SlotExclamations] = math.Log1p(float64(n.Exclamations))
	d[SlotCapsRatio] = n.CapsRatio
	d[SlotSentiment] = float64(countWordHits(n.Tokens, positiveWords) - countWordHits(n.Tokens, negativeWords))

	return d
}

func countWordHits(tokens []string, words []string) int {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	var hits int
	for _, t := range tokens {
		if _, ok := set[t]; ok {
			hits++
		}
	}
	return hits
}

func countPatternHits(text string, patterns []*regexp.Regexp) int {
	var hits int
	for _, p := range patterns {
		if p.MatchString(text) {
			hits++
		}
	}
	return hits
}
