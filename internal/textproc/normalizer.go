// Package textproc turns raw email text into the canonical token stream the
// feature extractor consumes. Volatile surface forms (URLs, addresses, phone
// numbers, amounts, dates) are collapsed into placeholder tokens so the
// lexical model can learn "this email contains a link" without memorizing a
// specific link.
package textproc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Placeholder tokens injected by normalization. They match the token pattern
// (\w{2,}) so they survive into the lexical vocabulary.
const (
	TokenURL      = "url_token"
	TokenEmail    = "email_token"
	TokenPhone    = "phone_token"
	TokenMoney    = "money_token"
	TokenDate     = "date_token"
	TokenEmphasis = "emphasis_token"
	TokenQuestion = "question_token"
)

var (
	urlRe      = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
	emailRe    = regexp.MustCompile(`\S+@\S+\.\S+`)
	phoneRe    = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	moneyRe    = regexp.MustCompile(`\$\d+(?:,\d{3})*(?:\.\d{2})?`)
	dateRe     = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	emphasisRe = regexp.MustCompile(`!{2,}`)
	questionRe = regexp.MustCompile(`\?{2,}`)
	htmlTagRe  = regexp.MustCompile(`<[^>]+>`)
	nonWordRe  = regexp.MustCompile(`[^\w\s!?.,]`)
	tokenRe    = regexp.MustCompile(`\w{2,}`)
	upperRe    = regexp.MustCompile(`\b[A-Z]{3,}\b`)
)

// accentStripper decomposes and drops combining marks, mirroring a
// unicode accent-strip pass.
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizedEmail is the canonical form of one email. The raw-text counters
// are captured before case folding so signals like the all-caps ratio are not
// destroyed by normalization.
type NormalizedEmail struct {
	Subject string
	Body    string
	Text    string
	Tokens  []string

	SubjectLen   int
	BodyLen      int
	LinkCount    int
	MoneyCount   int
	Exclamations int
	Questions    int
	CapsRatio    float64
	AllCapsWords int
}

// Normalize cleans a raw subject and body into a NormalizedEmail. It fails
// softly: invalid byte sequences are replaced rather than reported, and empty
// input yields an empty (but valid) result.
func Normalize(subject, body string) *NormalizedEmail {
	subject = sanitize(subject)
	body = sanitize(body)

	n := &NormalizedEmail{
		SubjectLen: utf8.RuneCountInString(subject),
		BodyLen:    utf8.RuneCountInString(body),
	}

	raw := subject + " " + body
	n.LinkCount = len(urlRe.FindAllString(raw, -1))
	n.MoneyCount = len(moneyRe.FindAllString(raw, -1))
	n.Exclamations = strings.Count(raw, "!")
	n.Questions = strings.Count(raw, "?")
	n.CapsRatio = upperRatio(raw)
	n.AllCapsWords = len(upperRe.FindAllString(raw, -1))

	n.Subject = normalizeText(subject)
	n.Body = normalizeText(body)
	n.Text = strings.TrimSpace(n.Subject + " " + n.Body)
	n.Tokens = tokenRe.FindAllString(n.Text, -1)
	return n
}

// NormalizeText treats a bare labeled text (a training example or feedback
// record) as a body-only email.
func NormalizeText(text string) *NormalizedEmail {
	return Normalize("", text)
}

func normalizeText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	if stripped, _, err := transform.String(accentStripper, text); err == nil {
		text = stripped
	}
	text = htmlTagRe.ReplaceAllString(text, " ")
	text = urlRe.ReplaceAllString(text, " "+TokenURL+" ")
	text = emailRe.ReplaceAllString(text, " "+TokenEmail+" ")
	text = phoneRe.ReplaceAllString(text, " "+TokenPhone+" ")
	text = moneyRe.ReplaceAllString(text, " "+TokenMoney+" ")
	text = dateRe.ReplaceAllString(text, " "+TokenDate+" ")
	text = emphasisRe.ReplaceAllString(text, " "+TokenEmphasis+" ")
	text = questionRe.ReplaceAllString(text, " "+TokenQuestion+" ")
	text = nonWordRe.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}

// sanitize replaces invalid UTF-8 with a space instead of failing.
func sanitize(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, " ")
}

func upperRatio(s string) float64 {
	var upper, letters int
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}
