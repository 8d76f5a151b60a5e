package core

import "strings"

// Confidence scoring constants. The ceiling stays below 1.0 on purpose: a
// heuristic is never absolutely certain.
const (
	baseRegexConfidence  = 0.3
	confidenceCeiling    = 0.95
	DefaultRetainMinimum = 0.2
)

var noreplySenderPatterns = []string{
	"noreply", "no-reply", "donotreply", "do-not-reply",
	"notifications@", "alerts@", "auto-confirm", "mailer@", "bounce",
}

var newsletterBoilerplate = []string{
	"unsubscribe", "newsletter", "digest", "sponsored",
	"marketing", "promotional", "view in browser", "email preferences",
}

var interviewSubjectSignals = []string{
	"interview", "phone screen", "schedule", "availability", "next round",
}

var offerSubjectSignals = []string{
	"offer", "congratulations",
}

// ScoreConfidence combines weak heuristic signals into a bounded confidence
// value for a regex-path classification. Boosts are additive from a low base;
// newsletter boilerplate is penalized even though the noise filter should
// already have caught it.
func ScoreConfidence(content, subject, from string, company, title Optional[string]) float64 {
	text := strings.ToLower(content)
	subj := strings.ToLower(subject)
	sender := strings.ToLower(from)

	score := baseRegexConfidence

	if company.IsSome() {
		score += 0.1
	}
	if title.IsSome() {
		score += 0.1
	}
	if strings.Contains(subj, "application") && strings.Contains(subj, "received") {
		score += 0.1
	}
	if containsAny(subj, interviewSubjectSignals) {
		score += 0.15
	}
	if containsAny(subj, offerSubjectSignals) {
		score += 0.2
	}
	if sender != "" && !containsAny(sender, noreplySenderPatterns) {
		score += 0.1
	}
	if containsAny(text, newsletterBoilerplate) {
		score -= 0.3
	}

	if score < 0 {
		return 0
	}
	if score > confidenceCeiling {
		return confidenceCeiling
	}
	return score
}
