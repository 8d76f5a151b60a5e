package core

import "strings"

// Application-confirmation language overrides every noise signal: job boards
// and real recruiters both send from noreply addresses, so a confirmation is
// never discarded as a digest.
var confirmationPhrases = []string{
	"thank you for applying",
	"thanks for applying",
	"application received",
	"application has been received",
	"we have received your application",
	"we received your application",
	"your application has been submitted",
	"application was sent to",
}

// "thank you for your interest" only counts as a confirmation when it
// co-occurs with application language.
var interestQualifiers = []string{"application", "position", "role"}

var notificationSenderPrefixes = []string{
	"notifications@",
	"notification@",
	"alerts@",
	"alert@",
	"digest@",
	"jobs-noreply",
	"jobalerts",
	"job-alerts",
	"updates@",
	"newsletter@",
	"marketing@",
}

var jobBoardDomains = []string{
	"linkedin.com",
	"indeed.com",
	"glassdoor.com",
	"ziprecruiter.com",
	"monster.com",
	"dice.com",
	"wellfound.com",
	"angel.co",
	"hired.com",
	"otta.com",
	"simplyhired.com",
}

var digestPhrases = []string{
	"jobs you may be interested in",
	"new jobs matching",
	"jobs matching your search",
	"job alert",
	"recommended jobs",
	"jobs for you",
	"recommended for you",
	"daily digest",
	"weekly digest",
	"unsubscribe",
	"sponsored",
	"view all jobs",
	"your job search",
}

var automatedPhrases = []string{
	"this is an automated message",
	"this is an automated email",
	"[automated]",
	"do not reply to this email",
	"automated notification",
}

var jobKeywords = []string{
	"job",
	"position",
	"role",
	"career",
	"opportunity",
	"hiring",
	"recruitment",
	"application",
	"interview",
	"offer",
	"candidate",
}

var recruiterIndicators = []string{
	"recruiter",
	"recruiting",
	"talent acquisition",
	"hiring manager",
	"talent team",
	"people operations",
	"staffing",
	"sourcer",
}

func isApplicationConfirmation(text string) bool {
	for _, p := range confirmationPhrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	if strings.Contains(text, "thank you for your interest") {
		for _, q := range interestQualifiers {
			if strings.Contains(text, q) {
				return true
			}
		}
	}
	return false
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// IsJobBoardNotification reports whether a message is a job-board digest or
// other automated noise to be discarded. Matching is substring-based and
// case-insensitive; no stemming.
func IsJobBoardNotification(content, from, subject string) bool {
	text := strings.ToLower(subject) + "\n" + strings.ToLower(content)
	sender := strings.ToLower(from)

	if isApplicationConfirmation(text) {
		return false
	}
	if containsAny(sender, notificationSenderPrefixes) {
		return true
	}
	if containsAny(sender, jobBoardDomains) {
		return true
	}
	if containsAny(text, digestPhrases) {
		return true
	}
	if containsAny(text, automatedPhrases) {
		return true
	}
	return false
}

// IsJobRelated reports whether a message concerns an actual job application.
// Noise loses to the confirmation override, then wins over everything else.
func IsJobRelated(content, from, subject string) bool {
	if IsJobBoardNotification(content, from, subject) {
		return false
	}

	text := strings.ToLower(subject) + "\n" + strings.ToLower(content)
	sender := strings.ToLower(from)

	if isApplicationConfirmation(text) {
		return true
	}
	if containsAny(text, jobKeywords) {
		return true
	}
	for _, d := range jobBoardDomains {
		if strings.Contains(sender, d) {
			return true
		}
	}
	if containsAny(text, recruiterIndicators) || containsAny(sender, recruiterIndicators) {
		return true
	}
	return false
}
