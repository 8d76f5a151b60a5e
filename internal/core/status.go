package core

import "strings"

// statusRule pairs a lifecycle status with its indicator phrases. Rules are
// evaluated in declaration order and the first one with any substring match
// wins: rejection language is the most distinctive and must not be masked by
// interview or offer keywords appearing in the same boilerplate.
type statusRule struct {
	status     Status
	indicators []string
}

var statusRules = []statusRule{
	{StatusRejected, []string{
		"we regret to inform",
		"regret to inform you",
		"moving forward with other candidates",
		"move forward with other candidates",
		"decided to move forward with other",
		"pursue other candidates",
		"other applicants",
		"unfortunately",
		"not selected",
		"not been selected",
		"position has been filled",
		"no longer under consideration",
		"no longer consider",
		"will not be moving forward",
		"not moving forward with your",
		"unable to offer you",
	}},
	{StatusOffered, []string{
		"pleased to offer",
		"excited to offer",
		"happy to offer",
		"pleased to extend",
		"extend an offer",
		"offer of employment",
		"offer letter",
		"job offer",
		"congratulations",
		"start date",
		"compensation package",
		"welcome aboard",
		"welcome to the team",
	}},
	{StatusInterviewing, []string{
		"interview",
		"phone screen",
		"phone call",
		"video call",
		"next round",
		"next steps in the process",
		"next step in our process",
		"schedule a call",
		"schedule a time",
		"schedule some time",
		"technical assessment",
		"coding challenge",
		"take-home",
		"meet the team",
		"speak with you",
	}},
	{StatusApplied, []string{
		"application received",
		"we have received your application",
		"received your application",
		"thank you for applying",
		"thanks for applying",
		"application has been submitted",
		"successfully submitted",
		"under review",
		"being reviewed",
		"thank you for your interest",
	}},
}

// DetermineStatus classifies text into a lifecycle status by strict indicator
// precedence: rejected, then offered, then interviewing, then applied. When
// nothing matches the default is applied. Ghosted is never assigned here; it
// is reserved for the AI path and manual overrides.
func DetermineStatus(content string) Status {
	text := strings.ToLower(content)
	for _, rule := range statusRules {
		for _, phrase := range rule.indicators {
			if strings.Contains(text, phrase) {
				return rule.status
			}
		}
	}
	return StatusApplied
}
