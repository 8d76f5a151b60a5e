package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobtrail/jobtrail/internal/core"
)

func TestIsJobBoardNotification(t *testing.T) {
	tests := []struct {
		name    string
		content string
		from    string
		subject string
		want    bool
	}{
		{
			name:    "digest phrase",
			content: "here are jobs you may be interested in",
			from:    "someone@example.com",
			want:    true,
		},
		{
			name:    "notification sender prefix",
			from:    "notifications@workable.com",
			content: "something happened",
			want:    true,
		},
		{
			name:    "job board domain",
			from:    "jobs-noreply@linkedin.com",
			subject: "LinkedIn Job Alert: 12 new jobs matching your search",
			want:    true,
		},
		{
			name:    "automated boilerplate",
			content: "this is an automated message, do not respond",
			from:    "system@example.com",
			want:    true,
		},
		{
			name:    "regular email",
			content: "following up on our conversation",
			from:    "jane@techfirm.com",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, core.IsJobBoardNotification(tt.content, tt.from, tt.subject))
		})
	}
}

// Application confirmations short-circuit every other noise signal: job
// boards and real recruiters both send from noreply addresses.
func TestConfirmationOverridesNoiseSignals(t *testing.T) {
	content := "thank you for applying for the position. we will be in touch."

	assert.False(t, core.IsJobBoardNotification(content, "notifications@indeed.com", ""))
	assert.True(t, core.IsJobRelated(content, "notifications@indeed.com", ""))
}

func TestIsJobRelated(t *testing.T) {
	tests := []struct {
		name    string
		content string
		from    string
		subject string
		want    bool
	}{
		{
			name:    "job board alert is discarded",
			from:    "jobs-noreply@linkedin.com",
			subject: "LinkedIn Job Alert: 12 new jobs matching your search",
			content: "unsubscribe at any time",
			want:    false,
		},
		{
			name:    "generic job keyword",
			content: "we reviewed your application for this role",
			from:    "hr@somecompany.com",
			want:    true,
		},
		{
			name:    "recruiter indicator in sender",
			content: "quick chat this week?",
			from:    "recruiter@agency.com",
			want:    true,
		},
		{
			name:    "unrelated personal email",
			content: "are we still on for lunch tomorrow?",
			from:    "friend@gmail.com",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, core.IsJobRelated(tt.content, tt.from, tt.subject))
		})
	}
}
