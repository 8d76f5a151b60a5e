package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobtrail/jobtrail/internal/core"
)

func TestDetermineStatus(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    core.Status
	}{
		{
			name:    "rejection",
			content: "we regret to inform you that the position has been filled",
			want:    core.StatusRejected,
		},
		{
			name:    "offer",
			content: "congratulations! please find your offer letter attached",
			want:    core.StatusOffered,
		},
		{
			name:    "interview",
			content: "we would like to schedule a call for a phone screen",
			want:    core.StatusInterviewing,
		},
		{
			name:    "applied",
			content: "your application has been submitted and is under review",
			want:    core.StatusApplied,
		},
		{
			name:    "no indicators defaults to applied",
			content: "hello there",
			want:    core.StatusApplied,
		},
		{
			name:    "boilerplate rejection not masked by position keyword",
			content: "we will no longer consider you for this or future positions",
			want:    core.StatusRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, core.DetermineStatus(tt.content))
		})
	}
}

// Rejection language is checked first so that coincidental interview or offer
// keywords in the same message cannot mask it.
func TestDetermineStatusPrecedence(t *testing.T) {
	content := "unfortunately we went another way, but feel free to schedule a call with us"
	assert.Equal(t, core.StatusRejected, core.DetermineStatus(content))

	content = "congratulations, we would like to schedule your onboarding interview"
	assert.Equal(t, core.StatusOffered, core.DetermineStatus(content))
}
