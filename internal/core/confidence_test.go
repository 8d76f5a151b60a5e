package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobtrail/jobtrail/internal/core"
)

func TestScoreConfidenceBounds(t *testing.T) {
	// Every boost at once still stays under the ceiling.
	score := core.ScoreConfidence(
		"we are delighted",
		"Application received - interview schedule - offer congratulations",
		"jane.doe@initech.com",
		core.Some("Initech"),
		core.Some("Software Engineer"),
	)
	assert.Equal(t, 0.95, score)

	// Every penalty at once never goes below zero.
	score = core.ScoreConfidence(
		"unsubscribe from this newsletter",
		"",
		"noreply@mailer.example.com",
		core.None[string](),
		core.None[string](),
	)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.Less(t, score, core.DefaultRetainMinimum)
}

func TestScoreConfidenceBoosts(t *testing.T) {
	base := core.ScoreConfidence("plain text", "", "", core.None[string](), core.None[string]())
	assert.InDelta(t, 0.3, base, 1e-9)

	withCompany := core.ScoreConfidence("plain text", "", "", core.Some("Acme"), core.None[string]())
	assert.InDelta(t, 0.4, withCompany, 1e-9)

	withBoth := core.ScoreConfidence("plain text", "", "", core.Some("Acme"), core.Some("Engineer"))
	assert.InDelta(t, 0.5, withBoth, 1e-9)

	personalSender := core.ScoreConfidence("plain text", "", "jane@acme.com", core.None[string](), core.None[string]())
	assert.InDelta(t, 0.4, personalSender, 1e-9)

	noreplySender := core.ScoreConfidence("plain text", "", "noreply@acme.com", core.None[string](), core.None[string]())
	assert.InDelta(t, 0.3, noreplySender, 1e-9)
}

func TestScoreConfidenceNewsletterPenalty(t *testing.T) {
	clean := core.ScoreConfidence("looking forward to it", "", "jane@acme.com", core.None[string](), core.None[string]())
	dirty := core.ScoreConfidence("looking forward to it. unsubscribe here.", "", "jane@acme.com", core.None[string](), core.None[string]())
	assert.InDelta(t, clean-0.3, dirty, 1e-9)
}
