package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrail/jobtrail/internal/core"
)

func TestParseAIClassification(t *testing.T) {
	raw := `{"status":"interviewing","company":"Acme","job_title":"Software Engineer","confidence":0.9,"reasoning":"scheduling language"}`

	got, err := core.ParseAIClassification(raw)
	require.NoError(t, err)
	assert.Equal(t, core.StatusInterviewing, got.Status)
	assert.Equal(t, 0.9, got.Confidence)

	company, ok := got.Company.Get()
	assert.True(t, ok)
	assert.Equal(t, "Acme", company)
}

// Models wrap their JSON in markdown fences; the first balanced object is
// extracted before parsing.
func TestParseAIClassificationCodeFenced(t *testing.T) {
	raw := "```json\n{\"status\":\"interviewing\",\"company\":null,\"job_title\":null,\"confidence\":0.9}\n```"

	got, err := core.ParseAIClassification(raw)
	require.NoError(t, err)
	assert.Equal(t, core.StatusInterviewing, got.Status)
	assert.False(t, got.Company.IsSome())
	assert.False(t, got.JobTitle.IsSome())
}

func TestParseAIClassificationBracesInsideStrings(t *testing.T) {
	raw := `Sure! {"status":"applied","company":"Curly {Braces} Ltd","job_title":null,"confidence":0.5,"reasoning":"contains } in a value"} trailing prose`

	got, err := core.ParseAIClassification(raw)
	require.NoError(t, err)
	company, _ := got.Company.Get()
	assert.Equal(t, "Curly {Braces} Ltd", company)
}

func TestParseAIClassificationRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "no JSON at all", raw: "I could not classify this email."},
		{name: "unbalanced object", raw: `{"status":"applied"`},
		{name: "unknown status", raw: `{"status":"pending","confidence":0.9}`},
		{name: "confidence above one", raw: `{"status":"applied","confidence":1.5}`},
		{name: "negative confidence", raw: `{"status":"applied","confidence":-0.2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.ParseAIClassification(tt.raw)
			assert.Error(t, err)
		})
	}
}
