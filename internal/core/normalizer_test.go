package core_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobtrail/jobtrail/internal/core"
)

func TestNormalizeTextStripsMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text lowered",
			input: "Hello World",
			want:  "hello world",
		},
		{
			name:  "tags removed",
			input: "<p>Hello <b>World</b></p>",
			want:  "hello world",
		},
		{
			name:  "style block dropped",
			input: "<style>body { color: red; }</style>Visible",
			want:  "visible",
		},
		{
			name:  "script block dropped",
			input: "<script>alert('x')</script>Visible",
			want:  "visible",
		},
		{
			name:  "entities decoded",
			input: "Fish &amp; Chips &quot;daily&quot; &#39;special&#39;",
			want:  `fish & chips "daily" 'special'`,
		},
		{
			name:  "nbsp collapsed",
			input: "One&nbsp;&nbsp;Two",
			want:  "one two",
		},
		{
			name:  "list items get bullet markers",
			input: "<ul><li>First</li><li>Second</li></ul>",
			want:  "- first\n\n- second",
		},
		{
			name:  "block elements become line breaks",
			input: "<div>one</div><div>two</div>",
			want:  "one\ntwo",
		},
		{
			name:  "excess blank lines collapsed",
			input: "a\n\n\n\n\nb",
			want:  "a\n\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, core.NormalizeText(tt.input))
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"already plain text",
		"<p>Hello <b>World</b></p>",
		"&amp;lt;b&amp;gt; nested entity encoding &amp;amp;",
		"<style>p{}</style><ul><li>x&nbsp;y</li></ul>",
		"Subject:&nbsp;Interview &lt;tomorrow&gt;",
		"a\r\n\r\n\r\nb\tc",
		// Each decode pass strips one level; depth must not be capped.
		"&" + strings.Repeat("amp;", 11) + "lt;b&gt; hello",
		"&" + strings.Repeat("amp;", 40) + "nbsp;deep",
	}
	for _, in := range inputs {
		once := core.NormalizeText(in)
		assert.Equal(t, once, core.NormalizeText(once), "input %q", in)
	}
}

func TestNormalizeTextDeeplyNestedEntities(t *testing.T) {
	in := "&" + strings.Repeat("amp;", 11) + "lt;b&gt; hello"
	assert.Equal(t, "hello", core.NormalizeText(in))
}
