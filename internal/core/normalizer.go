package core

import (
	"regexp"
	"strings"
)

var (
	styleBlockRe  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	scriptBlockRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	commentRe     = regexp.MustCompile(`(?s)<!--.*?-->`)
	lineBreakRe   = regexp.MustCompile(`(?i)<(?:br\s*/?|/p|/div|/tr|/h[1-6]|/ul|/ol|/li|/table|/blockquote)>`)
	listItemRe    = regexp.MustCompile(`(?i)<li[^>]*>`)
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	spaceRunRe    = regexp.MustCompile(`[ \t\r\x{00a0}]+`)
	blankLineRe   = regexp.MustCompile(`\n{3,}`)
	lineEdgeRe    = regexp.MustCompile(`[ \t]*\n[ \t]*`)
)

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&nbsp;", " ",
)

// NormalizeText lowers and flattens a raw email body into plain text suitable
// for substring and pattern matching. Block-level elements become line
// breaks, list items get a bullet marker, style/script content is dropped and
// entities are decoded. The pass runs until a fixed point so that decoded
// entities cannot reintroduce markup, which makes the whole function
// idempotent.
func NormalizeText(raw string) string {
	s := raw
	// Rewriting only ever removes markup, so a changing pass shrinks the
	// string (beyond a first case-folding pass); the length bound guarantees
	// termination without cutting any input short.
	for i := 0; i <= len(raw); i++ {
		next := normalizePass(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

func normalizePass(raw string) string {
	s := strings.ToLower(raw)

	s = styleBlockRe.ReplaceAllString(s, " ")
	s = scriptBlockRe.ReplaceAllString(s, " ")
	s = commentRe.ReplaceAllString(s, " ")
	s = lineBreakRe.ReplaceAllString(s, "\n")
	s = listItemRe.ReplaceAllString(s, "\n- ")
	s = tagRe.ReplaceAllString(s, " ")
	s = entityReplacer.Replace(s)

	s = spaceRunRe.ReplaceAllString(s, " ")
	s = lineEdgeRe.ReplaceAllString(s, "\n")
	s = blankLineRe.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}
