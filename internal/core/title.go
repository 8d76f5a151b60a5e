package core

import (
	"regexp"
	"strings"
	"unicode"
)

// Ordered pattern rules for title extraction; first match in priority order
// wins, known-title vocabulary and seniority prefixes come after the explicit
// phrasings.
var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`applied for(?: the)? ([a-z0-9/&+.' -]+?) (?:position|role|opening|job)`),
	regexp.MustCompile(`applying for(?: the)? ([a-z0-9/&+.' -]+?) (?:position|role|opening|job)`),
	regexp.MustCompile(`application for(?: the)? ([a-z0-9/&+.' -]+?) (?:position|role|opening|job)`),
	regexp.MustCompile(`for the ([a-z0-9/&+.' -]+?) (?:position|role)`),
	regexp.MustCompile(`as an? ([a-z0-9/&+.' -]+?) (?:position|role|at\b)`),
	regexp.MustCompile(`interested in(?: the| our)? ([a-z0-9/&+.' -]+?) (?:position|role|opening|opportunity)`),
}

var seniorityPrefixes = []string{
	"senior", "sr", "sr.", "lead", "staff", "principal", "junior", "jr",
	"jr.", "associate", "head of",
}

// Fixed vocabulary of common role names, most specific first.
var knownTitles = []string{
	"senior software engineer",
	"machine learning engineer",
	"site reliability engineer",
	"quality assurance engineer",
	"full stack developer",
	"front end developer",
	"back end developer",
	"frontend developer",
	"backend developer",
	"frontend engineer",
	"backend engineer",
	"software engineer",
	"software developer",
	"software architect",
	"solutions architect",
	"web developer",
	"mobile developer",
	"ios developer",
	"android developer",
	"devops engineer",
	"platform engineer",
	"cloud engineer",
	"security engineer",
	"data engineer",
	"data scientist",
	"data analyst",
	"business analyst",
	"systems analyst",
	"qa engineer",
	"sdet",
	"engineering manager",
	"product manager",
	"project manager",
	"program manager",
	"product designer",
	"ux designer",
	"ui designer",
	"ui/ux designer",
	"graphic designer",
	"technical writer",
	"scrum master",
	"database administrator",
	"network engineer",
	"support engineer",
	"sales engineer",
	"account manager",
	"marketing manager",
	"customer success manager",
	"research scientist",
	"intern",
}

var fillerTitleTerms = map[string]bool{
	"position": true, "role": true, "application": true, "job": true,
	"team": true, "opportunity": true, "opening": true, "career": true,
	"new": true, "this": true, "the": true,
}

// Acronyms override default word capitalization.
var titleAcronyms = map[string]string{
	"ui":     "UI",
	"ux":     "UX",
	"ui/ux":  "UI/UX",
	"api":    "API",
	"aws":    "AWS",
	"gcp":    "GCP",
	"ios":    "iOS",
	"devops": "DevOps",
	"qa":     "QA",
	"sre":    "SRE",
	"sdet":   "SDET",
	"ml":     "ML",
	"ai":     "AI",
	"it":     "IT",
	"php":    "PHP",
	"sql":    "SQL",
	"nlp":    "NLP",
}

// ExtractJobTitle pulls a role name out of the subject and body. Pure and
// deterministic; returns None when no rule matches.
func ExtractJobTitle(content, subject string) Optional[string] {
	text := strings.ToLower(subject) + "\n" + strings.ToLower(content)

	for _, re := range titlePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if t, ok := cleanTitleCandidate(m[1]); ok {
				return Some(t)
			}
		}
	}

	for _, known := range knownTitles {
		idx := strings.Index(text, known)
		if idx < 0 {
			continue
		}
		candidate := withSeniorityPrefix(text, known, idx)
		if t, ok := cleanTitleCandidate(candidate); ok {
			return Some(t)
		}
	}

	return None[string]()
}

// withSeniorityPrefix widens a vocabulary match to include a preceding
// seniority word, so "staff data engineer" is not reported as just
// "data engineer".
func withSeniorityPrefix(text, match string, idx int) string {
	prefix := strings.TrimRight(text[:idx], " ")
	for _, sen := range seniorityPrefixes {
		if strings.HasSuffix(prefix, sen) {
			start := len(prefix) - len(sen)
			if start == 0 || !unicode.IsLetter(rune(prefix[start-1])) {
				return sen + " " + match
			}
		}
	}
	return match
}

func cleanTitleCandidate(raw string) (string, bool) {
	s := strings.TrimFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || (unicode.IsPunct(r) && r != '/' && r != '.')
	})
	s = strings.Join(strings.Fields(s), " ")
	if len(s) < 3 || len(s) > 80 {
		return "", false
	}
	if isPurelyNumeric(s) || !containsLetter(s) {
		return "", false
	}
	if fillerTitleTerms[s] {
		return "", false
	}
	return capitalizeTitleWords(s), true
}

func capitalizeTitleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if acr, ok := titleAcronyms[w]; ok {
			words[i] = acr
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
