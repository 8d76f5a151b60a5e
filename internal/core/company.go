package core

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Domains that never identify an employer: webmail, job boards, HR platform
// vendors and transactional mailers.
var excludedDomainTokens = map[string]bool{
	"gmail": true, "googlemail": true, "google": true, "yahoo": true, "hotmail": true, "outlook": true,
	"aol": true, "icloud": true, "proton": true, "protonmail": true,
	"live": true, "msn": true, "mail": true, "email": true, "gmx": true,
	"linkedin": true, "indeed": true, "glassdoor": true, "ziprecruiter": true,
	"monster": true, "dice": true, "wellfound": true, "hired": true,
	"lever": true, "greenhouse": true, "workday": true, "myworkday": true,
	"jobvite": true, "ashbyhq": true, "smartrecruiters": true,
	"bamboohr": true, "icims": true, "taleo": true, "successfactors": true,
	"recruitee": true, "breezy": true,
	"noreply": true, "no-reply": true, "notifications": true, "notify": true,
	"mailer": true, "bounce": true, "amazonses": true, "sendgrid": true,
	"mailgun": true, "mandrill": true,
}

var domainPrefixes = []string{
	"www.", "mail.", "email.", "hr.", "careers.", "jobs.", "recruiting.",
	"talent.", "apply.", "notification.", "notifications.", "mailer.",
}

var companySuffixes = []string{"corp", "inc", "llc", "ltd", "hq", "co"}

// Generic candidates the pattern path must reject; matching is by equality or
// containment after cleanup.
var genericCompanyTerms = []string{
	"team", "hr", "human resources", "recruiting", "recruitment", "talent",
	"notification", "notifications", "noreply", "no-reply", "careers",
	"jobs", "hiring", "support", "info", "admin", "the company", "company",
	"our company", "us", "we",
}

// Ordered pattern rules for the body/subject path. First match wins.
var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`thank(?:s| you) for applying (?:to|at|with) ([a-z0-9&' ]+)`),
	regexp.MustCompile(`thank you for your (?:interest|application) (?:in|to|at|with) ([a-z0-9&' ]+)`),
	regexp.MustCompile(`your application (?:to|at|with) ([a-z0-9&' ]+)`),
	regexp.MustCompile(`application was sent to ([a-z0-9&' ]+)`),
	regexp.MustCompile(`(?:we|here) at ([a-z0-9&' ]+)`),
	regexp.MustCompile(`(?:position|role|opportunity|opening) (?:at|with) ([a-z0-9&' ]+)`),
	regexp.MustCompile(`(?:the|our) ([a-z0-9&' ]+?) team`),
	regexp.MustCompile(`\b([a-z][a-z0-9&']+) (?:inc|corp|llc|ltd)\.?\b`),
}

var genericSenderNames = []string{
	"noreply", "no-reply", "no reply", "do not reply", "donotreply",
	"notifications", "notification", "careers", "jobs", "talent",
	"recruiting team", "hiring team", "via linkedin", "via indeed",
}

// ExtractCompany derives an employer name from the sender address, the
// subject/body pattern table, or the From display name, in that fixed
// priority order. It is pure and deterministic; absent is None never a
// placeholder.
func ExtractCompany(from, body, subject string) Optional[string] {
	if c, ok := companyFromDomain(from); ok {
		return Some(c)
	}
	if c, ok := companyFromPatterns(strings.ToLower(subject) + "\n" + strings.ToLower(body)); ok {
		return Some(c)
	}
	if c, ok := companyFromDisplayName(from); ok {
		return Some(c)
	}
	return None[string]()
}

func companyFromDomain(from string) (string, bool) {
	addr := senderAddress(from)
	at := strings.LastIndex(addr, "@")
	if at < 0 || at == len(addr)-1 {
		return "", false
	}
	domain := strings.ToLower(addr[at+1:])
	for stripped := true; stripped; {
		stripped = false
		for _, p := range domainPrefixes {
			if strings.HasPrefix(domain, p) {
				domain = domain[len(p):]
				stripped = true
			}
		}
	}
	token, _, _ := strings.Cut(domain, ".")
	if token == "" || excludedDomainTokens[token] {
		return "", false
	}
	for _, suf := range companySuffixes {
		if trimmed := strings.TrimSuffix(token, suf); trimmed != token && len(trimmed) >= 2 {
			token = trimmed
			break
		}
	}
	name := cases.Title(language.English).String(token)
	if len(name) < 2 || len(name) > 50 {
		return "", false
	}
	return name, true
}

func companyFromPatterns(text string) (string, bool) {
	for _, re := range companyPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := cleanCompanyCandidate(m[1])
		if candidate == "" {
			continue
		}
		return cases.Title(language.English).String(candidate), true
	}
	return "", false
}

func cleanCompanyCandidate(raw string) string {
	s := strings.TrimFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	s = strings.Join(strings.Fields(s), " ")
	if s == "" || len(s) < 2 || len(s) > 50 {
		return ""
	}
	if isPurelyNumeric(s) {
		return ""
	}
	tokens := strings.Fields(s)
	for _, g := range genericCompanyTerms {
		if s == g {
			return ""
		}
		if strings.Contains(g, " ") && strings.Contains(s, g) {
			return ""
		}
		for _, t := range tokens {
			if t == g {
				return ""
			}
		}
	}
	return s
}

func companyFromDisplayName(from string) (string, bool) {
	addr, err := mail.ParseAddress(from)
	if err != nil || addr.Name == "" {
		return "", false
	}
	name := strings.TrimSpace(addr.Name)
	lower := strings.ToLower(name)
	for _, g := range genericSenderNames {
		if strings.Contains(lower, g) {
			return "", false
		}
	}
	if looksLikePersonalName(name) {
		return "", false
	}
	if len(name) < 2 || len(name) > 50 {
		return "", false
	}
	return name, true
}

// looksLikePersonalName flags two capitalized tokens with no corporate
// suffix, e.g. "Jane Doe".
func looksLikePersonalName(name string) bool {
	words := strings.Fields(name)
	if len(words) != 2 {
		return false
	}
	for _, w := range words {
		r := []rune(w)
		if !unicode.IsUpper(r[0]) {
			return false
		}
		suffix := strings.ToLower(strings.Trim(w, ".,"))
		for _, s := range append(companySuffixes, "group", "labs", "technologies", "tech", "software", "systems", "solutions") {
			if suffix == s {
				return false
			}
		}
	}
	return true
}

func senderAddress(from string) string {
	if addr, err := mail.ParseAddress(from); err == nil {
		return addr.Address
	}
	return strings.TrimSpace(from)
}

func isPurelyNumeric(s string) bool {
	seen := false
	for _, r := range s {
		if unicode.IsDigit(r) {
			seen = true
			continue
		}
		if !unicode.IsSpace(r) && !unicode.IsPunct(r) {
			return false
		}
	}
	return seen
}
