package commitmsg

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// headerRe matches "type(scope): subject". Scope is optional.
var headerRe = regexp.MustCompile(`^(\w+)(?:\(([\w-]+)\))?:\s*(.+)$`)

// footerStartRe marks the line that begins the footer block.
var footerStartRe = regexp.MustCompile(`(?i)^(closes|fixes|refs)\b`)

// Result is the outcome of Validate. Errors are human-readable, one
// per violated rule, structural errors first.
type Result struct {
	Valid  bool
	Errors []string
}

// Parsed is a commit message decomposed by Parse. Absent scope, body
// and footer are empty strings.
type Parsed struct {
	Type     string
	Scope    string
	Subject  string
	Body     string
	Footer   string
	Breaking bool
}

// Validator checks raw commit messages against a Rule.
type Validator struct {
	rule Rule
}

// NewValidator returns a Validator for r.
func NewValidator(r Rule) Validator {
	return Validator{rule: r}
}

// Validate checks message and reports every violated rule.
// It never fails on malformed input; a bad message is a normal result.
func (v Validator) Validate(message string) Result {
	if strings.TrimSpace(message) == "" {
		return Result{Errors: []string{"commit message cannot be empty"}}
	}

	lines := strings.Split(message, "\n")

	m := headerRe.FindStringSubmatch(lines[0])
	if m == nil {
		return Result{Errors: []string{"header must follow format type(scope): subject"}}
	}
	typ, subject := m[1], m[3]

	var errs []string

	// Membership is case-sensitive, so "FEAT" fails both checks.
	if !v.rule.HasType(typ) {
		errs = append(errs, fmt.Sprintf("invalid type %q, allowed types: %s",
			typ, strings.Join(v.rule.TypeNames(), ", ")))
	}
	if typ != strings.ToLower(typ) {
		errs = append(errs, "type must be lowercase")
	}

	errs = append(errs, v.ValidateSubject(subject)...)

	if len(lines) >= 3 {
		errs = append(errs, v.ValidateBody(lines[2:])...)
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// ValidateSubject checks one subject line against the rule.
func (v Validator) ValidateSubject(subject string) []string {
	var errs []string

	if len(subject) > v.rule.MaxSubjectLength {
		errs = append(errs, fmt.Sprintf("subject too long: %d > %d characters",
			len(subject), v.rule.MaxSubjectLength))
	}
	if len(subject) < v.rule.MinSubjectLength {
		errs = append(errs, fmt.Sprintf("subject too short: %d < %d characters",
			len(subject), v.rule.MinSubjectLength))
	}
	if strings.HasSuffix(subject, ".") {
		errs = append(errs, "subject must not end with a period")
	}
	if v.rule.EnforceImperativeMood && !IsImperative(subject) {
		errs = append(errs, fmt.Sprintf("subject should use the imperative mood (%q)",
			ToImperative(subject)))
	}
	if v.rule.SubjectCase == CaseLowercase && subject != "" {
		if unicode.IsUpper([]rune(subject)[0]) {
			errs = append(errs, "subject must start with a lowercase letter")
		}
	}

	return errs
}

// ValidateBody checks the body/footer lines. Line numbers in the errors
// are 1-based within the passed block.
func (v Validator) ValidateBody(lines []string) []string {
	var errs []string
	for i, line := range lines {
		if len(line) > v.rule.MaxBodyLineLength {
			errs = append(errs, fmt.Sprintf("body line %d too long: %d > %d characters",
				i+1, len(line), v.rule.MaxBodyLineLength))
		}
	}
	return errs
}

// moodRules maps leading non-imperative inflections to the base verb.
// Evaluated in order; first match wins.
var moodRules = []struct {
	re   *regexp.Regexp
	base string
}{
	{regexp.MustCompile(`(?i)^(?:adds|adding|added)\s+`), "add"},
	{regexp.MustCompile(`(?i)^(?:fixes|fixing|fixed)\s+`), "fix"},
	{regexp.MustCompile(`(?i)^(?:updates|updating|updated)\s+`), "update"},
	{regexp.MustCompile(`(?i)^(?:removes|removing|removed)\s+`), "remove"},
	{regexp.MustCompile(`(?i)^(?:creates|creating|created)\s+`), "create"},
	{regexp.MustCompile(`(?i)^(?:implements|implementing|implemented)\s+`), "implement"},
	{regexp.MustCompile(`(?i)^(?:changes|changing|changed)\s+`), "change"},
}

// IsImperative reports whether subject reads as a command. It only
// recognizes inflections of a handful of common verbs; anything else
// passes. A heuristic, not grammar.
func IsImperative(subject string) bool {
	for _, r := range moodRules {
		if r.re.MatchString(subject) {
			return false
		}
	}
	return true
}

// ToImperative rewrites a recognized leading inflection to its base
// form ("added login" -> "add login"). Unrecognized subjects pass
// through unchanged.
func ToImperative(subject string) string {
	for _, r := range moodRules {
		if r.re.MatchString(subject) {
			return r.re.ReplaceAllString(subject, r.base+" ")
		}
	}
	return subject
}

// Parse decomposes message into its structural parts, or returns nil
// when the header does not match.
func (v Validator) Parse(message string) *Parsed {
	lines := strings.Split(message, "\n")

	m := headerRe.FindStringSubmatch(lines[0])
	if m == nil {
		return nil
	}

	p := Parsed{
		Type:    m[1],
		Scope:   m[2],
		Subject: m[3],
	}

	// The body starts after the first blank line that still has content
	// below it.
	var block []string
	for i := 1; i < len(lines)-1; i++ {
		if strings.TrimSpace(lines[i]) == "" {
			block = lines[i+1:]
			break
		}
	}
	if len(block) == 0 {
		return &p
	}

	footerAt := -1
	for i, line := range block {
		if strings.HasPrefix(line, "BREAKING CHANGE:") || footerStartRe.MatchString(line) {
			footerAt = i
			break
		}
	}

	if footerAt < 0 {
		p.Body = strings.TrimSpace(strings.Join(block, "\n"))
	} else {
		p.Body = strings.TrimSpace(strings.Join(block[:footerAt], "\n"))
		p.Footer = strings.TrimSpace(strings.Join(block[footerAt:], "\n"))
		p.Breaking = strings.Contains(p.Footer, "BREAKING CHANGE:")
	}

	return &p
}
