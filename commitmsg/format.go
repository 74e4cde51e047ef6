package commitmsg

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Message is the set of answers a commit is built from.
// Empty strings mean "not given".
type Message struct {
	Type     string
	Scope    string
	Subject  string
	Body     string
	Breaking string
	Footer   string
}

// AutoResult is what AutoFormat derived from free text.
type AutoResult struct {
	Type       string
	Subject    string
	Confidence string // "high" when the type was given, "medium" when guessed
}

// Suggestion is one piece of advice from AnalyzeSubject.
type Suggestion struct {
	Kind    string // "length", "mood", "case", "period"
	Message string
}

// Analysis is the outcome of AnalyzeSubject.
type Analysis struct {
	Valid       bool
	Suggestions []Suggestion
}

// Formatter renders commit messages according to a Rule.
type Formatter struct {
	rule Rule
}

// NewFormatter returns a Formatter for r.
func NewFormatter(r Rule) Formatter {
	return Formatter{rule: r}
}

// Format renders m as canonical commit text. The body is wrapped to the
// rule's body line length. When both a breaking description and a footer
// are present they are joined directly, with a single blank line before
// the BREAKING CHANGE section; changing this would change the on-disk
// message format.
func (f Formatter) Format(m Message) string {
	header := m.Type
	if m.Scope != "" {
		header += "(" + m.Scope + ")"
	}
	header += ": " + m.Subject

	parts := []string{header}

	if m.Body != "" {
		parts = append(parts, "", WrapText(m.Body, f.rule.MaxBodyLineLength))
	}
	if m.Breaking != "" {
		parts = append(parts, "", "BREAKING CHANGE: "+m.Breaking)
	}
	if m.Footer != "" {
		if m.Breaking == "" {
			parts = append(parts, "")
		}
		parts = append(parts, m.Footer)
	}

	return strings.Join(parts, "\n")
}

// WrapText word-wraps text to max columns, greedily. Existing newlines
// are kept; a single word longer than max overflows on its own line
// rather than being split.
func WrapText(text string, max int) string {
	if text == "" {
		return ""
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}

		cur := words[0]
		for _, w := range words[1:] {
			if len(cur)+1+len(w) <= max {
				cur += " " + w
			} else {
				out = append(out, cur)
				cur = w
			}
		}
		out = append(out, cur)
	}

	return strings.Join(out, "\n")
}

// typeKeywords maps commit types to trigger words, in tie-break order.
var typeKeywords = []struct {
	typ      string
	keywords []string
}{
	{"feat", []string{"add", "create", "implement", "introduce", "new"}},
	{"fix", []string{"fix", "resolve", "repair", "patch", "correct"}},
	{"docs", []string{"doc", "readme", "comment"}},
	{"refactor", []string{"refactor", "restructure", "rework", "simplify", "clean"}},
	{"test", []string{"test", "spec", "coverage"}},
	{"style", []string{"format", "style", "lint", "indent"}},
	{"chore", []string{"chore", "bump", "upgrade", "dependenc"}},
	{"perf", []string{"performance", "perf", "optimize", "speed"}},
}

// DetectType guesses a commit type from free text. The first type whose
// any keyword occurs in the lowercased message wins; "" when nothing
// matches.
func DetectType(message string) string {
	lower := strings.ToLower(message)
	for _, tk := range typeKeywords {
		for _, kw := range tk.keywords {
			if strings.Contains(lower, kw) {
				return tk.typ
			}
		}
	}
	return ""
}

// verbPrefixRe strips a leading "fixed:", "added", "updating" etc. from
// a raw message; the verb ends up encoded in the type instead. The colon
// is optional so that plain "fixed login bug" also loses its verb.
var verbPrefixRe = regexp.MustCompile(`(?i)^(?:fix(?:es|ed|ing)?|add(?:s|ed|ing)?|update(?:s|d|ing)?):?\s+`)

// AutoFormat turns free text into a conventional type + subject.
// detected, when non-empty, is used as the type (confidence "high");
// otherwise DetectType guesses one, falling back to "chore".
func (f Formatter) AutoFormat(raw, detected string) AutoResult {
	confidence := "medium"
	typ := detected
	if typ != "" {
		confidence = "high"
	} else {
		typ = DetectType(raw)
		if typ == "" {
			typ = "chore"
		}
	}

	subject := strings.TrimSpace(raw)
	subject = verbPrefixRe.ReplaceAllString(subject, "")

	if subject != "" {
		r := []rune(subject)
		r[0] = unicode.ToLower(r[0])
		subject = string(r)
	}
	subject = strings.TrimSuffix(subject, ".")

	if len(subject) > f.rule.MaxSubjectLength {
		subject = subject[:f.rule.MaxSubjectLength-3] + "..."
	}

	return AutoResult{Type: typ, Subject: subject, Confidence: confidence}
}

// scopeRules maps path patterns to scope names, in priority order.
var scopeRules = []struct {
	re    *regexp.Regexp
	scope string
}{
	{regexp.MustCompile(`src/api/`), "api"},
	{regexp.MustCompile(`src/(ui|components)/`), "ui"},
	{regexp.MustCompile(`src/db/|migrations/`), "db"},
	{regexp.MustCompile(`src/auth/`), "auth"},
	{regexp.MustCompile(`tests?/`), "test"},
	{regexp.MustCompile(`docs?/|README`), "docs"},
	{regexp.MustCompile(`package(-lock)?\.json|yarn\.lock|pnpm-lock\.yaml|go\.(mod|sum)|Cargo\.(toml|lock)|requirements\.txt|Gemfile`), "deps"},
	{regexp.MustCompile(`\.config\.|config/`), "config"},
}

// SuggestScope proposes a scope for a set of changed file paths. The
// first rule matched by any file wins; otherwise the first directory
// segment of the first file (minus a leading src/) is used. "" when
// nothing can be derived.
func SuggestScope(files []string) string {
	if len(files) == 0 {
		return ""
	}

	for _, rule := range scopeRules {
		for _, f := range files {
			if rule.re.MatchString(f) {
				return rule.scope
			}
		}
	}

	first := strings.TrimPrefix(files[0], "src/")
	if i := strings.Index(first, "/"); i > 0 {
		return first[:i]
	}
	return ""
}

var innerSpaceRe = regexp.MustCompile(`\s+`)

// CleanSubject normalizes a subject line: trims, collapses whitespace
// runs, strips one pair of wrapping quotes and a trailing period.
func CleanSubject(subject string) string {
	s := strings.TrimSpace(subject)
	s = innerSpaceRe.ReplaceAllString(s, " ")

	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}

	return strings.TrimSuffix(s, ".")
}

// AnalyzeSubject critiques a subject line without rejecting it.
func (f Formatter) AnalyzeSubject(subject string) Analysis {
	var sug []Suggestion

	if len(subject) > f.rule.MaxSubjectLength {
		sug = append(sug, Suggestion{
			Kind:    "length",
			Message: fmt.Sprintf("keep the subject at or under %d characters", f.rule.MaxSubjectLength),
		})
	}
	if !IsImperative(subject) {
		sug = append(sug, Suggestion{
			Kind:    "mood",
			Message: `use the imperative mood: "` + ToImperative(subject) + `"`,
		})
	}
	if subject != "" && unicode.IsUpper([]rune(subject)[0]) {
		sug = append(sug, Suggestion{
			Kind:    "case",
			Message: "start the subject with a lowercase letter",
		})
	}
	if strings.HasSuffix(subject, ".") {
		sug = append(sug, Suggestion{
			Kind:    "period",
			Message: "drop the trailing period",
		})
	}

	return Analysis{Valid: len(sug) == 0, Suggestions: sug}
}
