package commitmsg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHeaderOnly(t *testing.T) {
	f := NewFormatter(Default())

	assert.Equal(t, "feat(auth): add login", f.Format(Message{
		Type: "feat", Scope: "auth", Subject: "add login",
	}))
	assert.Equal(t, "docs: describe rule files", f.Format(Message{
		Type: "docs", Subject: "describe rule files",
	}))
}

func TestFormatWithBody(t *testing.T) {
	f := NewFormatter(Default())

	got := f.Format(Message{
		Type:    "feat",
		Subject: "add login",
		Body:    "some longer explanation",
	})
	assert.Equal(t, "feat: add login\n\nsome longer explanation", got)
}

func TestFormatWithFooter(t *testing.T) {
	f := NewFormatter(Default())

	got := f.Format(Message{
		Type:    "fix",
		Scope:   "auth",
		Subject: "resolve login timeout issue",
		Footer:  "Closes #42",
	})
	assert.Equal(t, "fix(auth): resolve login timeout issue\n\nCloses #42", got)
}

func TestFormatBreakingAndFooter(t *testing.T) {
	f := NewFormatter(Default())

	got := f.Format(Message{
		Type:     "feat",
		Subject:  "rework config",
		Body:     "details here",
		Breaking: "rule file renamed",
		Footer:   "Refs #3",
	})
	// breaking and footer join without an extra blank line
	assert.Equal(t,
		"feat: rework config\n\ndetails here\n\nBREAKING CHANGE: rule file renamed\nRefs #3",
		got)
}

func TestFormatNoTrailingNewline(t *testing.T) {
	f := NewFormatter(Default())

	got := f.Format(Message{Type: "chore", Subject: "tidy up", Body: "b", Footer: "Closes #1"})
	assert.False(t, strings.HasSuffix(got, "\n"))
}

func TestFormatWrapsBody(t *testing.T) {
	max := 10
	f := NewFormatter(New(Overrides{MaxBodyLineLength: &max}))

	got := f.Format(Message{Type: "feat", Subject: "add login", Body: "one two three four"})
	assert.Equal(t, "feat: add login\n\none two\nthree four", got)
}

func TestFormatValidateRoundTrip(t *testing.T) {
	rule := Default()
	f := NewFormatter(rule)
	v := NewValidator(rule)

	msgs := []Message{
		{Type: "feat", Scope: "auth", Subject: "add login"},
		{Type: "fix", Subject: "resolve race in watcher", Body: "long story, wrapped as needed"},
		{Type: "chore", Subject: "bump deps", Footer: "Refs #7"},
		{Type: "feat", Subject: "drop legacy flags", Breaking: "flags removed", Footer: "Closes #9"},
	}

	for _, m := range msgs {
		res := v.Validate(f.Format(m))
		assert.True(t, res.Valid, "message %+v, errors %v", m, res.Errors)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	rule := Default()
	f := NewFormatter(rule)
	v := NewValidator(rule)

	msgs := []Message{
		{Type: "feat", Scope: "auth", Subject: "add login"},
		{Type: "fix", Subject: "handle empty input"},
		{Type: "revert", Scope: "ci", Subject: "restore cache step"},
	}

	for _, m := range msgs {
		p := v.Parse(f.Format(m))
		require.NotNil(t, p, "message %+v", m)
		assert.Equal(t, m.Type, p.Type)
		assert.Equal(t, m.Scope, p.Scope)
		assert.Equal(t, m.Subject, p.Subject)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{"empty", "", 10, ""},
		{"fits", "a b", 10, "a b"},
		{"wraps", "a b c d", 3, "a b\nc d"},
		{"long word overflows", "abcdefgh x", 3, "abcdefgh\nx"},
		{"keeps newlines", "one two\nthree four", 9, "one two\nthree\nfour"},
		{"blank line kept", "one\n\ntwo", 10, "one\n\ntwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapText(tt.text, tt.max))
		})
	}
}

func TestWrapTextNeverExceedsLimit(t *testing.T) {
	got := WrapText("several words of ordinary length spread over a line", 12)
	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len(line), 12, "line %q", line)
	}
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"add a login page", "feat"},
		{"fixed login bug", "fix"},
		{"resolve the timeout", "fix"},
		{"update readme", "docs"},
		{"restructure the parser", "refactor"},
		{"more coverage for the wrapper", "test"},
		{"lint everything", "style"},
		{"bump yaml to v3", "chore"},
		{"optimize the hot loop", "perf"},
		{"zzz", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectType(tt.message), "message %q", tt.message)
	}
}

func TestAutoFormat(t *testing.T) {
	f := NewFormatter(Default())

	tests := []struct {
		name     string
		raw      string
		detected string
		want     AutoResult
	}{
		{
			"verb folded into type",
			"fixed login bug", "",
			AutoResult{Type: "fix", Subject: "login bug", Confidence: "medium"},
		},
		{
			"explicit type",
			"login bug", "fix",
			AutoResult{Type: "fix", Subject: "login bug", Confidence: "high"},
		},
		{
			"prefix with colon",
			"update: dependency list", "",
			AutoResult{Type: "chore", Subject: "dependency list", Confidence: "medium"},
		},
		{
			"lowercases and strips period",
			"Added new parser.", "",
			AutoResult{Type: "feat", Subject: "new parser", Confidence: "medium"},
		},
		{
			"nothing recognized",
			"miscellaneous tweaks", "",
			AutoResult{Type: "chore", Subject: "miscellaneous tweaks", Confidence: "medium"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.AutoFormat(tt.raw, tt.detected))
		})
	}
}

func TestAutoFormatTruncates(t *testing.T) {
	f := NewFormatter(Default())

	raw := strings.Repeat("x", 200)
	got := f.AutoFormat(raw, "chore")
	assert.Len(t, got.Subject, 72)
	assert.True(t, strings.HasSuffix(got.Subject, "..."))
}

func TestSuggestScope(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"empty", nil, ""},
		{"auth", []string{"src/auth/login.js", "src/auth/session.js"}, "auth"},
		{"api wins rule order", []string{"src/auth/login.js", "src/api/users.js"}, "api"},
		{"ui components", []string{"src/components/Button.tsx"}, "ui"},
		{"migrations", []string{"migrations/0001_init.sql"}, "db"},
		{"tests", []string{"tests/wrap_test.js"}, "test"},
		{"readme", []string{"README.md"}, "docs"},
		{"lockfile", []string{"package-lock.json"}, "deps"},
		{"config dir", []string{"config/app.yaml"}, "config"},
		{"fallback first segment", []string{"src/payments/stripe.ts"}, "payments"},
		{"fallback without src", []string{"parser/lexer.go"}, "parser"},
		{"no segment", []string{"main.rs"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestScope(tt.files))
		})
	}
}

func TestCleanSubject(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  add   login  ", "add login"},
		{`"add login"`, "add login"},
		{"'add login'", "add login"},
		{"add login.", "add login"},
		{"\"add\tlogin.\"", "add login"},
		{"add login", "add login"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanSubject(tt.in), "input %q", tt.in)
	}
}

func TestAnalyzeSubject(t *testing.T) {
	f := NewFormatter(Default())

	good := f.AnalyzeSubject("add login")
	assert.True(t, good.Valid)
	assert.Empty(t, good.Suggestions)

	bad := f.AnalyzeSubject("Added login.")
	assert.False(t, bad.Valid)
	require.Len(t, bad.Suggestions, 3)

	kinds := make([]string, 0, len(bad.Suggestions))
	for _, s := range bad.Suggestions {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []string{"mood", "case", "period"}, kinds)

	long := f.AnalyzeSubject(strings.Repeat("a", 80))
	assert.False(t, long.Valid)
	require.Len(t, long.Suggestions, 1)
	assert.Equal(t, "length", long.Suggestions[0].Kind)
}
