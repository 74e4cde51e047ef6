package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shu-go/git-cm/commitmsg"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()

	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestTryReadRuleFileYAML(t *testing.T) {
	fn := writeTemp(t, ".cm.yaml", "maxSubjectLength: 50\nsubjectCase: none\n")

	r, err := tryReadRuleFile(fn)
	if err != nil {
		t.Fatal(err)
	}

	if r.MaxSubjectLength != 50 {
		t.Errorf("MaxSubjectLength = %d, want 50", r.MaxSubjectLength)
	}
	if r.SubjectCase != commitmsg.CaseNone {
		t.Errorf("SubjectCase = %q, want none", r.SubjectCase)
	}

	// untouched fields keep their defaults
	if r.MinSubjectLength != 3 {
		t.Errorf("MinSubjectLength = %d, want default 3", r.MinSubjectLength)
	}
	if !r.HasType("feat") || !r.HasType("revert") {
		t.Error("default types should survive a partial override")
	}
}

func TestTryReadRuleFileJSON(t *testing.T) {
	fn := writeTemp(t, ".cm.json",
		`{"types": {"feat": {"description": "feature"}}, "breakingTypes": ["feat"]}`)

	r, err := tryReadRuleFile(fn)
	if err != nil {
		t.Fatal(err)
	}

	names := r.TypeNames()
	if len(names) != 1 || names[0] != "feat" {
		t.Errorf("TypeNames = %v, want [feat]", names)
	}
	if r.BreakingEligible("fix") {
		t.Error("fix should not be breaking-eligible after override")
	}
	if r.MaxSubjectLength != 72 {
		t.Errorf("MaxSubjectLength = %d, want default 72", r.MaxSubjectLength)
	}
}

func TestTryReadRuleFileMissing(t *testing.T) {
	if _, err := tryReadRuleFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestScopesRoundTrip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), ".cm-scopes.yaml")

	now := time.Now().Truncate(time.Second)
	scopes := Scopes{
		"auth":   now.Add(-time.Hour),
		"parser": now,
	}

	if err := writeScopesFile(fn, scopes); err != nil {
		t.Fatal(err)
	}

	got, err := tryReadScopesFile(fn)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d scopes, want 2", len(got))
	}
	if !got["parser"].Equal(scopes["parser"]) {
		t.Errorf("parser = %v, want %v", got["parser"], scopes["parser"])
	}
	if !got["auth"].Equal(scopes["auth"]) {
		t.Errorf("auth = %v, want %v", got["auth"], scopes["auth"])
	}
}

func TestIn(t *testing.T) {
	if !in(".YAML", ".yaml", ".yml") {
		t.Error("in should match case-insensitively")
	}
	if in(".json") {
		t.Error("in with no choices should be false")
	}
}
