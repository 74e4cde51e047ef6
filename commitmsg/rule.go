// Package commitmsg validates, parses and formats Conventional Commits
// messages. It knows nothing about prompts or git; everything in and out
// is a plain string or struct.
package commitmsg

import (
	"github.com/shu-go/orderedmap"
)

// SubjectCase is a policy for the first character of the subject.
type SubjectCase string

const (
	CaseLowercase SubjectCase = "lowercase"
	CaseUppercase SubjectCase = "uppercase"
	CaseCamel     SubjectCase = "camelcase"
	CaseNone      SubjectCase = "none"
)

// TypeDef describes one commit type.
type TypeDef struct {
	Desc  string `yaml:"description,omitempty" json:"description,omitempty"`
	Emoji string `yaml:"emoji,omitempty" json:"emoji,omitempty"`
}

// Rule parameterizes validation and formatting.
//
// Construct one with Default or New; a Rule is never mutated after that.
// Sanity of the values (MinSubjectLength <= MaxSubjectLength, lowercase
// type keys, non-empty Types) is the caller's responsibility.
type Rule struct {
	Types *orderedmap.OrderedMap[string, TypeDef] `yaml:"types" json:"types"`

	MaxSubjectLength  int `yaml:"maxSubjectLength" json:"maxSubjectLength"`
	MinSubjectLength  int `yaml:"minSubjectLength" json:"minSubjectLength"`
	MaxBodyLineLength int `yaml:"maxBodyLineLength" json:"maxBodyLineLength"`

	EnforceImperativeMood bool        `yaml:"enforceImperativeMood" json:"enforceImperativeMood"`
	SubjectCase           SubjectCase `yaml:"subjectCase" json:"subjectCase"`

	// BreakingTypes lists the types for which a breaking-change
	// question makes sense.
	BreakingTypes []string `yaml:"breakingTypes" json:"breakingTypes"`
}

// Overrides is a partial Rule, as read from a rule file.
// Nil fields fall back to the defaults.
type Overrides struct {
	Types *orderedmap.OrderedMap[string, TypeDef] `yaml:"types,omitempty" json:"types,omitempty"`

	MaxSubjectLength  *int `yaml:"maxSubjectLength,omitempty" json:"maxSubjectLength,omitempty"`
	MinSubjectLength  *int `yaml:"minSubjectLength,omitempty" json:"minSubjectLength,omitempty"`
	MaxBodyLineLength *int `yaml:"maxBodyLineLength,omitempty" json:"maxBodyLineLength,omitempty"`

	EnforceImperativeMood *bool        `yaml:"enforceImperativeMood,omitempty" json:"enforceImperativeMood,omitempty"`
	SubjectCase           *SubjectCase `yaml:"subjectCase,omitempty" json:"subjectCase,omitempty"`

	BreakingTypes []string `yaml:"breakingTypes,omitempty" json:"breakingTypes,omitempty"`
}

// Default returns the stock rule: the Angular type list, 3..72 subject,
// 100-column body, imperative lowercase subjects, breaking changes asked
// for feat and fix.
func Default() Rule {
	return Rule{
		Types:                 DefaultTypes(),
		MaxSubjectLength:      72,
		MinSubjectLength:      3,
		MaxBodyLineLength:     100,
		EnforceImperativeMood: true,
		SubjectCase:           CaseLowercase,
		BreakingTypes:         []string{"feat", "fix"},
	}
}

// New merges o onto the defaults.
func New(o Overrides) Rule {
	r := Default()

	if o.Types != nil && len(o.Types.Keys()) > 0 {
		r.Types = o.Types
	}
	if o.MaxSubjectLength != nil {
		r.MaxSubjectLength = *o.MaxSubjectLength
	}
	if o.MinSubjectLength != nil {
		r.MinSubjectLength = *o.MinSubjectLength
	}
	if o.MaxBodyLineLength != nil {
		r.MaxBodyLineLength = *o.MaxBodyLineLength
	}
	if o.EnforceImperativeMood != nil {
		r.EnforceImperativeMood = *o.EnforceImperativeMood
	}
	if o.SubjectCase != nil {
		r.SubjectCase = *o.SubjectCase
	}
	if o.BreakingTypes != nil {
		r.BreakingTypes = o.BreakingTypes
	}

	return r
}

// DefaultTypes returns the stock type list in its canonical order.
// Keys starting with "#" are comments and are skipped by TypeNames.
func DefaultTypes() *orderedmap.OrderedMap[string, TypeDef] {
	ct := orderedmap.New[string, TypeDef]()
	ct.Set("feat", TypeDef{Desc: "A new feature", Emoji: ":sparkles:"})
	ct.Set("fix", TypeDef{Desc: "A bug fix", Emoji: ":bug:"})
	ct.Set("docs", TypeDef{Desc: "Documentation only changes", Emoji: ":memo:"})
	ct.Set("style", TypeDef{Desc: "Changes that do not affect the meaning of the code", Emoji: ":art:"})
	ct.Set("refactor", TypeDef{Desc: "A code change that neither fixes a bug nor adds a feature", Emoji: ":recycle:"})
	ct.Set("perf", TypeDef{Desc: "A code change that improves performance", Emoji: ":zap:"})
	ct.Set("test", TypeDef{Desc: "Adding missing tests or correcting existing tests", Emoji: ":test_tube:"})
	ct.Set("build", TypeDef{Desc: "Changes that affect the build system or external dependencies", Emoji: ":package:"})
	ct.Set("ci", TypeDef{Desc: "Changes to CI configuration files and scripts", Emoji: ":hammer:"})
	ct.Set("chore", TypeDef{Desc: "Other changes that do not modify src or test files", Emoji: ":wrench:"})
	ct.Set("revert", TypeDef{Desc: "Reverts a previous commit", Emoji: ":rewind:"})
	return ct
}

// TypeNames returns the type tokens in rule order, comment keys excluded.
func (r Rule) TypeNames() []string {
	if r.Types == nil {
		return nil
	}

	names := make([]string, 0, len(r.Types.Keys()))
	for _, k := range r.Types.Keys() {
		if len(k) > 0 && k[0] == '#' {
			continue
		}
		names = append(names, k)
	}
	return names
}

// HasType reports whether typ is a defined (non-comment) type.
// The check is case-sensitive; "FEAT" is not "feat".
func (r Rule) HasType(typ string) bool {
	if r.Types == nil || typ == "" || typ[0] == '#' {
		return false
	}
	_, found := r.Types.Get(typ)
	return found
}

// BreakingEligible reports whether typ should be asked about breaking
// changes.
func (r Rule) BreakingEligible(typ string) bool {
	for _, t := range r.BreakingTypes {
		if t == typ {
			return true
		}
	}
	return false
}
