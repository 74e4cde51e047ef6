package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	prompt "github.com/elk-language/go-prompt"
	pstrings "github.com/elk-language/go-prompt/strings"
	"github.com/kyokomi/emoji/v2"

	"github.com/shu-go/git-cm/commitmsg"
)

var (
	scopeRe  = regexp.MustCompile(`(?i)^[a-z0-9-]+$`)
	footerRe = regexp.MustCompile(`(?i)^(closes|fixes|refs|related to)\s+#\d+`)
)

func (c globalCmd) promptType() string {
	var typ string

	names := c.rule.TypeNames()
	items := make([]prompt.Suggest, 0, len(names))

	for _, k := range names {
		def, ok := c.rule.Types.Get(k)
		if !ok || def.Desc == "" {
			continue
		}

		desc := def.Desc
		if def.Emoji != "" {
			desc = strings.TrimSpace(emoji.Emojize(def.Emoji)) + " " + desc
		}

		items = append(items, prompt.Suggest{
			Text:        k,
			Description: desc,
		})
	}

	typeCompleter := func(in prompt.Document) ([]prompt.Suggest, pstrings.RuneNumber, pstrings.RuneNumber) {
		endIndex := in.CurrentRuneIndex()
		w := in.GetWordBeforeCursor()
		startIndex := endIndex - pstrings.RuneCountInString(w)

		return prompt.FilterHasPrefix(items, w, true), startIndex, endIndex
	}

	for typ == "" {
		typ = prompt.Input(prompt.WithPrefix("Type: "), prompt.WithCompleter(typeCompleter), prompt.WithShowCompletionAtStart())
		if typ == "" {
			fmt.Fprintln(os.Stderr, "type is required")
		}
		if typ != "" && !c.rule.HasType(typ) {
			fmt.Fprintf(os.Stderr, "unknown type, choose one of: %s\n", strings.Join(names, ", "))
			typ = ""
		}
	}

	return typ
}

// promptScope completes from the scope history (most recent first) and
// from scopes suggested by the staged files.
func (c globalCmd) promptScope(suggested string) string {
	items := make([]prompt.Suggest, 0, len(c.scopes)+1)

	for s, t := range c.scopes {
		items = append(items, prompt.Suggest{
			Text:        s,
			Description: t.Local().Format(time.RFC3339),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Description > items[j].Description
	})
	// timestamps are not shown
	for i := range items {
		items[i].Description = ""
	}

	if suggested != "" {
		known := false
		for _, it := range items {
			known = known || it.Text == suggested
		}
		if !known {
			items = append([]prompt.Suggest{{Text: suggested, Description: "from staged files"}}, items...)
		}
	}

	scopeCompleter := func(in prompt.Document) ([]prompt.Suggest, pstrings.RuneNumber, pstrings.RuneNumber) {
		endIndex := in.CurrentRuneIndex()
		w := in.GetWordBeforeCursor()
		startIndex := endIndex - pstrings.RuneCountInString(w)

		return prompt.FilterHasPrefix(items, w, true), startIndex, endIndex
	}

	for {
		scope := prompt.Input(
			prompt.WithPrefix("Scope: "),
			prompt.WithCompleter(scopeCompleter),
			prompt.WithShowCompletionAtStart(),
		)
		scope = strings.TrimSpace(scope)

		if scope == "" || scopeRe.MatchString(scope) {
			return scope
		}
		fmt.Fprintln(os.Stderr, "scope may only contain letters, digits and dashes")
	}
}

func (c globalCmd) promptDesc() string {
	descCompleter := func(in prompt.Document) ([]prompt.Suggest, pstrings.RuneNumber, pstrings.RuneNumber) {
		endIndex := in.CurrentRuneIndex()
		w := in.GetWordBeforeCursor()
		startIndex := endIndex - pstrings.RuneCountInString(w)

		return prompt.FilterHasPrefix(nil, w, true), startIndex, endIndex
	}

	f := commitmsg.NewFormatter(c.rule)

	for {
		desc := prompt.Input(prompt.WithPrefix("Description: "), prompt.WithCompleter(descCompleter))
		desc = commitmsg.CleanSubject(desc)
		if desc == "" {
			fmt.Fprintln(os.Stderr, "description required")
			continue
		}

		printAdvice(os.Stderr, f.AnalyzeSubject(desc))
		return desc
	}
}

func (c globalCmd) promptBody() string {
	var body string

	fmt.Println("Body: (Enter 2 empty lines to finish)")

	prevEmpty := false
	buf := bufio.NewReader(os.Stdin)
	for {
		linebyte, _, err := buf.ReadLine()
		if err != nil {
			break
		}

		line := strings.TrimSpace(string(linebyte))

		if line == "" {
			if prevEmpty {
				break
			}
			prevEmpty = true
		} else {
			prevEmpty = false
		}

		if body != "" {
			body += "\n"
		}
		body += line
	}

	return strings.TrimSpace(body)
}

func (c globalCmd) promptBreakingChange() string {
	bcCompleter := func(in prompt.Document) ([]prompt.Suggest, pstrings.RuneNumber, pstrings.RuneNumber) {
		endIndex := in.CurrentRuneIndex()
		w := in.GetWordBeforeCursor()
		startIndex := endIndex - pstrings.RuneCountInString(w)

		return prompt.FilterHasPrefix(nil, w, true), startIndex, endIndex
	}

	breakingChange := prompt.Input(prompt.WithPrefix("BREAKING CHANGE: "), prompt.WithCompleter(bcCompleter))
	return strings.TrimSpace(breakingChange)
}

// promptFooter asks for issue references (Closes #1, Fixes #2, ...).
func (c globalCmd) promptFooter() string {
	items := []prompt.Suggest{
		{Text: "Closes ", Description: "closes an issue"},
		{Text: "Fixes ", Description: "fixes an issue"},
		{Text: "Refs ", Description: "references an issue"},
		{Text: "Related to ", Description: "relates to an issue"},
	}

	footerCompleter := func(in prompt.Document) ([]prompt.Suggest, pstrings.RuneNumber, pstrings.RuneNumber) {
		endIndex := in.CurrentRuneIndex()
		w := in.GetWordBeforeCursor()
		startIndex := endIndex - pstrings.RuneCountInString(w)

		return prompt.FilterHasPrefix(items, w, true), startIndex, endIndex
	}

	footer := prompt.Input(prompt.WithPrefix("Issues: "), prompt.WithCompleter(footerCompleter))
	footer = strings.TrimSpace(footer)

	if footer != "" && !footerRe.MatchString(footer) {
		fmt.Fprintln(os.Stderr, `note: footer does not look like "Closes #123"`)
	}

	return footer
}
