package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shu-go/git-cm/commitmsg"
)

type reformatCmd struct {
	Type  string `cli:"type,t" help:"commit type to use instead of detecting one"`
	Scope string `cli:"scope,s" help:"scope to put in the header"`
}

// Run rewrites free text (args or stdin) as a conventional message and
// prints it to stdout.
func (c reformatCmd) Run(g globalCmd, args []string) error {
	var raw string
	if len(args) > 0 {
		raw = strings.Join(args, " ")
	} else {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		raw = string(content)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errors.New("nothing to reformat")
	}

	repos, _ := openRepository()
	rule, _ := readRuleFile(repos)

	f := commitmsg.NewFormatter(rule)
	auto := f.AutoFormat(raw, c.Type)

	fmt.Fprintf(os.Stderr, "type: %s (%s confidence)\n", auto.Type, auto.Confidence)

	fmt.Println(f.Format(commitmsg.Message{
		Type:    auto.Type,
		Scope:   c.Scope,
		Subject: auto.Subject,
	}))

	return nil
}
