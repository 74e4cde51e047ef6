package main

import (
	"errors"
	"io"
	"os"

	"github.com/shu-go/git-cm/commitmsg"
)

type checkCmd struct {
	Message string `cli:"message,m" help:"message text to check"`
	Head    bool   `cli:"head" help:"check the HEAD commit message"`
}

// Run validates a message taken from -m, a file argument, --head, or
// stdin, in that order. Returns an error (nonzero exit) when invalid.
func (c checkCmd) Run(g globalCmd, args []string) error {
	msg, err := c.readMessage(args)
	if err != nil {
		return err
	}

	// outside a repository the defaults still apply
	repos, _ := openRepository()
	rule, _ := readRuleFile(repos)

	v := commitmsg.NewValidator(rule)
	res := v.Validate(msg)
	printResult(os.Stderr, res)

	if p := v.Parse(msg); p != nil {
		printAdvice(os.Stderr, commitmsg.NewFormatter(rule).AnalyzeSubject(p.Subject))
	}

	if !res.Valid {
		return errors.New("invalid commit message")
	}
	return nil
}

func (c checkCmd) readMessage(args []string) (string, error) {
	if c.Message != "" {
		return c.Message, nil
	}

	if len(args) > 0 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(content), nil
	}

	if c.Head {
		repos, err := openRepository()
		if err != nil {
			return "", err
		}
		return headMessage(repos)
	}

	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
