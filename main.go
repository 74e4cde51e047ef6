package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/shu-go/gli"

	"github.com/shu-go/git-cm/commitmsg"
)

const (
	userConfigFolder = "git-cm"

	defaultRuleFileName   = ".cm"
	defaultScopesFileName = ".cm-scopes"

	configSection      = "cm"
	configRule         = "rule"
	configScopeHistory = "scopes"
)

type globalCmd struct {
	repository *git.Repository

	rule commitmsg.Rule

	scopesFileName string
	scopes         Scopes

	All bool `cli:"all,a" help:"commit all changed files"`

	Message string `cli:"message,m" help:"build the message from free text instead of prompting"`

	Debug bool `cli:"debug" default:"false" help:"do not commit, do output to stdout"`

	Gen      genCmd      `cli:"generate,gen" help:"generate rule file"`
	Check    checkCmd    `cli:"check,lint" help:"validate a commit message"`
	Reformat reformatCmd `cli:"reformat,fmt" help:"rewrite free text as a conventional message"`
}

func (c globalCmd) Run() error {
	repos, err := openRepository()
	if err != nil {
		return err
	}
	c.repository = repos

	wt, err := repos.Worktree()
	if err != nil {
		return err
	}

	if !c.Debug && c.All {
		if err := stageAll(wt); err != nil {
			return err
		}
	}

	st, err := wt.Status()
	if err != nil {
		return err
	}
	if !hasStaged(st) {
		fmt.Fprintln(os.Stderr, "no changes")

		if !c.Debug {
			return nil
		}
	}

	if err := c.prepare(repos); err != nil {
		return err
	}

	var msg string
	if c.Message != "" {
		msg = c.quickMessage(stagedFiles(st))
	} else {
		msg = c.buildupCommitMessage(stagedFiles(st))
	}

	res := commitmsg.NewValidator(c.rule).Validate(msg)
	printResult(os.Stderr, res)
	if !res.Valid && !c.Debug {
		return errors.New("not committed")
	}

	if c.Debug {
		fmt.Println("----------")
		fmt.Println(msg)
		return nil
	}

	return commitWithGit(msg)
}

func (c *globalCmd) prepare(repos *git.Repository) error {
	c.rule, _ = readRuleFile(repos)

	// scope history

	c.scopes, c.scopesFileName = readScopesFile(repos)
	if c.scopes == nil {
		c.scopes = make(Scopes)
	}

	return nil
}

// quickMessage builds the whole message from -m free text: the type is
// detected from the wording, the scope from the staged files.
func (c globalCmd) quickMessage(files []string) string {
	f := commitmsg.NewFormatter(c.rule)

	auto := f.AutoFormat(c.Message, "")
	scope := commitmsg.SuggestScope(files)

	if c.Debug {
		fmt.Fprintf(os.Stderr, "detected type %s (%s confidence)\n", auto.Type, auto.Confidence)
	}

	return f.Format(commitmsg.Message{
		Type:    auto.Type,
		Scope:   scope,
		Subject: auto.Subject,
	})
}

func (c globalCmd) buildupCommitMessage(files []string) string {
	typ := c.promptType()
	scope := c.promptScope(commitmsg.SuggestScope(files))
	desc := c.promptDesc()
	body := c.promptBody()

	var breakingChange string
	if c.rule.BreakingEligible(typ) {
		breakingChange = c.promptBreakingChange()
	}

	footer := c.promptFooter()

	// write back scope history

	if scope != "" && c.scopesFileName != "" {
		c.scopes[scope] = time.Now()

		if err := writeScopesFile(c.scopesFileName, c.scopes); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: write scopes: %v\n", err)
		}
	}

	//---

	f := commitmsg.NewFormatter(c.rule)
	return f.Format(commitmsg.Message{
		Type:     typ,
		Scope:    scope,
		Subject:  desc,
		Body:     body,
		Breaking: breakingChange,
		Footer:   footer,
	})
}

// Version is app version
var Version string

func main() {
	rule, scope := getPathToHelp()
	if rule != "" {
		rule = "\nrule: " + rule + "\n"
	}
	if scope != "" {
		scope = "scope: " + scope + "\n"
	}

	app := gli.NewWith(&globalCmd{})
	app.Name = "git-cm"
	app.Desc = "A conventional commit message helper"
	app.Version = Version
	app.Usage = `
# prepare
# Put git-cm to PATH.

# basic usage
git cm

# quick mode
git cm -a -m "fixed login bug"

# check a message
git cm check --head
git cm check -m "feat(auth): add login"

# reformat free text
git cm fmt "Added new parser."

# customize
git cm gen
(edit .cm.yaml)
git cm
` + rule + scope + `

# record and complete scope history
(gitconfig: [cm] scopes=.cm-scopes.yaml)`
	app.Copyright = "(C) 2025 Shuhei Kubota"
	app.SuppressErrorOutput = true
	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getPathToHelp() (rule string, scope string) {
	repos, err := openRepository()
	if err != nil {
		return "", ""
	}

	_, rule = readRuleFile(repos)
	_, scope = readScopesFile(repos)

	return rule, scope
}
