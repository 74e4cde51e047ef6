package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/plumbing/format/config"
	"github.com/shu-go/findcfg"
	"github.com/shu-go/orderedmap"
	"gopkg.in/yaml.v3"

	"github.com/shu-go/git-cm/commitmsg"
)

// readRuleFile merges the first found rule file onto the defaults.
// repos may be nil (outside a repository); discovery then skips the
// repo root and gitconfig.
func readRuleFile(repos *git.Repository) (commitmsg.Rule, string) {
	var rootDir string
	if repos != nil {
		if wt, err := repos.Worktree(); err == nil {
			rootDir = wt.Filesystem.Root()
		}
	}

	var exactPath string
	if rootDir != "" {
		if cfg := getGitConfig(repos, configRule); cfg != nil {
			exactPath = filepath.Join(rootDir, *cfg)
		}
	}

	finder := findcfg.New(
		findcfg.Name(defaultRuleFileName),
		findcfg.ExactPath(exactPath),
		findcfg.YAML(),
		findcfg.JSON(),
		findcfg.Dir(rootDir),
		findcfg.UserConfigDir(userConfigFolder),
		findcfg.ExecutableDir(),
	)
	found := finder.Find()
	if found != nil {
		if r, err := tryReadRuleFile(found.Path); err == nil {
			return r, found.Path
		}
	}

	return commitmsg.Default(), finder.FallbackPath()
}

func tryReadRuleFile(filename string) (commitmsg.Rule, error) {
	var zero commitmsg.Rule

	if s, err := os.Stat(filename); err != nil || s.IsDir() {
		return zero, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return zero, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return zero, err
	}

	o := commitmsg.Overrides{
		Types: orderedmap.New[string, commitmsg.TypeDef](),
	}

	if in(filepath.Ext(filename), ".yaml", ".yml") {
		if err := yaml.Unmarshal(content, &o); err != nil {
			return zero, err
		}
		return commitmsg.New(o), nil
	}
	if in(filepath.Ext(filename), ".json") {
		if err := json.Unmarshal(content, &o); err != nil {
			return zero, err
		}
		return commitmsg.New(o), nil
	}
	if err := yaml.Unmarshal(content, &o); err != nil {
		if err := json.Unmarshal(content, &o); err != nil {
			return zero, err
		}
	}
	return commitmsg.New(o), nil
}

func readScopesFile(repos *git.Repository) (scopes Scopes, fileName string) {
	var rootDir string
	if repos != nil {
		if wt, err := repos.Worktree(); err == nil {
			rootDir = wt.Filesystem.Root()
		}
	}

	var exactPath string
	if rootDir != "" {
		if cfg := getGitConfig(repos, configScopeHistory); cfg != nil {
			exactPath = filepath.Join(rootDir, *cfg)
		}
	}

	finder := findcfg.New(
		findcfg.Name(defaultScopesFileName),
		findcfg.ExactPath(exactPath),
		findcfg.YAML(),
		findcfg.JSON(),
		findcfg.Dir(rootDir),
		findcfg.UserConfigDir(userConfigFolder),
		findcfg.ExecutableDir(),
	)
	found := finder.Find()
	if found != nil {
		if sc, err := tryReadScopesFile(found.Path); err == nil {
			return sc, found.Path
		}
		return nil, finder.FallbackPath()
	}

	return nil, finder.FallbackPath()
}

func tryReadScopesFile(filename string) (Scopes, error) {
	if s, err := os.Stat(filename); err != nil || s.IsDir() {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	sc := make(Scopes)

	if in(filepath.Ext(filename), ".yaml", ".yml") {
		if err = yaml.Unmarshal(content, &sc); err != nil {
			return nil, err
		}
		return sc, nil
	}
	if in(filepath.Ext(filename), ".json") {
		if err = json.Unmarshal(content, &sc); err != nil {
			return nil, err
		}
		return sc, nil
	}
	if err = yaml.Unmarshal(content, &sc); err != nil {
		if err = json.Unmarshal(content, &sc); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

// writeScopesFile stores the history most-recent-first, so completion
// shows fresh scopes first.
func writeScopesFile(filename string, scopes Scopes) error {
	type tmpscope struct {
		scope string
		ts    time.Time
	}
	sclist := make([]tmpscope, 0, len(scopes))
	for k, v := range scopes {
		sclist = append(sclist, tmpscope{scope: k, ts: v})
	}
	sort.Slice(sclist, func(i, j int) bool {
		return sclist[i].ts.After(sclist[j].ts)
	})

	out := orderedmap.New[string, time.Time]()
	for _, s := range sclist {
		out.Set(s.scope, s.ts)
	}

	var content []byte
	var err error
	if in(filepath.Ext(filename), ".json") {
		content, err = json.MarshalIndent(out, "", "  ")
	} else {
		content, err = yaml.Marshal(out)
	}
	if err != nil {
		return err
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(string(content))
	return err
}

func getGitConfig(repos *git.Repository, key string) *string {
	config, err := repos.Config()
	if err != nil {
		return nil
	}

	var ss *gitconfig.Section
	var found bool
	for _, s := range config.Raw.Sections {
		if s.Name == configSection {
			found = true
			ss = s
		}
	}
	if !found {
		return nil
	}

	if ctp := ss.Options.Get(key); ctp != "" {
		return &ctp
	}
	return nil
}

func in(s string, choices ...string) bool {
	if len(choices) == 0 {
		return false
	}

	for i := 0; i < len(choices); i++ {
		if strings.EqualFold(s, choices[i]) {
			return true
		}
	}

	return false
}
