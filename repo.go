package main

import (
	"fmt"
	"os"
	"os/exec"
	"sort"

	git "github.com/go-git/go-git/v5"
)

func openRepository() (*git.Repository, error) {
	return git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true})
}

// stageAll adds every changed worktree file to the index, like commit -a.
func stageAll(wt *git.Worktree) error {
	st, err := wt.Status()
	if err != nil {
		return err
	}

	for f, s := range st {
		switch s.Worktree {
		case git.Modified, git.Added, git.Deleted, git.Renamed, git.Copied, git.UpdatedButUnmerged:
			if _, err := wt.Add(f); err != nil {
				return fmt.Errorf("adding %s: %w", f, err)
			}
		default:
			//nop
		}
	}

	return nil
}

func hasStaged(st git.Status) bool {
	for _, s := range st {
		if s.Staging != git.Unmodified && s.Staging != git.Untracked {
			return true
		}
	}
	return false
}

// stagedFiles returns the staged paths sorted, for scope suggestion.
func stagedFiles(st git.Status) []string {
	var files []string
	for f, s := range st {
		if s.Staging != git.Unmodified && s.Staging != git.Untracked {
			files = append(files, f)
		}
	}
	sort.Strings(files)
	return files
}

// headMessage returns the message of the HEAD commit.
func headMessage(repos *git.Repository) (string, error) {
	ref, err := repos.Head()
	if err != nil {
		return "", err
	}

	commit, err := repos.CommitObject(ref.Hash())
	if err != nil {
		return "", err
	}

	return commit.Message, nil
}

// commitWithGit hands msg to the git command so that hooks and signing
// behave as usual.
func commitWithGit(msg string) error {
	f, err := os.CreateTemp("", "")
	if err != nil {
		return err
	}
	_, err = f.WriteString(msg)
	if err != nil {
		f.Close()
		return err
	}
	f.Close()

	cmd := exec.Command("git", "commit", "-F", f.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err = cmd.Run()
	os.Remove(f.Name())

	return err
}
