// Package changes gathers everything the prompt needs about the staged
// change set: repository and branch names, recent history, the staged
// diff, and submodule pointer moves with their commit subjects.
package changes

import (
	"context"
	"errors"
	"slices"

	"smartcommit/cli/internal/erruser"
	"smartcommit/cli/internal/git"
)

var (
	// ErrNotARepository is returned when the working directory is not inside a git repository.
	ErrNotARepository = errors.New("not a git repository")
	// ErrNoStagedChanges is returned by Collect when the index matches HEAD.
	ErrNoStagedChanges = errors.New("no staged changes")
	// ErrNoChanges means there is nothing staged and nothing to stage.
	ErrNoChanges = errors.New("no changes detected")
)

// Context is the collected change set. It is built once per run and not
// modified afterwards.
type Context struct {
	RepositoryName   string                `yaml:"repository"`
	BranchName       string                `yaml:"branch"`
	RecentCommits    []string              `yaml:"recent_commits"`
	StagedFileStatus string                `yaml:"staged_file_status"`
	StagedDiff       string                `yaml:"staged_diff"`
	Submodules       []git.SubmoduleUpdate `yaml:"submodules,omitempty"`
}

// Options configures Collect.
type Options struct {
	RepoRoot    string
	RecentCount int                              // recent commit subjects to include
	Warn        func(format string, args ...any) // submodule scan warnings; may be nil
}

// Pending summarizes the working tree before collection.
type Pending struct {
	Staged            bool
	Unstaged          bool     // tracked modifications or untracked files outside the index
	SubmoduleModified bool     // a registered submodule has moved or has local changes
	Submodules        []string // paths of modified submodules
}

// Any reports whether there is anything to commit or stage.
func (p Pending) Any() bool {
	return p.Staged || p.Unstaged || p.SubmoduleModified
}

// Root resolves the repository root for dir, mapping failure to ErrNotARepository.
func Root(dir string) (string, error) {
	root, err := git.RepoRoot(dir)
	if err != nil {
		return "", erruser.WithHint("This directory is not inside a Git repository.",
			"run git-smart-commit from inside a repository, or git init first",
			errors.Join(ErrNotARepository, err))
	}
	return root, nil
}

// Check inspects the index and working tree of root.
func Check(root string) (Pending, error) {
	var p Pending
	staged, err := git.StagedNameStatus(root)
	if err != nil {
		return p, err
	}
	p.Staged = staged != ""
	entries, err := git.Status(root)
	if err != nil {
		return p, err
	}
	subs := git.Submodules(root)
	for _, e := range entries {
		if e.Worktree == ' ' {
			continue
		}
		if slices.Contains(subs, e.Path) {
			p.SubmoduleModified = true
			p.Submodules = append(p.Submodules, e.Path)
			continue
		}
		p.Unstaged = true
	}
	return p, nil
}

// Collect builds the Context for the staged changes in opts.RepoRoot. It
// returns ErrNoStagedChanges when nothing is staged. A failing submodule
// diff or scan only produces warnings.
func Collect(ctx context.Context, opts Options) (*Context, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root := opts.RepoRoot
	warn := opts.Warn
	if warn == nil {
		warn = func(string, ...any) {}
	}
	status, err := git.StagedNameStatus(root)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return nil, erruser.WithHint("No staged changes.", "git add <path>, or rerun with --all",
			ErrNoStagedChanges)
	}
	diff, err := git.StagedDiff(root)
	if err != nil {
		return nil, err
	}
	c := &Context{
		RepositoryName:   git.RepoName(root),
		BranchName:       git.Branch(root),
		RecentCommits:    git.RecentSubjects(root, opts.RecentCount),
		StagedFileStatus: status,
		StagedDiff:       diff,
	}
	subDiff, err := git.StagedSubmoduleDiff(root)
	if err != nil {
		warn("submodule diff: %v", err)
		return c, nil
	}
	c.Submodules = git.ScanSubmodules(root, subDiff, warn)
	return c, nil
}
