// Package git (staged.go) reads the index and working tree state.
package git

import (
	"strings"

	"smartcommit/cli/internal/erruser"
)

// StagedNameStatus returns "git diff --staged --name-status".
func StagedNameStatus(repoRoot string) (string, error) {
	out, err := output(repoRoot, "diff", "--staged", "--name-status")
	if err != nil {
		return "", erruser.New("Could not list staged files.", err)
	}
	return strings.TrimSpace(out), nil
}

// StagedDiff returns the staged unified diff.
func StagedDiff(repoRoot string) (string, error) {
	out, err := output(repoRoot, "diff", "--staged")
	if err != nil {
		return "", erruser.New("Could not read staged changes.", err)
	}
	return strings.TrimSpace(out), nil
}

// StagedSubmoduleDiff returns the staged diff with submodule pointer moves
// rendered as "Submodule <path> <old>..<new>" summaries.
func StagedSubmoduleDiff(repoRoot string) (string, error) {
	out, err := output(repoRoot, "diff", "--staged", "--submodule=log")
	if err != nil {
		return "", erruser.New("Could not read staged submodule changes.", err)
	}
	return out, nil
}

// UnstagedDiff returns the working tree diff against the index.
func UnstagedDiff(repoRoot string) (string, error) {
	out, err := output(repoRoot, "diff")
	if err != nil {
		return "", erruser.New("Could not read unstaged changes.", err)
	}
	return strings.TrimSpace(out), nil
}

// StatusEntry is one line of "git status --porcelain".
type StatusEntry struct {
	Index    byte // staged state (X)
	Worktree byte // unstaged state (Y)
	Path     string
}

// Status returns the porcelain status entries of the working tree.
func Status(repoRoot string) ([]StatusEntry, error) {
	out, err := output(repoRoot, "status", "--porcelain")
	if err != nil {
		return nil, erruser.New("Could not check working tree status.", err)
	}
	return parsePorcelain(out), nil
}

func parsePorcelain(s string) []StatusEntry {
	var entries []StatusEntry
	for _, line := range strings.Split(s, "\n") {
		if len(line) < 4 {
			continue
		}
		entries = append(entries, StatusEntry{Index: line[0], Worktree: line[1], Path: line[3:]})
	}
	return entries
}

// Submodules returns the paths of registered submodules ("git submodule status").
// A repository without submodules yields nil.
func Submodules(repoRoot string) []string {
	out, err := output(repoRoot, "submodule", "status")
	if err != nil {
		return nil
	}
	var paths []string
	for _, line := range splitLines(out) {
		fields := strings.Fields(strings.TrimLeft(line, " +-U"))
		if len(fields) >= 2 {
			paths = append(paths, fields[1])
		}
	}
	return paths
}

// StageAll runs "git add -A".
func StageAll(repoRoot string) error {
	if _, err := output(repoRoot, "add", "-A"); err != nil {
		return erruser.New("Could not stage changes.", err)
	}
	return nil
}
