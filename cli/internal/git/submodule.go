// Package git (submodule.go) detects submodule pointer moves in a staged diff.
package git

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"

	gogit "github.com/go-git/go-git/v5"
)

// SubmoduleUpdate is one submodule whose recorded commit changed in the index.
type SubmoduleUpdate struct {
	Path     string   `yaml:"path"`
	OldRef   string   `yaml:"old_ref"`
	NewRef   string   `yaml:"new_ref"`
	Subjects []string `yaml:"subjects,omitempty"` // "<short-sha> <subject>" in OldRef..NewRef, newest first
}

var submoduleLine = regexp.MustCompile(`Submodule\s+(\S+)\s+([0-9a-f]+)\.\.([0-9a-f]+)`)

// ParseSubmoduleLines returns every "Submodule <path> <old>..<new>" header in
// diffText, in order, without touching the filesystem.
func ParseSubmoduleLines(diffText string) []SubmoduleUpdate {
	var out []SubmoduleUpdate
	for _, m := range submoduleLine.FindAllStringSubmatch(diffText, -1) {
		out = append(out, SubmoduleUpdate{Path: m[1], OldRef: m[2], NewRef: m[3]})
	}
	return out
}

// ErrNotSubmoduleRepo reports a submodule path that is missing or is not a repository.
var ErrNotSubmoduleRepo = errors.New("submodule directory is missing or not a git repository")

// IsRepository reports whether dir exists and is itself the top of a git
// repository (a .git directory or a "gitdir:" file, as submodules use).
func IsRepository(dir string) bool {
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return false
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return false
	}
	_, err = gogit.PlainOpen(dir)
	return err == nil
}

// ScanSubmodules parses diffText for submodule pointer moves and, for each one
// whose directory under repoRoot is a repository, lists the commit subjects
// between the old and new pointer. Missing or non-repository directories are
// reported through warn and skipped. A failing range query keeps the entry
// without subjects. The scan itself never fails.
func ScanSubmodules(repoRoot, diffText string, warn func(format string, args ...any)) []SubmoduleUpdate {
	if warn == nil {
		warn = func(string, ...any) {}
	}
	var out []SubmoduleUpdate
	for _, u := range ParseSubmoduleLines(diffText) {
		dir := filepath.Join(repoRoot, filepath.FromSlash(u.Path))
		if !IsRepository(dir) {
			warn("submodule %s: %v; skipping", u.Path, ErrNotSubmoduleRepo)
			continue
		}
		subjects, err := RangeSubjects(dir, u.OldRef, u.NewRef)
		if err != nil {
			warn("submodule %s: %v (%v)", u.Path, err, errors.Unwrap(err))
		}
		u.Subjects = subjects
		out = append(out, u)
	}
	return out
}
