// Package git (repo.go) provides repository discovery and metadata helpers.
package git

import (
	"path/filepath"
	"strconv"
	"strings"

	"smartcommit/cli/internal/erruser"
)

// DetachedHEAD is reported by Branch when HEAD is not on a branch.
const DetachedHEAD = "detached HEAD"

// RepoRoot returns the absolute path of the git repository root containing dir.
// Runs "git rev-parse --show-toplevel" with Dir=dir. Returns error if dir is
// not inside a git repository.
func RepoRoot(dir string) (string, error) {
	out, err := output(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", erruser.New("This directory is not inside a Git repository.", err)
	}
	return filepath.Abs(strings.TrimSpace(out))
}

// RemoteURL returns remote.origin.url, or "" when no origin is configured.
func RemoteURL(repoRoot string) string {
	out, err := output(repoRoot, "config", "--get", "remote.origin.url")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// RepoName derives a display name from the origin URL (last path element
// without ".git"). Without a remote it falls back to the root directory name.
func RepoName(repoRoot string) string {
	if name := nameFromURL(RemoteURL(repoRoot)); name != "" {
		return name
	}
	return filepath.Base(repoRoot)
}

func nameFromURL(url string) string {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	if url == "" {
		return ""
	}
	if i := strings.LastIndexAny(url, "/:"); i >= 0 {
		url = url[i+1:]
	}
	return strings.TrimSuffix(url, ".git")
}

// Branch returns the short name of the current branch, or DetachedHEAD.
func Branch(repoRoot string) string {
	out, err := output(repoRoot, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return DetachedHEAD
	}
	b := strings.TrimSpace(out)
	if b == "" {
		return DetachedHEAD
	}
	return b
}

// RecentSubjects returns up to n "<short-sha> <subject>" lines, newest first.
// A repository without commits yields nil.
func RecentSubjects(repoRoot string, n int) []string {
	if n <= 0 {
		return nil
	}
	out, err := output(repoRoot, "log", "-"+strconv.Itoa(n), "--pretty=format:%h %s")
	if err != nil {
		return nil
	}
	return splitLines(out)
}

func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimRight(l, "\r"); strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}
