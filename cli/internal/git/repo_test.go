package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	initRepoAt(t, dir)
	return dir
}

func initRepoAt(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	run(t, dir, "git", "init", "-q")
	run(t, dir, "git", "config", "user.email", "test@smartcommit.local")
	run(t, dir, "git", "config", "user.name", "Test")
	run(t, dir, "git", "config", "commit.gpgsign", "false")
	writeFile(t, dir, "f1.txt", "a\n")
	run(t, dir, "git", "add", "f1.txt")
	run(t, dir, "git", "commit", "-q", "-m", "c1")
	writeFile(t, dir, "f2.txt", "b\n")
	run(t, dir, "git", "add", "f2.txt")
	run(t, dir, "git", "commit", "-q", "-m", "c2")
}

func run(t *testing.T, dir, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("%s %v: %v\n%s", name, args, err, out)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func runOut(t *testing.T, dir, name string, args ...string) string {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("%s %v: %v", name, args, err)
	}
	return strings.TrimSpace(string(out))
}

func TestRepoRoot_fromRoot(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	got, err := RepoRoot(repo)
	if err != nil {
		t.Fatalf("RepoRoot: %v", err)
	}
	want := runOut(t, repo, "git", "rev-parse", "--show-toplevel")
	if got != want {
		t.Errorf("RepoRoot(%q) = %q, want %q", repo, got, want)
	}
}

func TestRepoRoot_fromSubdir(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	subdir := filepath.Join(repo, "sub", "dir")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatal(err)
	}
	got, err := RepoRoot(subdir)
	if err != nil {
		t.Fatalf("RepoRoot: %v", err)
	}
	want := runOut(t, repo, "git", "rev-parse", "--show-toplevel")
	if got != want {
		t.Errorf("RepoRoot(subdir) = %q, want %q", got, want)
	}
}

func TestRepoRoot_notARepo(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	_, err := RepoRoot(dir)
	if err == nil {
		t.Fatal("RepoRoot(non-repo): expected error")
	}
}

func TestNameFromURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/acme/widgets.git", "widgets"},
		{"https://github.com/acme/widgets", "widgets"},
		{"git@github.com:acme/widgets.git", "widgets"},
		{"git@host:widgets.git", "widgets"},
		{"/srv/git/widgets.git/", "widgets"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := nameFromURL(tt.url); got != tt.want {
			t.Errorf("nameFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestRepoName_remoteAndFallback(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	if got := RepoName(repo); got != filepath.Base(repo) {
		t.Errorf("RepoName without remote = %q, want %q", got, filepath.Base(repo))
	}
	run(t, repo, "git", "remote", "add", "origin", "git@example.com:acme/widgets.git")
	if got := RepoName(repo); got != "widgets" {
		t.Errorf("RepoName with remote = %q, want widgets", got)
	}
}

func TestBranch(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	run(t, repo, "git", "checkout", "-q", "-b", "feature/login")
	if got := Branch(repo); got != "feature/login" {
		t.Errorf("Branch = %q, want feature/login", got)
	}
	run(t, repo, "git", "checkout", "-q", "--detach", "HEAD")
	if got := Branch(repo); got != DetachedHEAD {
		t.Errorf("Branch detached = %q, want %q", got, DetachedHEAD)
	}
}

func TestRecentSubjects(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	got := RecentSubjects(repo, 3)
	if len(got) != 2 {
		t.Fatalf("RecentSubjects: got %d lines, want 2: %v", len(got), got)
	}
	if !strings.HasSuffix(got[0], " c2") || !strings.HasSuffix(got[1], " c1") {
		t.Errorf("RecentSubjects = %v, want c2 then c1", got)
	}
	if got := RecentSubjects(repo, 1); len(got) != 1 {
		t.Errorf("RecentSubjects(1) = %v, want one line", got)
	}
	if got := RecentSubjects(repo, 0); got != nil {
		t.Errorf("RecentSubjects(0) = %v, want nil", got)
	}
}

func TestRecentSubjects_noCommits(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	run(t, dir, "git", "init", "-q")
	if got := RecentSubjects(dir, 3); got != nil {
		t.Errorf("RecentSubjects on empty repo = %v, want nil", got)
	}
}
