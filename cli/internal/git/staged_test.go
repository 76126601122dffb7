package git

import (
	"strings"
	"testing"
)

func TestStaged_cleanRepo(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	status, err := StagedNameStatus(repo)
	if err != nil {
		t.Fatalf("StagedNameStatus: %v", err)
	}
	diff, err := StagedDiff(repo)
	if err != nil {
		t.Fatalf("StagedDiff: %v", err)
	}
	if status != "" || diff != "" {
		t.Errorf("clean repo: status %q diff %q, want both empty", status, diff)
	}
}

func TestStaged_modifiedAndAdded(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	writeFile(t, repo, "f1.txt", "a\nchanged\n")
	writeFile(t, repo, "新文件.txt", "new\n")
	run(t, repo, "git", "add", "-A")

	status, err := StagedNameStatus(repo)
	if err != nil {
		t.Fatalf("StagedNameStatus: %v", err)
	}
	if !strings.Contains(status, "M\tf1.txt") {
		t.Errorf("status %q missing modified f1.txt", status)
	}
	if !strings.Contains(status, "A\t新文件.txt") {
		t.Errorf("status %q missing unquoted added file", status)
	}
	diff, err := StagedDiff(repo)
	if err != nil {
		t.Fatalf("StagedDiff: %v", err)
	}
	if !strings.Contains(diff, "+changed") {
		t.Errorf("diff missing added line: %q", diff)
	}
}

func TestUnstagedDiffAndStageAll(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	writeFile(t, repo, "f2.txt", "b\nmore\n")
	unstaged, err := UnstagedDiff(repo)
	if err != nil {
		t.Fatalf("UnstagedDiff: %v", err)
	}
	if !strings.Contains(unstaged, "+more") {
		t.Errorf("UnstagedDiff = %q, want +more", unstaged)
	}
	if err := StageAll(repo); err != nil {
		t.Fatalf("StageAll: %v", err)
	}
	staged, err := StagedDiff(repo)
	if err != nil {
		t.Fatalf("StagedDiff: %v", err)
	}
	if !strings.Contains(staged, "+more") {
		t.Errorf("StagedDiff after StageAll = %q, want +more", staged)
	}
	unstaged, err = UnstagedDiff(repo)
	if err != nil {
		t.Fatalf("UnstagedDiff: %v", err)
	}
	if unstaged != "" {
		t.Errorf("UnstagedDiff after StageAll = %q, want empty", unstaged)
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	writeFile(t, repo, "f1.txt", "z\n")
	writeFile(t, repo, "untracked.txt", "u\n")
	entries, err := Status(repo)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	got := map[string]StatusEntry{}
	for _, e := range entries {
		got[e.Path] = e
	}
	if e, ok := got["f1.txt"]; !ok || e.Worktree != 'M' || e.Index != ' ' {
		t.Errorf("f1.txt entry = %+v, want worktree M", e)
	}
	if e, ok := got["untracked.txt"]; !ok || e.Index != '?' {
		t.Errorf("untracked.txt entry = %+v, want ??", e)
	}
}

func TestParsePorcelain(t *testing.T) {
	t.Parallel()
	entries := parsePorcelain(" M libs/foo\nA  new.go\n\n?? x\n")
	if len(entries) != 3 {
		t.Fatalf("parsePorcelain: got %d entries, want 3", len(entries))
	}
	if entries[0].Path != "libs/foo" || entries[0].Worktree != 'M' {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Index != 'A' || entries[1].Path != "new.go" {
		t.Errorf("entries[1] = %+v", entries[1])
	}
}

func TestCommit(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	writeFile(t, repo, "f3.txt", "c\n")
	run(t, repo, "git", "add", "f3.txt")
	msg := "Add f3 fixture\n\nExplain why; keep \"quotes\" and $VARS literal."
	if err := Commit(repo, msg); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	got := runOut(t, repo, "git", "log", "-1", "--format=%B")
	if got != msg {
		t.Errorf("commit message = %q, want %q", got, msg)
	}
}

func TestCommit_nothingStaged(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	if err := Commit(repo, "nothing"); err == nil {
		t.Fatal("Commit with empty index: expected error")
	}
}

func TestCommit_emptyMessage(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	if err := Commit(repo, ""); err == nil {
		t.Fatal("Commit with empty message: expected error")
	}
}
