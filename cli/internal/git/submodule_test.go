package git

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSubmoduleLines(t *testing.T) {
	t.Parallel()
	diff := "Submodule libs/foo abc123..def456:\n  > Fix parser\nSubmodule vendor/bar 0a1b2c..3d4e5f (rewind):\n"
	got := ParseSubmoduleLines(diff)
	if len(got) != 2 {
		t.Fatalf("ParseSubmoduleLines: got %d, want 2", len(got))
	}
	if got[0].Path != "libs/foo" || got[0].OldRef != "abc123" || got[0].NewRef != "def456" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Path != "vendor/bar" || got[1].OldRef != "0a1b2c" || got[1].NewRef != "3d4e5f" {
		t.Errorf("got[1] = %+v", got[1])
	}
	if got := ParseSubmoduleLines("diff --git a/x b/x\n+Submodule text without refs\n"); got != nil {
		t.Errorf("no headers: got %v, want nil", got)
	}
}

func TestScanSubmodules_validRepository(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	initRepoAt(t, filepath.Join(repo, "libs", "foo"))

	var warnings []string
	warn := func(format string, args ...any) { warnings = append(warnings, fmt.Sprintf(format, args...)) }
	got := ScanSubmodules(repo, "Submodule libs/foo abc123..def456", warn)
	if len(got) != 1 {
		t.Fatalf("ScanSubmodules: got %d entries, want 1 (warnings %v)", len(got), warnings)
	}
	if got[0].Path != "libs/foo" || got[0].OldRef != "abc123" || got[0].NewRef != "def456" {
		t.Errorf("entry = %+v", got[0])
	}
	// Unknown refs cannot be logged; the entry is kept and a warning issued.
	if len(got[0].Subjects) != 0 {
		t.Errorf("Subjects = %v, want none for unknown refs", got[0].Subjects)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one range warning", warnings)
	}
}

func TestScanSubmodules_realRange(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	sub := filepath.Join(repo, "libs", "foo")
	initRepoAt(t, sub)
	oldRef := runOut(t, sub, "git", "rev-parse", "--short", "HEAD~1")
	newRef := runOut(t, sub, "git", "rev-parse", "--short", "HEAD")

	got := ScanSubmodules(repo, fmt.Sprintf("Submodule libs/foo %s..%s:\n", oldRef, newRef), nil)
	if len(got) != 1 {
		t.Fatalf("ScanSubmodules: got %d entries, want 1", len(got))
	}
	if len(got[0].Subjects) != 1 || !strings.HasSuffix(got[0].Subjects[0], " c2") {
		t.Errorf("Subjects = %v, want [<sha> c2]", got[0].Subjects)
	}
}

func TestScanSubmodules_missingDirectoryContinues(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	initRepoAt(t, filepath.Join(repo, "libs", "ok"))
	writeFile(t, repo, "libs/plain/readme.txt", "not a repo\n")

	var warnings []string
	warn := func(format string, args ...any) { warnings = append(warnings, fmt.Sprintf(format, args...)) }
	diff := "Submodule libs/gone 111111..222222\nSubmodule libs/plain 333333..444444\nSubmodule libs/ok 555555..666666\n"
	got := ScanSubmodules(repo, diff, warn)
	if len(got) != 1 || got[0].Path != "libs/ok" {
		t.Fatalf("ScanSubmodules = %+v, want only libs/ok", got)
	}
	skipped := 0
	for _, w := range warnings {
		if strings.Contains(w, "skipping") {
			skipped++
		}
	}
	if skipped != 2 {
		t.Errorf("warnings = %v, want 2 skip warnings", warnings)
	}
}

func TestIsRepository(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	if !IsRepository(repo) {
		t.Error("IsRepository(repo) = false, want true")
	}
	if IsRepository(filepath.Join(repo, "missing")) {
		t.Error("IsRepository(missing) = true, want false")
	}
	writeFile(t, repo, "plain/x.txt", "x\n")
	if IsRepository(filepath.Join(repo, "plain")) {
		t.Error("IsRepository(plain dir inside repo) = true, want false")
	}
}
