package apply

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcommit/cli/internal/ui"
)

func initRepoWithStagedFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, args := range [][]string{
		{"init", "-q"},
		{"config", "user.email", "test@smartcommit.local"},
		{"config", "user.name", "Test"},
		{"config", "commit.gpgsign", "false"},
	} {
		gitRun(t, dir, args...)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a\n"), 0644))
	gitRun(t, dir, "add", "a.txt")
	return dir
}

func gitRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return strings.TrimSpace(string(out))
}

func console(input string) (*ui.Console, *bytes.Buffer) {
	var out bytes.Buffer
	return ui.NewConsole(strings.NewReader(input), ui.NewPrinter(&out)), &out
}

func TestApply_confirmed(t *testing.T) {
	t.Parallel()
	repo := initRepoWithStagedFile(t)
	c, out := console("y\n")
	msg := "Add a.txt\n\nNeeded by the fixture loader."
	ok, err := Apply(context.Background(), c, repo, msg, true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Committed.")
	assert.Equal(t, msg, gitRun(t, repo, "log", "-1", "--format=%B"))
}

func TestApply_declinedAndEOF(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"n\n", "", "maybe\n"} {
		repo := initRepoWithStagedFile(t)
		c, out := console(input)
		ok, err := Apply(context.Background(), c, repo, "Add a.txt", true)
		require.NoError(t, err, "input %q", input)
		assert.False(t, ok)
		assert.Contains(t, out.String(), "Commit cancelled.")
		cmd := exec.Command("git", "rev-parse", "--verify", "HEAD")
		cmd.Dir = repo
		assert.Error(t, cmd.Run(), "no commit expected for input %q", input)
	}
}

func TestApply_withoutConfirmation(t *testing.T) {
	t.Parallel()
	repo := initRepoWithStagedFile(t)
	c, _ := console("")
	ok, err := Apply(context.Background(), c, repo, "Add a.txt", false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestApply_commitFailure(t *testing.T) {
	t.Parallel()
	repo := initRepoWithStagedFile(t)
	gitRun(t, repo, "commit", "-q", "-m", "first")
	c, _ := console("yes\n")
	ok, err := Apply(context.Background(), c, repo, "nothing staged", true)
	require.ErrorIs(t, err, ErrCommitFailed)
	assert.False(t, ok)
	assert.Equal(t, "Commit failed.", err.Error())
}

func TestApply_canceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, _ := console("y\n")
	_, err := Apply(ctx, c, t.TempDir(), "msg", true)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestApply_hooksSeeCallerEnvironment(t *testing.T) {
	repo := initRepoWithStagedFile(t)
	t.Setenv("SSH_AUTH_SOCK", "/tmp/smartcommit-agent.sock")
	seen := filepath.Join(t.TempDir(), "seen")
	hook := filepath.Join(repo, ".git", "hooks", "pre-commit")
	require.NoError(t, os.MkdirAll(filepath.Dir(hook), 0755))
	script := "#!/bin/sh\n[ -n \"$SSH_AUTH_SOCK\" ] || exit 1\nprintf '%s' \"$SSH_AUTH_SOCK\" > '" + seen + "'\n"
	require.NoError(t, os.WriteFile(hook, []byte(script), 0755))

	c, _ := console("")
	ok, err := Apply(context.Background(), c, repo, "Add a.txt", false)
	require.NoError(t, err)
	assert.True(t, ok)
	got, err := os.ReadFile(seen)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/smartcommit-agent.sock", string(got))
}
