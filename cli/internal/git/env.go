// Package git runs the git binary for everything git-smart-commit needs:
// repository metadata, staged changes, submodule pointer moves, and the
// final commit. Every call sets cmd.Dir instead of changing the process
// working directory.
package git

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

func minimalEnv() []string {
	env := []string{
		"PATH=" + os.Getenv("PATH"),
		"GIT_TERMINAL_PROMPT=0",
		"GIT_PAGER=cat", // prevent pager; subprocess output is captured
		"LC_ALL=C.UTF-8",
		"LANG=C.UTF-8",
	}
	if home := os.Getenv("HOME"); home != "" {
		env = append(env, "HOME="+home)
	} else if runtime.GOOS == "windows" {
		if profile := os.Getenv("USERPROFILE"); profile != "" {
			env = append(env, "HOME="+profile)
		}
	}
	// Commit identity may come from the environment rather than gitconfig.
	for _, k := range []string{"GIT_AUTHOR_NAME", "GIT_AUTHOR_EMAIL", "GIT_COMMITTER_NAME", "GIT_COMMITTER_EMAIL", "XDG_CONFIG_HOME"} {
		if v, ok := os.LookupEnv(k); ok {
			env = append(env, k+"="+v)
		}
	}
	return env
}

// userEnv is the caller's whole environment with the pager and terminal
// prompt disabled and a UTF-8 locale. Hooks and commit signing run under it.
func userEnv() []string {
	return append(os.Environ(), "GIT_TERMINAL_PROMPT=0", "GIT_PAGER=cat", "LC_ALL=C.UTF-8", "LANG=C.UTF-8")
}

// command builds a git command in dir. Paths are printed unquoted so
// non-ASCII file names reach the prompt as text.
func command(dir string, args ...string) *exec.Cmd {
	full := append([]string{"-c", "core.quotepath=false"}, args...)
	cmd := exec.Command("git", full...)
	cmd.Dir = dir
	cmd.Env = minimalEnv()
	return cmd
}

// output runs git in dir and returns stdout as valid UTF-8 (invalid bytes
// replaced). On failure the error carries git's stderr.
func output(dir string, args ...string) (string, error) {
	return runCmd(command(dir, args...), args)
}

func runCmd(cmd *exec.Cmd, args []string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("git %s: %w", args[0], err)
		}
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, msg)
	}
	return strings.ToValidUTF8(stdout.String(), "\uFFFD"), nil
}
