package git

import (
	"errors"

	"smartcommit/cli/internal/erruser"
)

// Commit records the index with message as a single literal -m argument.
func Commit(repoRoot, message string) error {
	if message == "" {
		return erruser.New("Refusing to commit with an empty message.", errors.New("empty commit message"))
	}
	args := []string{"commit", "-m", message}
	cmd := command(repoRoot, args...)
	cmd.Env = userEnv()
	if _, err := runCmd(cmd, args); err != nil {
		return erruser.New("git commit failed.", err)
	}
	return nil
}
