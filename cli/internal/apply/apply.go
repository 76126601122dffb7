// Package apply commits the chosen message after an optional y/n confirmation.
package apply

import (
	"context"
	"errors"
	"io"

	"smartcommit/cli/internal/erruser"
	"smartcommit/cli/internal/git"
	"smartcommit/cli/internal/ui"
)

// ErrCommitFailed wraps a failed "git commit". It is fatal for the run.
var ErrCommitFailed = errors.New("commit failed")

// Apply commits message in root. When confirm is true the user is asked
// first; anything but y/yes (including end of input) cancels without error.
// It reports whether a commit was made.
func Apply(ctx context.Context, c *ui.Console, root, message string, confirm bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	out := c.Printer()
	if confirm {
		ok, err := c.Confirm("Commit with this message?")
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		if !ok {
			out.Warn("Commit cancelled.")
			return false, nil
		}
	}
	if err := git.Commit(root, message); err != nil {
		return false, erruser.WithHint("Commit failed.", "check the git output above; nothing was committed",
			errors.Join(ErrCommitFailed, err))
	}
	out.Success("Committed.")
	return true, nil
}
