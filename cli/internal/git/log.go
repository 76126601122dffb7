// Package git (log.go) lists commit subjects for a range.
package git

import (
	"smartcommit/cli/internal/erruser"
)

// RangeSubjects returns "<short-sha> <subject>" lines for the commits in
// sinceRef..untilRef (reachable from until but not from since), newest first,
// as seen from the repository at dir. Empty range returns nil, nil.
func RangeSubjects(dir, sinceRef, untilRef string) ([]string, error) {
	if dir == "" || sinceRef == "" || untilRef == "" {
		return nil, erruser.New("log: directory, since, and until refs required", nil)
	}
	out, err := output(dir, "log", "--pretty=format:%h %s", sinceRef+".."+untilRef)
	if err != nil {
		return nil, erruser.New("Could not list commits in range.", err)
	}
	return splitLines(out), nil
}
