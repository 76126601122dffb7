// Package version holds the git-smart-commit version. Release builds set it with
//
//	go build -ldflags "-X smartcommit/cli/internal/version.Version=v1.2.0 -X smartcommit/cli/internal/version.Commit=abc1234"
package version

// Name is the program name used in help and version output.
const Name = "git-smart-commit"

// Version is the release version; "dev" for local builds.
var Version = "dev"

// Commit is the short git commit hash, set for dev builds.
var Commit = ""

// String returns "v1.2.0" for releases and "dev (abc1234)" for dev builds with a commit.
func String() string {
	if Version != "dev" || Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}

// Full returns "git-smart-commit <String()>".
func Full() string {
	return Name + " " + String()
}
